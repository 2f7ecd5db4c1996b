package convert

import (
	"fmt"
	"strings"

	"github.com/kpauljoseph/pdf2pptx/internal/pdf"
	"github.com/kpauljoseph/pdf2pptx/internal/pptx"
	"github.com/kpauljoseph/pdf2pptx/internal/report"
)

// FitImage scales an image of imgW x imgH pixels to the largest frame that
// fits the slide with the same aspect ratio, centred on the free axis.
func FitImage(imgW, imgH int, slideW, slideH pptx.EMU) (pptx.Frame, error) {
	if imgW <= 0 || imgH <= 0 {
		return pptx.Frame{}, fmt.Errorf("invalid image size %dx%d", imgW, imgH)
	}
	if slideW <= 0 || slideH <= 0 {
		return pptx.Frame{}, fmt.Errorf("invalid slide size %dx%d", slideW, slideH)
	}

	imgRatio := float64(imgW) / float64(imgH)
	slideRatio := float64(slideW) / float64(slideH)

	var f pptx.Frame
	if imgRatio > slideRatio {
		f.Width = slideW
		f.Height = pptx.EMU(float64(slideW) / imgRatio)
		f.Y = (slideH - f.Height) / 2
	} else {
		f.Height = slideH
		f.Width = pptx.EMU(float64(slideH) * imgRatio)
		f.X = (slideW - f.Width) / 2
	}

	f.X = max(f.X, 0)
	f.Y = max(f.Y, 0)
	return f, nil
}

func (c *Converter) rasterPage(doc *pdf.Document, pres *pptx.Presentation, pageIndex int) (report.PageEntry, error) {
	entry := report.PageEntry{Index: pageIndex}
	if size, err := doc.PageSize(pageIndex); err == nil {
		entry.Width, entry.Height = size.Width, size.Height
	}

	page, err := doc.Render(pageIndex, c.cfg.Zoom)
	if err != nil {
		return entry, fmt.Errorf("%w: %w", ErrRender, err)
	}
	c.logger.Trace("Rendered page %d at %dx%d px", pageIndex+1, page.Width, page.Height)

	slideW, slideH := pres.SlideSize()
	frame, err := FitImage(page.Width, page.Height, slideW, slideH)
	if err != nil {
		return entry, fmt.Errorf("%w: page %d: %w", ErrRender, pageIndex+1, err)
	}

	slide := pres.AddSlide()
	pic, err := slide.AddPicture(page.PNG, "png", frame)
	if err != nil {
		return entry, fmt.Errorf("%w: page %d: %w", ErrRender, pageIndex+1, err)
	}
	entry.Pictures = 1

	if c.cfg.AltText {
		text, err := doc.Text(pageIndex)
		if err != nil {
			c.logger.Debug("No alt text for page %d: %v", pageIndex+1, err)
		} else {
			pic.Descr = strings.TrimSpace(text)
		}
	}

	return entry, nil
}
