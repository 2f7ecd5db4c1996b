// Package convert turns PDF documents into presentations, either one raster
// picture per slide or reconstructed text boxes and pictures.
package convert

import (
	"context"
	"fmt"
	"os"

	"github.com/kpauljoseph/pdf2pptx/internal/config"
	"github.com/kpauljoseph/pdf2pptx/internal/pdf"
	"github.com/kpauljoseph/pdf2pptx/internal/pptx"
	"github.com/kpauljoseph/pdf2pptx/internal/report"
	"github.com/kpauljoseph/pdf2pptx/pkg/logger"
	"github.com/kpauljoseph/pdf2pptx/pkg/models"
)

const (
	ModeRaster   = "raster"
	ModeEditable = "editable"
)

type Converter struct {
	cfg    *config.Config
	logger *logger.Logger
}

func New(cfg *config.Config, log *logger.Logger) (*Converter, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logger.Discard()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &Converter{cfg: cfg, logger: log}, nil
}

func (c *Converter) Mode() string {
	if c.cfg.Editable {
		return ModeEditable
	}
	return ModeRaster
}

// Convert writes pdfPath as a presentation to pptxPath. Nothing is written
// unless every page converts.
func (c *Converter) Convert(ctx context.Context, pdfPath, pptxPath string) (*report.Report, error) {
	rep := report.New(pdfPath, pptxPath, c.Mode())
	if c.cfg.Editable {
		rep.SizePolicy = string(c.cfg.SizePolicy)
	}

	info, err := os.Stat(pdfPath)
	if err != nil {
		return rep, fmt.Errorf("%w: %s: %w", ErrInput, pdfPath, err)
	}
	if info.IsDir() {
		return rep, fmt.Errorf("%w: %s is a directory", ErrInput, pdfPath)
	}

	data, err := os.ReadFile(pdfPath)
	if err != nil {
		return rep, fmt.Errorf("%w: %s: %w", ErrInput, pdfPath, err)
	}

	doc, err := pdf.Open(data, c.cfg.Password, c.logger)
	if err != nil {
		return rep, fmt.Errorf("%w: %s: %w", ErrDecode, pdfPath, err)
	}
	defer doc.Close()

	pres, err := c.Build(ctx, doc, rep)
	if err != nil {
		return rep, err
	}

	if err := pres.Save(pptxPath); err != nil {
		return rep, fmt.Errorf("%w: %s: %w", ErrSave, pptxPath, err)
	}
	rep.Finish()
	c.logger.Info("Saved %s", pptxPath)

	if c.cfg.Report != "" {
		if err := rep.Write(c.cfg.Report); err != nil {
			c.logger.Warn("Could not write report: %v", err)
		} else {
			c.logger.Debug("Report written to %s", c.cfg.Report)
		}
	}

	return rep, nil
}

// Build converts an opened document into an in-memory presentation.
func (c *Converter) Build(ctx context.Context, doc *pdf.Document, rep *report.Report) (*pptx.Presentation, error) {
	if rep == nil {
		rep = report.New("", "", c.Mode())
	}

	pres := pptx.New()
	meta := doc.Metadata()
	pres.SetCoreProperties(pptx.CoreProperties{
		Title:   meta.Title,
		Author:  meta.Author,
		Subject: meta.Subject,
	})

	numPages := doc.NumPage()
	c.logger.Info("Converting %d pages (%s mode)", numPages, c.Mode())

	var err error
	if c.cfg.Editable {
		err = c.buildEditable(ctx, doc, pres, rep)
	} else {
		err = c.buildRaster(ctx, doc, pres, rep)
	}
	if err != nil {
		return nil, err
	}

	w, h := pres.SlideSize()
	if !pptx.SlideSizeInRange(w, h) {
		c.logger.Warn("Slide size %.1fx%.1fpt is outside the 72-4032pt range PowerPoint opens", w.Points(), h.Points())
	}
	rep.SlideWidth, rep.SlideHeight = int64(w), int64(h)
	rep.MediaParts = pres.MediaCount()

	return pres, nil
}

func (c *Converter) buildRaster(ctx context.Context, doc *pdf.Document, pres *pptx.Presentation, rep *report.Report) error {
	pres.SetSlideSize(pptx.EMU(c.cfg.SlideSize.Width), pptx.EMU(c.cfg.SlideSize.Height))

	numPages := doc.NumPage()
	for i := 0; i < numPages; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		c.logger.Info("Processing page %d/%d...", i+1, numPages)
		entry, err := c.rasterPage(doc, pres, i)
		if err != nil {
			return err
		}
		rep.AddPage(entry)
	}
	return nil
}

func (c *Converter) buildEditable(ctx context.Context, doc *pdf.Document, pres *pptx.Presentation, rep *report.Report) error {
	numPages := doc.NumPage()

	dims := make([]models.PageDimensions, numPages)
	for i := range dims {
		size, err := doc.PageSize(i)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrDecode, err)
		}
		dims[i] = size
	}

	if c.cfg.SizePolicy == config.SizeReject {
		if err := CheckUniformSizes(dims, c.cfg.DimensionTolerance); err != nil {
			return err
		}
	}

	extractor, err := pdf.NewExtractor(c.cfg.Extractor, doc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}

	sizer := NewSizer(c.cfg.SizePolicy, c.cfg.DimensionTolerance)
	for i := 0; i < numPages; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		c.logger.Info("Processing page %d/%d...", i+1, numPages)
		placement := sizer.Place(pres, dims[i])
		if placement != identity {
			c.logger.Debug("Page %d scaled by %.3f to fit the deck", i+1, placement.Scale)
		}

		slide := pres.AddSlide()
		entry, err := c.layoutPage(ctx, extractor, slide, i, placement)
		if err != nil {
			return err
		}
		entry.Width, entry.Height = dims[i].Width, dims[i].Height
		rep.AddPage(entry)
	}
	return nil
}
