package convert

import (
	"context"
	"fmt"
	"strings"

	"github.com/kpauljoseph/pdf2pptx/internal/pdf"
	"github.com/kpauljoseph/pdf2pptx/internal/pptx"
	"github.com/kpauljoseph/pdf2pptx/internal/report"
	"github.com/kpauljoseph/pdf2pptx/pkg/models"
)

// FormatResult is the outcome of optional text formatting. A failed format
// leaves the text in place.
type FormatResult struct {
	Applied bool
	Err     error
}

func (r FormatResult) Failed() bool {
	return r.Err != nil
}

// BlockText joins spans with a space and lines with a newline.
func BlockText(block models.Block) string {
	lines := make([]string, 0, len(block.Lines))
	for _, line := range block.Lines {
		spans := make([]string, 0, len(line.Spans))
		for _, span := range line.Spans {
			spans = append(spans, span.Text)
		}
		lines = append(lines, strings.Join(spans, " "))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// ApplyFirstFontSize sizes the first paragraph after the block's first span.
func ApplyFirstFontSize(tb *pptx.TextBox, block models.Block, placement Placement) FormatResult {
	if len(block.Lines) == 0 || len(block.Lines[0].Spans) == 0 {
		return FormatResult{Err: fmt.Errorf("block has no spans")}
	}
	paras := tb.Paragraphs()
	if len(paras) == 0 {
		return FormatResult{Err: fmt.Errorf("text box has no paragraphs")}
	}

	size := placement.FontSize(block.Lines[0].Spans[0].FontSize)
	if err := paras[0].SetFontSize(size); err != nil {
		return FormatResult{Err: err}
	}
	return FormatResult{Applied: true}
}

func (c *Converter) layoutPage(ctx context.Context, extractor pdf.BlockExtractor, slide *pptx.Slide, pageIndex int, placement Placement) (report.PageEntry, error) {
	entry := report.PageEntry{Index: pageIndex}

	blocks, err := extractor.ExtractBlocks(ctx, pageIndex)
	if err != nil {
		if ctx.Err() != nil {
			return entry, ctx.Err()
		}
		return entry, fmt.Errorf("%w: page %d: %w", ErrDecode, pageIndex+1, err)
	}
	c.logger.Trace("Page %d: %d blocks", pageIndex+1, len(blocks))

	for i, block := range blocks {
		frame := placement.Frame(block.BBox)

		switch block.Kind {
		case models.BlockText:
			tb := slide.AddTextBox(frame)
			tb.SetText(BlockText(block))
			entry.TextBoxes++

			if res := ApplyFirstFontSize(tb, block, placement); res.Failed() {
				entry.FormatWarnings++
				c.logger.Debug("Page %d block %d: font size not applied: %v", pageIndex+1, i, res.Err)
			}

		case models.BlockImage:
			if _, err := slide.AddPicture(block.Image, block.Ext, frame); err != nil {
				entry.DroppedImages++
				c.logger.Warn("Could not add image on page %d: %v", pageIndex+1, err)
				continue
			}
			entry.Pictures++

		default:
			c.logger.Trace("Page %d block %d: skipping %s block", pageIndex+1, i, block.Kind)
		}
	}

	return entry, nil
}
