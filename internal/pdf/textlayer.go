package pdf

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"

	lpdf "github.com/ledongthuc/pdf"

	"github.com/kpauljoseph/pdf2pptx/pkg/models"
)

const (
	// Share of the font size above the baseline.
	ascent = 0.8
	// A horizontal gap wider than this fraction of the font size starts a new word.
	wordGap = 0.15
)

// TextLayerExtractor reads the raw glyph stream with a pure Go parser. It
// produces text blocks only.
type TextLayerExtractor struct {
	doc    *Document
	reader *lpdf.Reader
}

func NewTextLayerExtractor(doc *Document) (*TextLayerExtractor, error) {
	data := doc.Bytes()
	r, err := lpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open text layer: %w", err)
	}
	return &TextLayerExtractor{doc: doc, reader: r}, nil
}

func (e *TextLayerExtractor) ExtractBlocks(ctx context.Context, pageIndex int) (blocks []models.Block, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	size, err := e.doc.PageSize(pageIndex)
	if err != nil {
		return nil, err
	}

	page := e.reader.Page(pageIndex + 1)
	if page.V.IsNull() {
		return nil, nil
	}

	// The parser panics on some malformed content streams.
	defer func() {
		if r := recover(); r != nil {
			blocks = nil
			err = fmt.Errorf("failed to read text layer of page %d: %v", pageIndex, r)
		}
	}()

	lines := GlyphLines(page.Content().Text, size.Height)
	return groupLines(lines), nil
}

// GlyphLines assembles positioned glyphs into lines of spans. Glyph
// coordinates have a bottom-left origin; the lines use a top-left one.
func GlyphLines(glyphs []lpdf.Text, pageHeight float64) []models.Line {
	var (
		lines    []models.Line
		line     *models.Line
		span     *models.Span
		text     strings.Builder
		baseline float64
		lastEnd  float64
	)

	closeSpan := func() {
		if span == nil {
			return
		}
		span.Text = normalizeText(strings.TrimSpace(text.String()))
		if span.Text != "" {
			line.Spans = append(line.Spans, *span)
		}
		span = nil
		text.Reset()
	}
	closeLine := func() {
		closeSpan()
		if line != nil && len(line.Spans) > 0 {
			lines = append(lines, *line)
		}
		line = nil
	}

	for _, g := range glyphs {
		if g.S == "" {
			continue
		}
		fontSize := g.FontSize
		if fontSize <= 0 {
			fontSize = 1
		}

		sameLine := line != nil && math.Abs(g.Y-baseline) <= fontSize/2 && g.X >= lastEnd-fontSize
		if !sameLine {
			closeLine()
			baseline = g.Y
			line = &models.Line{BBox: models.Rect{
				X0: g.X,
				Y0: pageHeight - g.Y - fontSize*ascent,
				X1: g.X,
				Y1: pageHeight - g.Y + fontSize*(1-ascent),
			}}
		}

		if span != nil && (span.FontName != g.Font || span.FontSize != g.FontSize) {
			closeSpan()
		}
		if span == nil {
			span = &models.Span{FontSize: g.FontSize, FontName: g.Font}
		} else if g.X-lastEnd > fontSize*wordGap {
			text.WriteByte(' ')
		}

		text.WriteString(g.S)
		lastEnd = g.X + g.W
		line.BBox.X1 = max(line.BBox.X1, lastEnd)
		line.BBox.Y0 = min(line.BBox.Y0, pageHeight-g.Y-fontSize*ascent)
		line.BBox.Y1 = max(line.BBox.Y1, pageHeight-g.Y+fontSize*(1-ascent))
	}
	closeLine()

	return lines
}
