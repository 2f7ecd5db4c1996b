package pdf

import (
	"math"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/kpauljoseph/pdf2pptx/pkg/models"
)

const (
	// Lines closer than this fraction of the line height join one block.
	maxLineGap = 0.6
	// Average glyph advance as a fraction of the font size, used when the
	// source gives no line width.
	avgGlyphWidth = 0.5
)

func normalizeText(s string) string {
	return norm.NFC.String(s)
}

func estimateWidth(text string, fontSize float64) float64 {
	return float64(len([]rune(text))) * fontSize * avgGlyphWidth
}

func lineText(line models.Line) string {
	parts := make([]string, 0, len(line.Spans))
	for _, span := range line.Spans {
		parts = append(parts, span.Text)
	}
	return strings.Join(parts, " ")
}

func continuesBlock(block *models.Block, line models.Line) bool {
	prev := block.Lines[len(block.Lines)-1].BBox
	h := prev.Height()
	if h <= 0 {
		return false
	}

	gap := line.BBox.Y0 - prev.Y1
	if gap < -h/2 || gap > h*maxLineGap {
		return false
	}

	overlaps := line.BBox.X0 <= block.BBox.X1 && line.BBox.X1 >= block.BBox.X0
	aligned := math.Abs(line.BBox.X0-block.BBox.X0) <= h
	return overlaps || aligned
}

// groupLines folds consecutive lines into text blocks by vertical proximity
// and horizontal alignment. Input order is kept.
func groupLines(lines []models.Line) []models.Block {
	var blocks []models.Block
	var current *models.Block

	for _, line := range lines {
		if strings.TrimSpace(lineText(line)) == "" {
			continue
		}
		if current != nil && continuesBlock(current, line) {
			current.Lines = append(current.Lines, line)
			current.BBox = current.BBox.Union(line.BBox)
			continue
		}
		if current != nil {
			blocks = append(blocks, *current)
		}
		current = &models.Block{
			Kind:  models.BlockText,
			BBox:  line.BBox,
			Lines: []models.Line{line},
		}
	}
	if current != nil {
		blocks = append(blocks, *current)
	}

	return blocks
}
