package pdf

import (
	"context"
	"fmt"

	"github.com/kpauljoseph/pdf2pptx/internal/config"
	"github.com/kpauljoseph/pdf2pptx/pkg/models"
)

// BlockExtractor splits a page into positioned text and image blocks in
// reading order. Coordinates are points with a top-left origin.
type BlockExtractor interface {
	ExtractBlocks(ctx context.Context, pageIndex int) ([]models.Block, error)
}

func NewExtractor(kind config.Extractor, doc *Document) (BlockExtractor, error) {
	switch kind {
	case config.ExtractorStructured, "":
		return NewStructuredExtractor(doc), nil
	case config.ExtractorTextLayer:
		return NewTextLayerExtractor(doc)
	default:
		return nil, fmt.Errorf("unknown extractor %q", kind)
	}
}
