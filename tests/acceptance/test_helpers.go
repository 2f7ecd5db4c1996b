package acceptance

import (
	"archive/zip"
	"fmt"
	"io"

	"github.com/kpauljoseph/pdf2pptx/internal/pptx"
	"github.com/kpauljoseph/pdf2pptx/pkg/utils"
)

// SlideHashes returns, per slide, the content hash of its first picture.
// Slides without pictures get an empty string.
func SlideHashes(pptxPath string) ([]string, error) {
	summary, err := pptx.ReadSummary(pptxPath)
	if err != nil {
		return nil, err
	}

	media, err := mediaHashes(pptxPath)
	if err != nil {
		return nil, err
	}

	hashes := make([]string, len(summary.Slides))
	for i, slide := range summary.Slides {
		if len(slide.Pictures) == 0 {
			continue
		}
		hash, ok := media[slide.Pictures[0].Media]
		if !ok {
			return nil, fmt.Errorf("slide %d references missing media %s", i+1, slide.Pictures[0].Media)
		}
		hashes[i] = hash
	}
	return hashes, nil
}

func mediaHashes(pptxPath string) (map[string]string, error) {
	zr, err := zip.OpenReader(pptxPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", pptxPath, err)
	}
	defer zr.Close()

	hashes := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		hashes[f.Name] = utils.GenerateContentHash(data)
	}
	return hashes, nil
}
