package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kpauljoseph/pdf2pptx/pkg/logger"
)

type PDFFile struct {
	AbsolutePath string
	// RelativePath is relative to the scanned root and keeps subdirectories.
	RelativePath string
}

type DirectoryScanner struct {
	logger *logger.Logger
}

func New(log *logger.Logger) *DirectoryScanner {
	if log == nil {
		log = logger.Discard()
	}
	return &DirectoryScanner{logger: log}
}

// FindPDFs walks dir and returns every .pdf file below it, sorted by
// relative path.
func (s *DirectoryScanner) FindPDFs(ctx context.Context, dir string) ([]PDFFile, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	var pdfs []PDFFile
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			return fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if info.IsDir() {
			s.logger.Debug("Scanning directory: %s", path)
			return nil
		}

		if !strings.EqualFold(filepath.Ext(path), ".pdf") {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			relPath = filepath.Base(path)
		}
		s.logger.Trace("Found PDF: %s", relPath)

		pdfs = append(pdfs, PDFFile{AbsolutePath: path, RelativePath: relPath})
		return nil
	})

	if err != nil {
		return nil, err
	}

	if len(pdfs) == 0 {
		return nil, fmt.Errorf("no PDF files found in %s or its subdirectories", dir)
	}

	sort.Slice(pdfs, func(i, j int) bool { return pdfs[i].RelativePath < pdfs[j].RelativePath })
	return pdfs, nil
}
