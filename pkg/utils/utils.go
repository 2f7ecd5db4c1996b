package utils

import (
	"path/filepath"
	"strings"
)

const PresentationExt = ".pptx"

// OutputPathFor maps a PDF path to a presentation path next to it, or under
// outputDir when one is given. relPath keeps nested directories intact.
func OutputPathFor(outputDir, relPath string) string {
	base := strings.TrimSuffix(relPath, filepath.Ext(relPath)) + PresentationExt
	if outputDir == "" {
		return base
	}
	return filepath.Join(outputDir, base)
}
