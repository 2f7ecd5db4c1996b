package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

type part struct {
	name string
	data []byte
}

func (p *Presentation) parts(now time.Time) ([]part, error) {
	contentTypes, err := p.contentTypesXML()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal content types: %w", err)
	}
	root, err := relsXML(rootRels())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal package relationships: %w", err)
	}
	presentation, err := p.presentationXML()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal presentation: %w", err)
	}
	presRels, err := relsXML(presentationRels(len(p.slides)))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal presentation relationships: %w", err)
	}
	masterRels, err := relsXML([]xmlRelationship{
		{ID: "rId1", Type: relSlideLayout, Target: "../slideLayouts/slideLayout1.xml"},
		{ID: "rId2", Type: relTheme, Target: "../theme/theme1.xml"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal slide master relationships: %w", err)
	}
	layoutRels, err := relsXML([]xmlRelationship{
		{ID: "rId1", Type: relSlideMaster, Target: "../slideMasters/slideMaster1.xml"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal slide layout relationships: %w", err)
	}

	parts := []part{
		{"[Content_Types].xml", contentTypes},
		{"_rels/.rels", root},
		{partCoreProps, p.corePropsXML(now)},
		{partAppProps, p.appPropsXML()},
		{partPresentation, presentation},
		{"ppt/_rels/presentation.xml.rels", presRels},
		{partPresProps, []byte(presPropsXML)},
		{partViewProps, []byte(viewPropsXML)},
		{partTableStyles, []byte(tableStylesXML)},
		{partTheme, []byte(themeXML)},
		{partSlideMaster, []byte(slideMasterXML)},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", masterRels},
		{partSlideLayout, []byte(slideLayoutXML)},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", layoutRels},
	}

	for i, s := range p.slides {
		slideXML, slideRels, err := s.slideParts()
		if err != nil {
			return nil, err
		}
		parts = append(parts,
			part{fmt.Sprintf("ppt/slides/slide%d.xml", i+1), slideXML},
			part{fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1), slideRels},
		)
	}

	for _, m := range p.media {
		parts = append(parts, part{m.name, m.data})
	}

	return parts, nil
}

// WriteTo serializes the deck as a zip package.
func (p *Presentation) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	if err := p.encode(&buf, time.Now()); err != nil {
		return 0, err
	}
	return buf.WriteTo(w)
}

func (p *Presentation) encode(buf *bytes.Buffer, now time.Time) error {
	parts, err := p.parts(now)
	if err != nil {
		return err
	}

	zw := zip.NewWriter(buf)
	for _, pt := range parts {
		header := &zip.FileHeader{
			Name:     pt.name,
			Method:   zip.Deflate,
			Modified: now,
		}
		fw, err := zw.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("failed to create package part %s: %w", pt.name, err)
		}
		if _, err := fw.Write(pt.data); err != nil {
			return fmt.Errorf("failed to write package part %s: %w", pt.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize package: %w", err)
	}
	return nil
}

// Save writes the deck to path. The package is fully encoded before the file
// is created, so a failed encode leaves nothing on disk.
func (p *Presentation) Save(path string) error {
	var buf bytes.Buffer
	if err := p.encode(&buf, time.Now()); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write presentation: %w", err)
	}
	return nil
}
