// Package fixture generates small, predictable PDFs for tests and demos.
package fixture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/jung-kurt/gofpdf"

	"github.com/kpauljoseph/pdf2pptx/pkg/models"
)

const (
	A4Width  = 595.28
	A4Height = 841.89

	FontSize = 12.0
	TextX    = 100.0
	// Baseline distance from the bottom edge.
	TextBaseline = 750.0

	ImageX      = 100.0
	ImageY      = 200.0
	ImageWidth  = 120.0
	ImageHeight = 80.0
)

type Options struct {
	// Pages lists page sizes in points. Empty means two A4 pages.
	Pages []models.PageDimensions
	// Image adds the same PNG to every page.
	Image bool
}

// PageText is the line drawn on page n (one based).
func PageText(n int) string {
	return fmt.Sprintf("Hello World - Page %d", n)
}

// Build renders the fixture PDF into memory.
func Build(opts Options) ([]byte, error) {
	pages := opts.Pages
	if len(pages) == 0 {
		pages = []models.PageDimensions{
			{Width: A4Width, Height: A4Height},
			{Width: A4Width, Height: A4Height},
		}
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: pages[0].Width, Ht: pages[0].Height},
	})
	pdf.SetFont("Helvetica", "", FontSize)

	if opts.Image {
		if info := pdf.RegisterImageOptionsReader(
			"fixture",
			gofpdf.ImageOptions{ImageType: "PNG"},
			bytes.NewReader(SamplePNG()),
		); info == nil {
			return nil, fmt.Errorf("failed to register fixture image: %v", pdf.Error())
		}
	}

	for i, page := range pages {
		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: page.Width, Ht: page.Height})

		baseline := TextBaseline
		if page.Height <= TextBaseline {
			baseline = page.Height / 2
		}
		pdf.Text(TextX, page.Height-baseline, PageText(i+1))

		if opts.Image {
			pdf.ImageOptions("fixture", ImageX, ImageY, ImageWidth, ImageHeight, false,
				gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to build fixture: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write fixture: %w", err)
	}
	return buf.Bytes(), nil
}

func Write(path string, opts Options) error {
	data, err := Build(opts)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SamplePNG is a 60x40 two-colour image.
func SamplePNG() []byte {
	img := image.NewRGBA(image.Rect(0, 0, 60, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 60; x++ {
			c := color.RGBA{R: 200, G: 30, B: 30, A: 255}
			if x >= 30 {
				c = color.RGBA{R: 30, G: 30, B: 200, A: 255}
			}
			img.Set(x, y, c)
		}
	}

	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}
