package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"

	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/kpauljoseph/pdf2pptx/pkg/logger"
	"github.com/kpauljoseph/pdf2pptx/pkg/models"
)

const baseDPI = 72.0

var (
	ErrWrongPassword = errors.New("wrong password")
	ErrEncrypted     = errors.New("document is encrypted, a password is required")
)

// Document is an opened PDF held entirely in memory.
type Document struct {
	doc    *fitz.Document
	data   []byte
	dims   []models.PageDimensions
	logger *logger.Logger
}

// Metadata is the document information carried into the presentation.
type Metadata struct {
	Title   string
	Author  string
	Subject string
}

// RenderedPage is a page raster encoded as PNG.
type RenderedPage struct {
	PNG    []byte
	Width  int
	Height int
}

// Open decodes a PDF from memory. A non-empty password decrypts the document
// with pdfcpu before MuPDF sees it.
func Open(data []byte, password string, log *logger.Logger) (*Document, error) {
	if log == nil {
		log = logger.Discard()
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	if password != "" {
		decrypted, err := decrypt(data, password)
		switch {
		case errors.Is(err, pdfcpu.ErrWrongPassword):
			return nil, fmt.Errorf("failed to decrypt document: %w", ErrWrongPassword)
		case err != nil:
			log.Debug("Decrypt skipped: %v", err)
		default:
			data = decrypted
		}
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		if errors.Is(err, fitz.ErrNeedsPassword) {
			return nil, ErrEncrypted
		}
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	d := &Document{doc: doc, data: data, logger: log}
	if err := d.loadDimensions(); err != nil {
		doc.Close()
		return nil, err
	}

	return d, nil
}

func decrypt(data []byte, password string) ([]byte, error) {
	conf := model.NewDefaultConfiguration()
	conf.UserPW = password
	conf.OwnerPW = password

	var out bytes.Buffer
	if err := api.Decrypt(bytes.NewReader(data), &out, conf); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// loadDimensions prefers pdfcpu's floating point page boxes and falls back to
// MuPDF's integer bounds.
func (d *Document) loadDimensions() error {
	n := d.doc.NumPage()

	dims, err := api.PageDims(bytes.NewReader(d.data), model.NewDefaultConfiguration())
	if err == nil && len(dims) == n {
		d.dims = make([]models.PageDimensions, n)
		for i, dim := range dims {
			d.dims[i] = models.PageDimensions{Width: dim.Width, Height: dim.Height}
		}
		return nil
	}
	if err != nil {
		d.logger.Debug("pdfcpu page dimensions unavailable, using MuPDF bounds: %v", err)
	} else {
		d.logger.Debug("pdfcpu reported %d pages, MuPDF %d; using MuPDF bounds", len(dims), n)
	}

	d.dims = make([]models.PageDimensions, n)
	for i := 0; i < n; i++ {
		bounds, err := d.doc.Bound(i)
		if err != nil {
			return fmt.Errorf("failed to get bounds for page %d: %w", i, err)
		}
		d.dims[i] = models.PageDimensions{
			Width:  float64(bounds.Dx()),
			Height: float64(bounds.Dy()),
		}
	}
	return nil
}

func (d *Document) NumPage() int {
	return len(d.dims)
}

// PageSize returns the page rectangle in points. Pages are zero indexed.
func (d *Document) PageSize(pageIndex int) (models.PageDimensions, error) {
	if pageIndex < 0 || pageIndex >= len(d.dims) {
		return models.PageDimensions{}, fmt.Errorf("page %d out of range (document has %d pages)", pageIndex, len(d.dims))
	}
	return d.dims[pageIndex], nil
}

// Render rasterizes a page at zoom times 72 DPI and encodes it as PNG.
func (d *Document) Render(pageIndex int, zoom float64) (*RenderedPage, error) {
	img, err := d.doc.ImageDPI(pageIndex, baseDPI*zoom)
	if err != nil {
		return nil, fmt.Errorf("failed to render page %d: %w", pageIndex, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode page %d: %w", pageIndex, err)
	}

	bounds := img.Bounds()
	return &RenderedPage{
		PNG:    buf.Bytes(),
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}

func (d *Document) Text(pageIndex int) (string, error) {
	return d.doc.Text(pageIndex)
}

// HTML returns MuPDF's structured text for a page as positioned HTML.
func (d *Document) HTML(pageIndex int) (string, error) {
	return d.doc.HTML(pageIndex, false)
}

// Bytes returns the (decrypted) document payload.
func (d *Document) Bytes() []byte {
	return d.data
}

func (d *Document) Metadata() Metadata {
	meta := d.doc.Metadata()
	return Metadata{
		Title:   meta["title"],
		Author:  meta["author"],
		Subject: meta["subject"],
	}
}

func (d *Document) Close() error {
	return d.doc.Close()
}
