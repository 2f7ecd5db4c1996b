package convert

import (
	"fmt"
	"math"

	"github.com/kpauljoseph/pdf2pptx/internal/config"
	"github.com/kpauljoseph/pdf2pptx/internal/pptx"
	"github.com/kpauljoseph/pdf2pptx/pkg/models"
)

// Placement maps page points onto slide points.
type Placement struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

var identity = Placement{Scale: 1}

// Frame converts a page rectangle to a slide frame. Sizes never go negative.
func (p Placement) Frame(r models.Rect) pptx.Frame {
	return pptx.Frame{
		X:      pptx.Pt(r.X0*p.Scale + p.OffsetX),
		Y:      pptx.Pt(r.Y0*p.Scale + p.OffsetY),
		Width:  pptx.Pt(math.Max(r.Width(), 0) * p.Scale),
		Height: pptx.Pt(math.Max(r.Height(), 0) * p.Scale),
	}
}

func (p Placement) FontSize(points float64) float64 {
	return points * p.Scale
}

func sameSize(a, b models.PageDimensions, tolerance float64) bool {
	return math.Abs(a.Width-b.Width) <= tolerance && math.Abs(a.Height-b.Height) <= tolerance
}

// CheckUniformSizes fails with ErrMixedPageSizes when any page differs from
// the first by more than tolerance points.
func CheckUniformSizes(dims []models.PageDimensions, tolerance float64) error {
	for i := 1; i < len(dims); i++ {
		if !sameSize(dims[0], dims[i], tolerance) {
			return fmt.Errorf("%w: page 1 is %.2fx%.2fpt, page %d is %.2fx%.2fpt",
				ErrMixedPageSizes, dims[0].Width, dims[0].Height, i+1, dims[i].Width, dims[i].Height)
		}
	}
	return nil
}

// Sizer applies a slide sizing policy page by page. PresentationML has one
// slide size per deck, so every policy other than "last" pins the deck to
// the first page.
type Sizer struct {
	policy    config.SizePolicy
	tolerance float64
	deck      models.PageDimensions
	pinned    bool
}

func NewSizer(policy config.SizePolicy, tolerance float64) *Sizer {
	return &Sizer{policy: policy, tolerance: tolerance}
}

// Place sizes the deck for a page and returns how its content maps onto it.
func (s *Sizer) Place(pres *pptx.Presentation, page models.PageDimensions) Placement {
	if s.policy == config.SizeLast || !s.pinned {
		pres.SetSlideSize(pptx.Pt(page.Width), pptx.Pt(page.Height))
		s.deck = page
		s.pinned = true
		return identity
	}

	if s.policy != config.SizeRescale || sameSize(s.deck, page, s.tolerance) {
		return identity
	}
	if page.Width <= 0 || page.Height <= 0 {
		return identity
	}

	scale := math.Min(s.deck.Width/page.Width, s.deck.Height/page.Height)
	return Placement{
		Scale:   scale,
		OffsetX: (s.deck.Width - page.Width*scale) / 2,
		OffsetY: (s.deck.Height - page.Height*scale) / 2,
	}
}
