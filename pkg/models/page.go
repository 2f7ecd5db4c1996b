package models

// PageDimensions is a page size in PDF points.
type PageDimensions struct {
	Width  float64
	Height float64
}

// Rect is an axis aligned box in page points with a top-left origin.
type Rect struct {
	X0 float64 `json:"x0" yaml:"x0"`
	Y0 float64 `json:"y0" yaml:"y0"`
	X1 float64 `json:"x1" yaml:"x1"`
	Y1 float64 `json:"y1" yaml:"y1"`
}

func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

func (r Rect) Union(o Rect) Rect {
	return Rect{
		X0: min(r.X0, o.X0),
		Y0: min(r.Y0, o.Y0),
		X1: max(r.X1, o.X1),
		Y1: max(r.Y1, o.Y1),
	}
}

type BlockKind int

const (
	BlockText BlockKind = iota
	BlockImage
)

func (k BlockKind) String() string {
	switch k {
	case BlockText:
		return "text"
	case BlockImage:
		return "image"
	default:
		return "unknown"
	}
}

type Span struct {
	Text     string
	FontSize float64
	FontName string
}

type Line struct {
	BBox  Rect
	Spans []Span
}

// Block is one classified region of a page. Lines is set for text blocks,
// Image and Ext for image blocks.
type Block struct {
	Kind  BlockKind
	BBox  Rect
	Lines []Line
	Image []byte
	Ext   string
}
