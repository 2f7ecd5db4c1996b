// Package pptx builds PresentationML (.pptx) decks in memory and writes them
// out as a single zip package.
package pptx

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/kpauljoseph/pdf2pptx/pkg/utils"
)

// EMU is the native PresentationML length unit.
type EMU int64

const (
	EMUPerPoint EMU = 12700
	EMUPerInch  EMU = 914400

	DefaultSlideWidth  EMU = 9144000
	DefaultSlideHeight EMU = 6858000

	minFontSize = 1.0
	maxFontSize = 4000.0
)

// Pt converts points to EMU, truncating toward zero.
func Pt(points float64) EMU {
	return EMU(points * float64(EMUPerPoint))
}

func (e EMU) Points() float64 {
	return float64(e) / float64(EMUPerPoint)
}

// Frame is a shape position and size on the slide.
type Frame struct {
	X      EMU
	Y      EMU
	Width  EMU
	Height EMU
}

type ShapeKind int

const (
	ShapeTextBox ShapeKind = iota
	ShapePicture
)

func (k ShapeKind) String() string {
	if k == ShapePicture {
		return "picture"
	}
	return "textbox"
}

type Shape interface {
	Kind() ShapeKind
	ID() int
	Bounds() Frame
}

type CoreProperties struct {
	Title   string
	Author  string
	Subject string
	Created time.Time
}

type media struct {
	name string // ppt/media/imageN.ext
	ext  string
	hash string
	data []byte
}

type Presentation struct {
	width       EMU
	height      EMU
	slides      []*Slide
	media       []*media
	mediaByHash map[string]*media
	core        CoreProperties
}

func New() *Presentation {
	return &Presentation{
		width:       DefaultSlideWidth,
		height:      DefaultSlideHeight,
		mediaByHash: make(map[string]*media),
	}
}

// PowerPoint accepts slide sides from 1in to 56in.
const (
	MinSlideSize EMU = 914400
	MaxSlideSize EMU = 51206400
)

func SlideSizeInRange(width, height EMU) bool {
	return width >= MinSlideSize && width <= MaxSlideSize &&
		height >= MinSlideSize && height <= MaxSlideSize
}

// SetSlideSize resizes every slide of the deck. PresentationML has a single
// presentation-wide slide size.
func (p *Presentation) SetSlideSize(width, height EMU) {
	p.width = width
	p.height = height
}

func (p *Presentation) SlideSize() (EMU, EMU) {
	return p.width, p.height
}

func (p *Presentation) SetCoreProperties(props CoreProperties) {
	p.core = props
}

func (p *Presentation) CoreProperties() CoreProperties {
	return p.core
}

// AddSlide appends an empty slide using the blank layout.
func (p *Presentation) AddSlide() *Slide {
	s := &Slide{
		index:  len(p.slides),
		nextID: 2,
		pres:   p,
	}
	p.slides = append(p.slides, s)
	return s
}

func (p *Presentation) Slides() []*Slide {
	return p.slides
}

// MediaCount returns the number of distinct media parts in the deck.
func (p *Presentation) MediaCount() int {
	return len(p.media)
}

func (p *Presentation) addMedia(data []byte, ext string) (*media, error) {
	data, ext, err := utils.NormalizeImage(data, ext)
	if err != nil {
		return nil, err
	}

	hash := utils.GenerateContentHash(data)
	if m, ok := p.mediaByHash[hash]; ok {
		return m, nil
	}

	m := &media{
		name: fmt.Sprintf("ppt/media/image%d.%s", len(p.media)+1, ext),
		ext:  ext,
		hash: hash,
		data: data,
	}
	p.media = append(p.media, m)
	p.mediaByHash[hash] = m
	return m, nil
}

type Slide struct {
	index  int
	nextID int
	shapes []Shape
	pres   *Presentation
}

// Index is the zero based slide position.
func (s *Slide) Index() int {
	return s.index
}

func (s *Slide) Shapes() []Shape {
	return s.shapes
}

func (s *Slide) TextBoxes() []*TextBox {
	var boxes []*TextBox
	for _, shape := range s.shapes {
		if tb, ok := shape.(*TextBox); ok {
			boxes = append(boxes, tb)
		}
	}
	return boxes
}

func (s *Slide) Pictures() []*Picture {
	var pics []*Picture
	for _, shape := range s.shapes {
		if pic, ok := shape.(*Picture); ok {
			pics = append(pics, pic)
		}
	}
	return pics
}

func (s *Slide) allocID() int {
	id := s.nextID
	s.nextID++
	return id
}

// AddTextBox places an empty, non-wrapping text box. It always holds at least
// one paragraph.
func (s *Slide) AddTextBox(frame Frame) *TextBox {
	id := s.allocID()
	tb := &TextBox{
		id:         id,
		name:       fmt.Sprintf("TextBox %d", id-1),
		frame:      frame,
		paragraphs: []*Paragraph{{}},
	}
	s.shapes = append(s.shapes, tb)
	return tb
}

// AddPicture embeds an encoded image sized to frame. Identical payloads share
// one media part across the deck.
func (s *Slide) AddPicture(data []byte, ext string, frame Frame) (*Picture, error) {
	if frame.Width < 0 || frame.Height < 0 {
		return nil, fmt.Errorf("invalid picture size %dx%d", frame.Width, frame.Height)
	}

	m, err := s.pres.addMedia(data, ext)
	if err != nil {
		return nil, fmt.Errorf("failed to add picture media: %w", err)
	}

	id := s.allocID()
	pic := &Picture{
		id:    id,
		name:  fmt.Sprintf("Picture %d", id-1),
		frame: frame,
		media: m,
	}
	s.shapes = append(s.shapes, pic)
	return pic, nil
}

type TextBox struct {
	id         int
	name       string
	frame      Frame
	paragraphs []*Paragraph
}

func (t *TextBox) Kind() ShapeKind { return ShapeTextBox }
func (t *TextBox) ID() int         { return t.id }
func (t *TextBox) Bounds() Frame   { return t.frame }

// SetText replaces the content with one paragraph per line.
func (t *TextBox) SetText(text string) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")

	t.paragraphs = make([]*Paragraph, 0, len(lines))
	for _, line := range lines {
		t.paragraphs = append(t.paragraphs, &Paragraph{Text: line})
	}
}

func (t *TextBox) Text() string {
	parts := make([]string, 0, len(t.paragraphs))
	for _, p := range t.paragraphs {
		parts = append(parts, p.Text)
	}
	return strings.Join(parts, "\n")
}

func (t *TextBox) Paragraphs() []*Paragraph {
	return t.paragraphs
}

type Paragraph struct {
	Text string
	// sz in hundredths of a point; zero inherits the master text style.
	sz int
}

// SetFontSize sets the size of every run in the paragraph.
func (p *Paragraph) SetFontSize(points float64) error {
	if math.IsNaN(points) || math.IsInf(points, 0) {
		return fmt.Errorf("invalid font size %v", points)
	}
	if points < minFontSize || points > maxFontSize {
		return fmt.Errorf("font size %.2fpt out of range [%.0f, %.0f]", points, minFontSize, maxFontSize)
	}
	p.sz = int(math.Round(points * 100))
	return nil
}

// FontSize returns the explicit size in points, or zero when inherited.
func (p *Paragraph) FontSize() float64 {
	return float64(p.sz) / 100
}

type Picture struct {
	id    int
	name  string
	frame Frame
	media *media
	// Descr is written as the picture's alternative text.
	Descr string
}

func (p *Picture) Kind() ShapeKind { return ShapePicture }
func (p *Picture) ID() int         { return p.id }
func (p *Picture) Bounds() Frame   { return p.frame }

// MediaName is the package part holding the image bytes.
func (p *Picture) MediaName() string {
	return p.media.name
}
