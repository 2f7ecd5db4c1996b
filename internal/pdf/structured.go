package pdf

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	"math"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/kpauljoseph/pdf2pptx/pkg/models"
)

// StructuredExtractor reads MuPDF's structured text. Text keeps MuPDF's line
// boundaries and font sizes; embedded images arrive as data URIs.
type StructuredExtractor struct {
	doc *Document
}

func NewStructuredExtractor(doc *Document) *StructuredExtractor {
	return &StructuredExtractor{doc: doc}
}

func (e *StructuredExtractor) ExtractBlocks(ctx context.Context, pageIndex int) ([]models.Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	markup, err := e.doc.HTML(pageIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to extract structured text from page %d: %w", pageIndex, err)
	}

	return ParseStextHTML(markup)
}

// ParseStextHTML turns MuPDF page HTML into blocks. Every <p> is one line,
// every data URI <img> one image block placed by its transform. Runs of text
// lines between images are grouped into text blocks.
func ParseStextHTML(markup string) ([]models.Block, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page html: %w", err)
	}

	var (
		blocks  []models.Block
		pending []models.Line
	)
	flush := func() {
		blocks = append(blocks, groupLines(pending)...)
		pending = nil
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "p":
				if line, ok := parseLine(n); ok {
					pending = append(pending, line)
				}
				return
			case "img":
				if block, ok := parseImage(n); ok {
					flush()
					blocks = append(blocks, block)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	flush()

	return blocks, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// parseStyle reads the point lengths of an inline style attribute.
func parseStyle(style string) map[string]float64 {
	values := make(map[string]float64)
	for _, decl := range strings.Split(style, ";") {
		key, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		val = strings.TrimSuffix(strings.TrimSpace(val), "pt")
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			continue
		}
		values[strings.TrimSpace(key)] = f
	}
	return values
}

func styleString(style, key string) string {
	for _, decl := range strings.Split(style, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if ok && strings.TrimSpace(k) == key {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func parseLine(p *html.Node) (models.Line, bool) {
	style := parseStyle(attr(p, "style"))
	top, left := style["top"], style["left"]
	lineHeight := style["line-height"]

	var spans []models.Span
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == "span" {
				spanStyle := attr(c, "style")
				text := normalizeText(strings.TrimSpace(textContent(c)))
				if text == "" {
					continue
				}
				spans = append(spans, models.Span{
					Text:     text,
					FontSize: parseStyle(spanStyle)["font-size"],
					FontName: styleString(spanStyle, "font-family"),
				})
				continue
			}
			collect(c)
		}
	}
	collect(p)

	if len(spans) == 0 {
		text := normalizeText(strings.TrimSpace(textContent(p)))
		if text == "" {
			return models.Line{}, false
		}
		spans = []models.Span{{Text: text, FontSize: lineHeight}}
	}

	height := lineHeight
	width := 0.0
	for _, span := range spans {
		height = max(height, span.FontSize)
		width += estimateWidth(span.Text+" ", span.FontSize)
	}

	return models.Line{
		BBox: models.Rect{
			X0: left,
			Y0: top,
			X1: left + width,
			Y1: top + height,
		},
		Spans: spans,
	}, true
}

// CSS pixels per point.
const pxPerPt = 96.0 / 72.0

func parseImage(img *html.Node) (models.Block, bool) {
	data, ext, ok := decodeDataURI(attr(img, "src"))
	if !ok {
		return models.Block{}, false
	}

	style := attr(img, "style")
	bbox, ok := transformedBBox(data, styleString(style, "transform"))
	if !ok {
		values := parseStyle(style)
		top, left := values["top"], values["left"]
		bbox = models.Rect{
			X0: left,
			Y0: top,
			X1: left + values["width"],
			Y1: top + values["height"],
		}
	}

	return models.Block{
		Kind:  models.BlockImage,
		BBox:  bbox,
		Image: data,
		Ext:   ext,
	}, true
}

// transformedBBox places an image the way MuPDF writes it: at its natural
// pixel size, moved by a CSS matrix() whose origin is the image centre.
func transformedBBox(data []byte, transform string) (models.Rect, bool) {
	m, ok := parseMatrix(transform)
	if !ok {
		return models.Rect{}, false
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width == 0 || cfg.Height == 0 {
		return models.Rect{}, false
	}

	w, h := float64(cfg.Width), float64(cfg.Height)
	cx, cy := w/2, h/2

	bbox := models.Rect{X0: math.Inf(1), Y0: math.Inf(1), X1: math.Inf(-1), Y1: math.Inf(-1)}
	for _, corner := range [][2]float64{{0, 0}, {w, 0}, {0, h}, {w, h}} {
		dx, dy := corner[0]-cx, corner[1]-cy
		x := cx + m[0]*dx + m[2]*dy + m[4]
		y := cy + m[1]*dx + m[3]*dy + m[5]
		bbox.X0 = min(bbox.X0, x)
		bbox.Y0 = min(bbox.Y0, y)
		bbox.X1 = max(bbox.X1, x)
		bbox.Y1 = max(bbox.Y1, y)
	}

	return models.Rect{
		X0: bbox.X0 / pxPerPt,
		Y0: bbox.Y0 / pxPerPt,
		X1: bbox.X1 / pxPerPt,
		Y1: bbox.Y1 / pxPerPt,
	}, true
}

// parseMatrix reads "matrix(a,b,c,d,e,f)".
func parseMatrix(transform string) ([6]float64, bool) {
	var m [6]float64
	args, ok := strings.CutPrefix(strings.TrimSpace(transform), "matrix(")
	if !ok {
		return m, false
	}
	args, ok = strings.CutSuffix(args, ")")
	if !ok {
		return m, false
	}

	parts := strings.Split(args, ",")
	if len(parts) != len(m) {
		return m, false
	}
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return m, false
		}
		m[i] = f
	}
	return m, true
}

// decodeDataURI handles base64 "data:image/<ext>;base64,..." sources.
func decodeDataURI(src string) ([]byte, string, bool) {
	rest, ok := strings.CutPrefix(src, "data:")
	if !ok {
		return nil, "", false
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, "", false
	}

	mime := strings.TrimSuffix(meta, ";base64")
	ext, ok := strings.CutPrefix(mime, "image/")
	if !ok {
		return nil, "", false
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil || len(data) == 0 {
		return nil, "", false
	}
	return data, ext, true
}
