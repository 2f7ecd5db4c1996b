package pdf_test

import (
	lpdf "github.com/ledongthuc/pdf"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/pdf2pptx/internal/pdf"
)

func glyph(s string, x, y, w, size float64) lpdf.Text {
	return lpdf.Text{Font: "Helvetica", FontSize: size, X: x, Y: y, W: w, S: s}
}

var _ = Describe("Text layer", func() {
	It("should assemble glyphs into words and lines", func() {
		glyphs := []lpdf.Text{
			glyph("H", 100, 700, 8, 12),
			glyph("i", 108, 700, 4, 12),
			glyph("t", 130, 700, 4, 12),
			glyph("o", 134, 700, 6, 12),
			glyph("N", 100, 680, 8, 12),
			glyph("e", 108, 680, 6, 12),
			glyph("x", 114, 680, 6, 12),
			glyph("t", 120, 680, 4, 12),
		}

		lines := pdf.GlyphLines(glyphs, 800)
		Expect(lines).To(HaveLen(2))

		Expect(lines[0].Spans).To(HaveLen(1))
		Expect(lines[0].Spans[0].Text).To(Equal("Hi to"))
		Expect(lines[0].Spans[0].FontSize).To(Equal(12.0))
		Expect(lines[0].BBox.X0).To(Equal(100.0))
		Expect(lines[0].BBox.X1).To(Equal(140.0))
		Expect(lines[0].BBox.Y0).To(BeNumerically("~", 90.4, 1e-9))
		Expect(lines[0].BBox.Y1).To(BeNumerically("~", 102.4, 1e-9))

		Expect(lines[1].Spans[0].Text).To(Equal("Next"))
	})

	It("should start a new span when the font changes", func() {
		glyphs := []lpdf.Text{
			glyph("a", 100, 700, 6, 12),
			{Font: "Helvetica-Bold", FontSize: 12, X: 106, Y: 700, W: 6, S: "b"},
		}

		lines := pdf.GlyphLines(glyphs, 800)
		Expect(lines).To(HaveLen(1))
		Expect(lines[0].Spans).To(HaveLen(2))
		Expect(lines[0].Spans[1].FontName).To(Equal("Helvetica-Bold"))
	})

	It("should return nothing for an empty stream", func() {
		Expect(pdf.GlyphLines(nil, 800)).To(BeEmpty())
	})
})
