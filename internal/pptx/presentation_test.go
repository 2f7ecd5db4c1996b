package pptx_test

import (
	"archive/zip"
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/pdf2pptx/internal/pptx"
)

func samplePNG(w, h int, c color.Color) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	Expect(png.Encode(&buf, img)).To(Succeed())
	return buf.Bytes()
}

func zipEntries(data []byte) map[string][]byte {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	Expect(err).NotTo(HaveOccurred())

	entries := make(map[string][]byte)
	for _, f := range zr.File {
		rc, err := f.Open()
		Expect(err).NotTo(HaveOccurred())
		body, err := io.ReadAll(rc)
		Expect(err).NotTo(HaveOccurred())
		rc.Close()
		entries[f.Name] = body
	}
	return entries
}

var _ = Describe("Presentation", func() {
	var (
		tempDir string
		pres    *pptx.Presentation
	)

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "pdf2pptx-pptx-*")
		Expect(err).NotTo(HaveOccurred())
		pres = pptx.New()
	})

	AfterEach(func() {
		os.RemoveAll(tempDir)
	})

	Context("Units", func() {
		It("should convert points to EMU", func() {
			Expect(pptx.Pt(1)).To(Equal(pptx.EMU(12700)))
			Expect(pptx.Pt(595)).To(Equal(pptx.EMU(7556500)))
			Expect(pptx.Pt(0.5)).To(Equal(pptx.EMU(6350)))
			Expect(pptx.EMU(25400).Points()).To(Equal(2.0))
		})
	})

	Context("Slide model", func() {
		It("should start with the blank template size", func() {
			w, h := pres.SlideSize()
			Expect(w).To(Equal(pptx.DefaultSlideWidth))
			Expect(h).To(Equal(pptx.DefaultSlideHeight))
			Expect(pres.Slides()).To(BeEmpty())
		})

		It("should keep shapes in insertion order with increasing ids", func() {
			slide := pres.AddSlide()
			tb := slide.AddTextBox(pptx.Frame{X: 10, Y: 20, Width: 30, Height: 40})
			pic, err := slide.AddPicture(samplePNG(2, 2, color.White), "png", pptx.Frame{Width: 50, Height: 50})
			Expect(err).NotTo(HaveOccurred())

			shapes := slide.Shapes()
			Expect(shapes).To(HaveLen(2))
			Expect(shapes[0].Kind()).To(Equal(pptx.ShapeTextBox))
			Expect(shapes[1].Kind()).To(Equal(pptx.ShapePicture))
			Expect(tb.ID()).To(Equal(2))
			Expect(pic.ID()).To(Equal(3))
			Expect(slide.TextBoxes()).To(ConsistOf(tb))
			Expect(slide.Pictures()).To(ConsistOf(pic))
		})

		It("should split text into paragraphs", func() {
			tb := pres.AddSlide().AddTextBox(pptx.Frame{})
			Expect(tb.Paragraphs()).To(HaveLen(1))

			tb.SetText("first\r\nsecond\nthird")
			Expect(tb.Paragraphs()).To(HaveLen(3))
			Expect(tb.Paragraphs()[1].Text).To(Equal("second"))
			Expect(tb.Text()).To(Equal("first\nsecond\nthird"))
		})

		It("should validate font sizes", func() {
			tb := pres.AddSlide().AddTextBox(pptx.Frame{})
			para := tb.Paragraphs()[0]

			Expect(para.FontSize()).To(BeZero())
			Expect(para.SetFontSize(11.5)).To(Succeed())
			Expect(para.FontSize()).To(Equal(11.5))

			Expect(para.SetFontSize(0)).NotTo(Succeed())
			Expect(para.SetFontSize(5000)).NotTo(Succeed())
			Expect(para.SetFontSize(math.NaN())).NotTo(Succeed())
			Expect(para.FontSize()).To(Equal(11.5))
		})

		It("should reject negative picture sizes", func() {
			_, err := pres.AddSlide().AddPicture(samplePNG(1, 1, color.Black), "png", pptx.Frame{Width: -1})
			Expect(err).To(HaveOccurred())
			Expect(pres.MediaCount()).To(BeZero())
		})

		It("should reject payloads that are not images", func() {
			_, err := pres.AddSlide().AddPicture([]byte("not an image"), "xyz", pptx.Frame{Width: 1, Height: 1})
			Expect(err).To(HaveOccurred())
		})

		It("should store identical images once", func() {
			data := samplePNG(4, 4, color.RGBA{R: 255, A: 255})
			other := samplePNG(4, 4, color.RGBA{B: 255, A: 255})

			first, err := pres.AddSlide().AddPicture(data, "png", pptx.Frame{Width: 1, Height: 1})
			Expect(err).NotTo(HaveOccurred())
			second, err := pres.AddSlide().AddPicture(data, "png", pptx.Frame{Width: 2, Height: 2})
			Expect(err).NotTo(HaveOccurred())
			third, err := pres.AddSlide().AddPicture(other, "png", pptx.Frame{Width: 3, Height: 3})
			Expect(err).NotTo(HaveOccurred())

			Expect(pres.MediaCount()).To(Equal(2))
			Expect(first.MediaName()).To(Equal(second.MediaName()))
			Expect(third.MediaName()).NotTo(Equal(first.MediaName()))
		})
	})

	DescribeTable("slide size limits",
		func(width, height pptx.EMU, ok bool) {
			Expect(pptx.SlideSizeInRange(width, height)).To(Equal(ok))
		},
		Entry("default canvas", pptx.DefaultSlideWidth, pptx.DefaultSlideHeight, true),
		Entry("A4 page", pptx.Pt(595.28), pptx.Pt(841.89), true),
		Entry("one inch square", pptx.MinSlideSize, pptx.MinSlideSize, true),
		Entry("under an inch wide", pptx.Pt(50), pptx.Pt(200), false),
		Entry("over 56 inches tall", pptx.Pt(595), pptx.Pt(5000), false),
	)

	Context("Serialization", func() {
		It("should write a complete package", func() {
			pres.SetSlideSize(pptx.Pt(595), pptx.Pt(842))
			slide := pres.AddSlide()
			tb := slide.AddTextBox(pptx.Frame{X: pptx.Pt(100), Y: pptx.Pt(80), Width: pptx.Pt(200), Height: pptx.Pt(14)})
			tb.SetText("Hello & <World>")
			Expect(tb.Paragraphs()[0].SetFontSize(12)).To(Succeed())
			_, err := slide.AddPicture(samplePNG(3, 3, color.White), "png", pptx.Frame{Width: 100, Height: 100})
			Expect(err).NotTo(HaveOccurred())

			var buf bytes.Buffer
			n, err := pres.WriteTo(&buf)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(int64(buf.Len())))

			entries := zipEntries(buf.Bytes())
			Expect(entries).To(HaveKey("[Content_Types].xml"))
			Expect(entries).To(HaveKey("_rels/.rels"))
			Expect(entries).To(HaveKey("ppt/presentation.xml"))
			Expect(entries).To(HaveKey("ppt/slideMasters/slideMaster1.xml"))
			Expect(entries).To(HaveKey("ppt/slideLayouts/slideLayout1.xml"))
			Expect(entries).To(HaveKey("ppt/theme/theme1.xml"))
			Expect(entries).To(HaveKey("ppt/slides/slide1.xml"))
			Expect(entries).To(HaveKey("ppt/slides/_rels/slide1.xml.rels"))
			Expect(entries).To(HaveKey("ppt/media/image1.png"))

			presXML := string(entries["ppt/presentation.xml"])
			Expect(presXML).To(ContainSubstring(`<p:sldSz cx="7556500" cy="10693400">`))

			slideXML := string(entries["ppt/slides/slide1.xml"])
			Expect(slideXML).To(ContainSubstring("Hello &amp; &lt;World&gt;"))
			Expect(slideXML).To(ContainSubstring(`sz="1200"`))
			Expect(slideXML).To(ContainSubstring(`wrap="none"`))
			Expect(strings.Index(slideXML, "<p:sp>")).To(BeNumerically("<", strings.Index(slideXML, "<p:pic>")))

			types := string(entries["[Content_Types].xml"])
			Expect(types).To(ContainSubstring(`Extension="png" ContentType="image/png"`))
			Expect(types).To(ContainSubstring("/ppt/slides/slide1.xml"))
		})

		It("should write an empty deck without a slide list", func() {
			var buf bytes.Buffer
			_, err := pres.WriteTo(&buf)
			Expect(err).NotTo(HaveOccurred())

			entries := zipEntries(buf.Bytes())
			Expect(string(entries["ppt/presentation.xml"])).NotTo(ContainSubstring("sldIdLst"))
		})

		It("should create missing output directories on save", func() {
			pres.AddSlide()
			path := filepath.Join(tempDir, "nested", "deck.pptx")
			Expect(pres.Save(path)).To(Succeed())
			Expect(path).To(BeARegularFile())
		})

		It("should carry core properties", func() {
			pres.SetCoreProperties(pptx.CoreProperties{Title: "Quarterly", Author: "Ada"})
			var buf bytes.Buffer
			_, err := pres.WriteTo(&buf)
			Expect(err).NotTo(HaveOccurred())

			core := string(zipEntries(buf.Bytes())["docProps/core.xml"])
			Expect(core).To(ContainSubstring("<dc:title>Quarterly</dc:title>"))
			Expect(core).To(ContainSubstring("<dc:creator>Ada</dc:creator>"))
		})
	})
})
