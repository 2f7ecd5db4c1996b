package fixture_test

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/pdf2pptx/internal/fixture"
	"github.com/kpauljoseph/pdf2pptx/pkg/models"
)

var _ = Describe("Fixture", func() {
	It("should build two A4 pages by default", func() {
		data, err := fixture.Build(fixture.Options{})
		Expect(err).NotTo(HaveOccurred())
		Expect(bytes.HasPrefix(data, []byte("%PDF-"))).To(BeTrue())

		dims, err := api.PageDims(bytes.NewReader(data), model.NewDefaultConfiguration())
		Expect(err).NotTo(HaveOccurred())
		Expect(dims).To(HaveLen(2))
		Expect(dims[0].Width).To(BeNumerically("~", fixture.A4Width, 0.01))
		Expect(dims[0].Height).To(BeNumerically("~", fixture.A4Height, 0.01))
	})

	It("should honour custom page sizes", func() {
		data, err := fixture.Build(fixture.Options{Pages: []models.PageDimensions{
			{Width: 400, Height: 300},
			{Width: 300, Height: 400},
			{Width: 612, Height: 792},
		}})
		Expect(err).NotTo(HaveOccurred())

		dims, err := api.PageDims(bytes.NewReader(data), model.NewDefaultConfiguration())
		Expect(err).NotTo(HaveOccurred())
		Expect(dims).To(HaveLen(3))
		Expect(dims[0].Width).To(BeNumerically("~", 400, 0.01))
		Expect(dims[1].Height).To(BeNumerically("~", 400, 0.01))
		Expect(dims[2].Width).To(BeNumerically("~", 612, 0.01))
	})

	It("should write to disk with an image", func() {
		dir, err := os.MkdirTemp("", "pdf2pptx-fixture-*")
		Expect(err).NotTo(HaveOccurred())
		defer os.RemoveAll(dir)

		path := filepath.Join(dir, "fixture.pdf")
		Expect(fixture.Write(path, fixture.Options{Image: true})).To(Succeed())
		Expect(path).To(BeARegularFile())
	})

	It("should label pages one based", func() {
		Expect(fixture.PageText(1)).To(Equal("Hello World - Page 1"))
	})

	It("should produce a decodable sample image", func() {
		img, err := png.Decode(bytes.NewReader(fixture.SamplePNG()))
		Expect(err).NotTo(HaveOccurred())
		Expect(img.Bounds().Dx()).To(Equal(60))
		Expect(img.Bounds().Dy()).To(Equal(40))
	})
})
