package utils_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/kpauljoseph/pdf2pptx/pkg/utils"
)

func solidImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	return img
}

var _ = Describe("Utils", func() {
	Context("Content hashing", func() {
		It("should be stable for equal payloads", func() {
			a := utils.GenerateContentHash([]byte("payload"))
			b := utils.GenerateContentHash([]byte("payload"))
			Expect(a).To(Equal(b))
			Expect(a).To(HaveLen(64))
		})

		It("should differ for different payloads", func() {
			Expect(utils.GenerateContentHash([]byte("a"))).NotTo(Equal(utils.GenerateContentHash([]byte("b"))))
		})
	})

	Context("Output paths", func() {
		DescribeTable("OutputPathFor",
			func(outputDir, rel, expected string) {
				Expect(utils.OutputPathFor(outputDir, rel)).To(Equal(expected))
			},
			Entry("no output dir", "", "deck.pdf", "deck.pptx"),
			Entry("flat", "out", "deck.pdf", filepath.Join("out", "deck.pptx")),
			Entry("nested", "out", filepath.Join("a", "b", "deck.PDF"), filepath.Join("out", "a", "b", "deck.pptx")),
		)
	})

	Context("Image normalization", func() {
		DescribeTable("NormalizeImageExt",
			func(ext, expected string) {
				Expect(utils.NormalizeImageExt(ext)).To(Equal(expected))
			},
			Entry("jpg alias", "jpg", "jpeg"),
			Entry("dotted upper case", ".PNG", "png"),
			Entry("tif alias", "tif", "tiff"),
			Entry("unknown", "jbig2", "jbig2"),
		)

		It("should pass native formats through untouched", func() {
			var buf bytes.Buffer
			Expect(png.Encode(&buf, solidImage(4, 4))).To(Succeed())

			data, ext, err := utils.NormalizeImage(buf.Bytes(), "PNG")
			Expect(err).NotTo(HaveOccurred())
			Expect(ext).To(Equal("png"))
			Expect(data).To(Equal(buf.Bytes()))
		})

		It("should transcode bmp to png", func() {
			var buf bytes.Buffer
			Expect(bmp.Encode(&buf, solidImage(3, 2))).To(Succeed())

			data, ext, err := utils.NormalizeImage(buf.Bytes(), "bmp")
			Expect(err).NotTo(HaveOccurred())
			Expect(ext).To(Equal("png"))

			decoded, err := png.Decode(bytes.NewReader(data))
			Expect(err).NotTo(HaveOccurred())
			Expect(decoded.Bounds().Dx()).To(Equal(3))
			Expect(decoded.Bounds().Dy()).To(Equal(2))
		})

		It("should transcode tiff to png", func() {
			var buf bytes.Buffer
			Expect(tiff.Encode(&buf, solidImage(2, 2), nil)).To(Succeed())

			_, ext, err := utils.NormalizeImage(buf.Bytes(), "tif")
			Expect(err).NotTo(HaveOccurred())
			Expect(ext).To(Equal("png"))
		})

		It("should trust the decoded format over a wrong extension", func() {
			var buf bytes.Buffer
			Expect(png.Encode(&buf, solidImage(2, 2))).To(Succeed())

			data, ext, err := utils.NormalizeImage(buf.Bytes(), "jpx")
			Expect(err).NotTo(HaveOccurred())
			Expect(ext).To(Equal("png"))
			Expect(data).To(Equal(buf.Bytes()))
		})

		It("should fail on undecodable payloads", func() {
			_, _, err := utils.NormalizeImage([]byte("not an image"), "jbig2")
			Expect(err).To(HaveOccurred())

			_, _, err = utils.NormalizeImage(nil, "png")
			Expect(err).To(HaveOccurred())
		})

		It("should map extensions to content types", func() {
			Expect(utils.ImageMIME("jpg")).To(Equal("image/jpeg"))
			Expect(utils.ImageMIME("png")).To(Equal("image/png"))
			Expect(utils.ImageMIME("xyz")).To(Equal("application/octet-stream"))
		})
	})
})
