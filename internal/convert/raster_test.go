package convert_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/pdf2pptx/internal/convert"
	"github.com/kpauljoseph/pdf2pptx/internal/pptx"
)

var _ = Describe("FitImage", func() {
	DescribeTable("placing a raster on the default canvas",
		func(imgW, imgH int, expected pptx.Frame) {
			frame, err := convert.FitImage(imgW, imgH, pptx.DefaultSlideWidth, pptx.DefaultSlideHeight)
			Expect(err).NotTo(HaveOccurred())
			Expect(frame).To(Equal(expected))
		},
		Entry("wide image fills the width and centres vertically", 2000, 1000,
			pptx.Frame{X: 0, Y: 1143000, Width: 9144000, Height: 4572000}),
		Entry("tall image fills the height and centres horizontally", 1000, 2000,
			pptx.Frame{X: 2857500, Y: 0, Width: 3429000, Height: 6858000}),
		Entry("square image", 500, 500,
			pptx.Frame{X: 1143000, Y: 0, Width: 6858000, Height: 6858000}),
	)

	It("should keep the aspect ratio of an A4 page", func() {
		frame, err := convert.FitImage(1191, 1684, pptx.DefaultSlideWidth, pptx.DefaultSlideHeight)
		Expect(err).NotTo(HaveOccurred())

		Expect(frame.Height).To(Equal(pptx.DefaultSlideHeight))
		Expect(frame.Y).To(BeZero())
		Expect(float64(frame.Width) / float64(frame.Height)).To(BeNumerically("~", 1191.0/1684.0, 1e-6))
		Expect(frame.X*2 + frame.Width).To(BeNumerically("~", pptx.DefaultSlideWidth, 1))
	})

	It("should fill a slide of the same shape", func() {
		frame, err := convert.FitImage(400, 300, pptx.DefaultSlideWidth, pptx.DefaultSlideHeight)
		Expect(err).NotTo(HaveOccurred())
		Expect(frame.Height).To(Equal(pptx.DefaultSlideHeight))
		Expect(frame.Width).To(BeNumerically("~", pptx.DefaultSlideWidth, 1))
		Expect(frame.X).To(BeNumerically(">=", 0))
	})

	It("should reject degenerate sizes", func() {
		_, err := convert.FitImage(0, 100, pptx.DefaultSlideWidth, pptx.DefaultSlideHeight)
		Expect(err).To(HaveOccurred())
		_, err = convert.FitImage(100, 100, 0, pptx.DefaultSlideHeight)
		Expect(err).To(HaveOccurred())
	})
})
