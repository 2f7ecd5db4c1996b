package pdf_test

import (
	"bytes"
	"context"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/pdf2pptx/internal/config"
	"github.com/kpauljoseph/pdf2pptx/internal/fixture"
	"github.com/kpauljoseph/pdf2pptx/internal/pdf"
	"github.com/kpauljoseph/pdf2pptx/pkg/logger"
	"github.com/kpauljoseph/pdf2pptx/pkg/models"
)

func documentTestLogger() *logger.Logger {
	log := logger.New(
		logger.WithOutput(GinkgoWriter),
		logger.WithPrefix("[pdf-test] "),
		logger.WithFlags(0),
	)
	log.SetLevel(logger.LevelTrace)
	return log
}

func blockText(block models.Block) string {
	var lines []string
	for _, line := range block.Lines {
		var spans []string
		for _, span := range line.Spans {
			spans = append(spans, span.Text)
		}
		lines = append(lines, strings.Join(spans, " "))
	}
	return strings.Join(lines, "\n")
}

var _ = Describe("Document", func() {
	var (
		ctx     context.Context
		payload []byte
		doc     *pdf.Document
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		payload, err = fixture.Build(fixture.Options{Image: true})
		Expect(err).NotTo(HaveOccurred())

		doc, err = pdf.Open(payload, "", documentTestLogger())
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if doc != nil {
			doc.Close()
		}
	})

	It("should report pages and float dimensions", func() {
		Expect(doc.NumPage()).To(Equal(2))

		size, err := doc.PageSize(0)
		Expect(err).NotTo(HaveOccurred())
		Expect(size.Width).To(BeNumerically("~", fixture.A4Width, 0.01))
		Expect(size.Height).To(BeNumerically("~", fixture.A4Height, 0.01))

		_, err = doc.PageSize(2)
		Expect(err).To(HaveOccurred())
	})

	It("should render pages at the requested zoom", func() {
		page, err := doc.Render(0, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(page.Width).To(BeNumerically("~", fixture.A4Width*2, 2))
		Expect(page.Height).To(BeNumerically("~", fixture.A4Height*2, 2))
		Expect(bytes.HasPrefix(page.PNG, []byte("\x89PNG"))).To(BeTrue())
	})

	It("should extract plain text", func() {
		text, err := doc.Text(1)
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(ContainSubstring(fixture.PageText(2)))
	})

	It("should extract structured blocks", func() {
		extractor, err := pdf.NewExtractor(config.ExtractorStructured, doc)
		Expect(err).NotTo(HaveOccurred())

		blocks, err := extractor.ExtractBlocks(ctx, 0)
		Expect(err).NotTo(HaveOccurred())

		var texts []string
		images := 0
		for _, block := range blocks {
			switch block.Kind {
			case models.BlockText:
				texts = append(texts, blockText(block))
			case models.BlockImage:
				images++
				Expect(block.Image).NotTo(BeEmpty())
			}
		}
		Expect(texts).To(ContainElement(fixture.PageText(1)))
		Expect(images).To(Equal(1))
	})

	It("should place images where the page draws them", func() {
		markup, err := doc.HTML(0)
		Expect(err).NotTo(HaveOccurred())

		blocks, err := pdf.ParseStextHTML(markup)
		Expect(err).NotTo(HaveOccurred())

		var images []models.Block
		for _, block := range blocks {
			if block.Kind == models.BlockImage {
				images = append(images, block)
			}
		}
		Expect(images).To(HaveLen(1))

		bbox := images[0].BBox
		Expect(bbox.X0).To(BeNumerically("~", fixture.ImageX, 0.5))
		Expect(bbox.Y0).To(BeNumerically("~", fixture.ImageY, 0.5))
		Expect(bbox.Width()).To(BeNumerically("~", fixture.ImageWidth, 0.5))
		Expect(bbox.Height()).To(BeNumerically("~", fixture.ImageHeight, 0.5))
	})

	It("should extract the text layer", func() {
		extractor, err := pdf.NewExtractor(config.ExtractorTextLayer, doc)
		Expect(err).NotTo(HaveOccurred())

		blocks, err := extractor.ExtractBlocks(ctx, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(blocks).NotTo(BeEmpty())

		for _, block := range blocks {
			Expect(block.Kind).To(Equal(models.BlockText))
		}
		Expect(blockText(blocks[0])).To(ContainSubstring("Page 2"))
	})

	It("should stop extracting once cancelled", func() {
		extractor, err := pdf.NewExtractor(config.ExtractorStructured, doc)
		Expect(err).NotTo(HaveOccurred())

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err = extractor.ExtractBlocks(cancelled, 0)
		Expect(err).To(MatchError(context.Canceled))
	})

	It("should reject unknown extractors", func() {
		_, err := pdf.NewExtractor(config.Extractor("ocr"), doc)
		Expect(err).To(HaveOccurred())
	})

	It("should reject data that is not a PDF", func() {
		_, err := pdf.Open(nil, "", nil)
		Expect(err).To(HaveOccurred())

		_, err = pdf.Open([]byte("definitely not a pdf"), "", nil)
		Expect(err).To(HaveOccurred())
	})

	Context("Encrypted documents", func() {
		var encrypted []byte

		BeforeEach(func() {
			conf := model.NewDefaultConfiguration()
			conf.UserPW = "secret"
			conf.OwnerPW = "secret"

			var out bytes.Buffer
			Expect(api.Encrypt(bytes.NewReader(payload), &out, conf)).To(Succeed())
			encrypted = out.Bytes()
		})

		It("should open with the right password", func() {
			enc, err := pdf.Open(encrypted, "secret", documentTestLogger())
			Expect(err).NotTo(HaveOccurred())
			defer enc.Close()
			Expect(enc.NumPage()).To(Equal(2))
		})

		It("should ask for a password", func() {
			_, err := pdf.Open(encrypted, "", nil)
			Expect(err).To(MatchError(pdf.ErrEncrypted))
		})

		It("should reject a wrong password", func() {
			_, err := pdf.Open(encrypted, "nope", nil)
			Expect(err).To(MatchError(pdf.ErrWrongPassword))
		})
	})
})
