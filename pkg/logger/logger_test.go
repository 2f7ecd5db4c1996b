package logger_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/pdf2pptx/pkg/logger"
)

var _ = Describe("Logger", func() {
	var (
		buf *bytes.Buffer
		log *logger.Logger
	)

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		log = logger.New(
			logger.WithOutput(buf),
			logger.WithPrefix("[test] "),
			logger.WithFlags(0),
		)
	})

	It("should always print info and warnings", func() {
		log.Info("page %d", 1)
		log.Warn("dropped %s", "image")

		Expect(buf.String()).To(Equal("[test] INFO: page 1\n[test] WARN: dropped image\n"))
	})

	It("should hide debug output unless verbose", func() {
		log.Debug("hidden")
		Expect(buf.String()).To(BeEmpty())

		log.SetVerbose(true)
		log.Debug("shown")
		Expect(buf.String()).To(ContainSubstring("DEBUG: shown"))
	})

	It("should only print trace output at trace level", func() {
		log.SetVerbose(true)
		log.Trace("hidden")
		Expect(buf.String()).To(BeEmpty())

		log.SetLevel(logger.LevelTrace)
		log.Trace("shown")
		Expect(buf.String()).To(ContainSubstring("TRACE: shown"))
	})

	It("should turn on debug output when the level is raised", func() {
		log.SetLevel(logger.LevelDebug)
		Expect(log.IsVerbose()).To(BeTrue())
	})
})
