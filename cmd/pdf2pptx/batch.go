package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kpauljoseph/pdf2pptx/internal/convert"
	"github.com/kpauljoseph/pdf2pptx/internal/scanner"
	"github.com/kpauljoseph/pdf2pptx/pkg/utils"
)

var batchCmd = &cobra.Command{
	Use:   "batch <pdf_dir> <out_dir>",
	Short: "Convert every PDF below a directory",
	Long: `batch converts each PDF found under pdf_dir and mirrors the directory
layout under out_dir. A failed file is logged and the run continues. With
--report, one report per presentation is written next to it.`,
	Args: cobra.ExactArgs(2),
	RunE: runBatch,
}

func init() {
	addConversionFlags(batchCmd.Flags())
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd)
	pdfDir, outDir := args[0], args[1]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	reportExt := filepath.Ext(cfg.Report)

	ctx, cancel := signalContext()
	defer cancel()

	log.Info("Scanning directory: %s", pdfDir)
	pdfs, err := scanner.New(log).FindPDFs(ctx, pdfDir)
	if err != nil {
		return fmt.Errorf("failed to find PDFs: %w", err)
	}
	log.Info("Found %d PDFs to convert", len(pdfs))

	failed := 0
	for _, pdf := range pdfs {
		out := utils.OutputPathFor(outDir, pdf.RelativePath)

		fileCfg := *cfg
		if reportExt != "" {
			fileCfg.Report = strings.TrimSuffix(out, utils.PresentationExt) + reportExt
		}

		conv, err := convert.New(&fileCfg, log)
		if err != nil {
			return err
		}

		log.Info("Converting %s -> %s", pdf.RelativePath, out)
		rep, err := conv.Convert(ctx, pdf.AbsolutePath, out)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			failed++
			log.Error("Failed to convert %s: %v", pdf.RelativePath, err)
			continue
		}
		log.Debug("%s: %d slides", pdf.RelativePath, len(rep.Pages))
	}

	log.Info("Batch complete:")
	log.Info("- Total PDFs: %d", len(pdfs))
	log.Info("- Converted: %d", len(pdfs)-failed)
	if failed > 0 {
		log.Info("- Failed: %d", failed)
		return fmt.Errorf("%d of %d conversions failed", failed, len(pdfs))
	}
	return nil
}
