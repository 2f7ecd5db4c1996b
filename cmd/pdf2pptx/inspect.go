package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/spf13/cobra"

	"github.com/kpauljoseph/pdf2pptx/internal/pptx"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show page dimensions of a PDF or the slides of a presentation",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return inspectPDF(cmd, path)
	case ".pptx":
		return inspectPresentation(cmd, path)
	default:
		return fmt.Errorf("unsupported file type %q (expected .pdf or .pptx)", filepath.Ext(path))
	}
}

func inspectPDF(cmd *cobra.Command, path string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Analyzing PDF: %s\n", path)

	dims, err := api.PageDimsFile(path)
	if err != nil {
		return fmt.Errorf("failed to get page dimensions: %w", err)
	}

	for i, dim := range dims {
		fmt.Fprintf(out, "\nPage %d:\n", i+1)
		fmt.Fprintf(out, "Dimensions (Width x Height): %.3f x %.3f points\n", dim.Width, dim.Height)
		fmt.Fprintf(out, "Slide size (editable): %d x %d EMU\n", pptx.Pt(dim.Width), pptx.Pt(dim.Height))
	}
	return nil
}

func inspectPresentation(cmd *cobra.Command, path string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Analyzing presentation: %s\n", path)

	summary, err := pptx.ReadSummary(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Slide size: %d x %d EMU (%.2f x %.2f points)\n",
		summary.Width, summary.Height, summary.Width.Points(), summary.Height.Points())
	fmt.Fprintf(out, "Slides: %d, media parts: %d\n", len(summary.Slides), summary.MediaCount)

	for _, slide := range summary.Slides {
		fmt.Fprintf(out, "\nSlide %d: %d shapes\n", slide.Index+1, slide.ShapeCount())
		for _, tb := range slide.TextBoxes {
			fmt.Fprintf(out, "  text box at (%d, %d) %dx%d", tb.Frame.X, tb.Frame.Y, tb.Frame.Width, tb.Frame.Height)
			if tb.FontSize > 0 {
				fmt.Fprintf(out, " %.1fpt", tb.FontSize)
			}
			fmt.Fprintf(out, ": %q\n", tb.Text)
		}
		for _, pic := range slide.Pictures {
			fmt.Fprintf(out, "  picture at (%d, %d) %dx%d: %s\n", pic.Frame.X, pic.Frame.Y, pic.Frame.Width, pic.Frame.Height, pic.Media)
		}
	}
	return nil
}
