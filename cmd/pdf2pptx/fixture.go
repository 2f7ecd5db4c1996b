package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kpauljoseph/pdf2pptx/internal/fixture"
	"github.com/kpauljoseph/pdf2pptx/pkg/models"
)

var fixtureCmd = &cobra.Command{
	Use:   "fixture <out.pdf>",
	Short: "Write a small test PDF",
	Long: `fixture writes A4 pages reading "Hello World - Page N" in 12pt Helvetica,
with the baseline 750pt above the bottom edge.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pages, _ := cmd.Flags().GetInt("pages")
		withImage, _ := cmd.Flags().GetBool("image")
		if pages < 1 {
			return fmt.Errorf("pages must be at least 1")
		}

		opts := fixture.Options{Image: withImage}
		for i := 0; i < pages; i++ {
			opts.Pages = append(opts.Pages, models.PageDimensions{Width: fixture.A4Width, Height: fixture.A4Height})
		}

		if err := fixture.Write(args[0], opts); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d pages)\n", args[0], pages)
		return nil
	},
}

func init() {
	fixtureCmd.Flags().Int("pages", 2, "number of pages")
	fixtureCmd.Flags().Bool("image", false, "draw a PNG on every page")
	rootCmd.AddCommand(fixtureCmd)
}
