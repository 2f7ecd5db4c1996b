package main

import (
	"github.com/spf13/cobra"

	"github.com/kpauljoseph/pdf2pptx/internal/convert"
)

var convertCmd = &cobra.Command{
	Use:   "convert <pdf_path> <pptx_path>",
	Short: "Convert one PDF into a presentation",
	Args:  cobra.ExactArgs(2),
	RunE:  runConvert,
}

func init() {
	addConversionFlags(convertCmd.Flags())
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	conv, err := convert.New(cfg, log)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	rep, err := conv.Convert(ctx, args[0], args[1])
	if err != nil {
		return err
	}

	rep.Print(log)
	return nil
}
