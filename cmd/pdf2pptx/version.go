package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kpauljoseph/pdf2pptx/pkg/updater"
	"github.com/kpauljoseph/pdf2pptx/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprint(out, version.GetDetailedVersionInfo())

		check, _ := cmd.Flags().GetBool("check")
		if !check {
			return nil
		}

		ctx, cancel := signalContext()
		defer cancel()

		info, err := updater.NewChecker(newLogger(cmd)).CheckForUpdates(ctx)
		if err != nil {
			return fmt.Errorf("update check failed: %w", err)
		}
		if info.IsAvailable {
			fmt.Fprintf(out, "Update available: %s -> %s\n%s\n", info.CurrentVersion, info.LatestVersion, info.DownloadURL)
		} else {
			fmt.Fprintln(out, "pdf2pptx is up to date")
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("check", false, "check GitHub for a newer release")
	rootCmd.AddCommand(versionCmd)
}
