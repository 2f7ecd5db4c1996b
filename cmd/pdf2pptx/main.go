// Command pdf2pptx converts PDF documents into PowerPoint presentations.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/kpauljoseph/pdf2pptx/internal/config"
	"github.com/kpauljoseph/pdf2pptx/pkg/logger"
	"github.com/kpauljoseph/pdf2pptx/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "pdf2pptx",
	Short: "Convert PDF documents into PowerPoint presentations",
	Long: `pdf2pptx turns every page of a PDF into a slide.

By default each page is rendered as a picture on a 10in x 7.5in slide. With
--editable the page layout is rebuilt from text boxes and pictures on slides
sized to the page.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "path to a YAML config file")
	flags.Bool("verbose", false, "enable verbose logging")
	flags.Bool("debug", false, "enable debug mode with trace logging")
}

func newLogger(cmd *cobra.Command) *logger.Logger {
	log := logger.New(
		logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithPrefix("[pdf2pptx] "),
	)

	verbose, _ := cmd.Flags().GetBool("verbose")
	debug, _ := cmd.Flags().GetBool("debug")
	log.SetVerbose(verbose)
	if debug {
		log.SetLevel(logger.LevelTrace)
	}

	if log.IsVerbose() {
		log.Debug("Verbose logging enabled")
	}
	return log
}

// addConversionFlags registers the flags shared by convert and batch.
func addConversionFlags(flags *pflag.FlagSet) {
	flags.Bool("editable", false, "rebuild text boxes and pictures instead of rendering pages")
	flags.String("size-policy", string(config.SizeLast), "slide sizing for mixed page sizes: last, first, reject or rescale")
	flags.String("extractor", string(config.ExtractorStructured), "editable mode extractor: structured or textlayer")
	flags.Float64("zoom", config.DefaultZoom, "render zoom, 1 is 72 DPI")
	flags.String("password", "", "password for encrypted PDFs")
	flags.Bool("alt-text", true, "store page text as picture alt text in raster mode")
	flags.String("report", "", "write a conversion report (.yaml or .xlsx)")
}

// loadConfig layers the config file, PDF2PPTX_* environment variables and
// explicitly set flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		"editable":    "editable",
		"size_policy": "size-policy",
		"extractor":   "extractor",
		"zoom":        "zoom",
		"password":    "password",
		"alt_text":    "alt-text",
		"report":      "report",
	}
	for key, flag := range bindings {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, err
			}
		} else if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	cfg.ApplyOverrides(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
