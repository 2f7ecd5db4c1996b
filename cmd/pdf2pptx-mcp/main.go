// Command pdf2pptx-mcp serves PDF to PowerPoint conversion as MCP tools over
// stdio.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/viper"

	"github.com/kpauljoseph/pdf2pptx/internal/config"
	"github.com/kpauljoseph/pdf2pptx/internal/convert"
	"github.com/kpauljoseph/pdf2pptx/pkg/logger"
	"github.com/kpauljoseph/pdf2pptx/pkg/version"
)

const serverName = "pdf2pptx"

// Tool argument keys.
const (
	argPDFPath    = "pdf_path"
	argPPTXPath   = "pptx_path"
	argEditable   = "editable"
	argSizePolicy = "size_policy"
)

func main() {
	// stdout carries the protocol.
	log := logger.New(
		logger.WithOutput(os.Stderr),
		logger.WithPrefix("[pdf2pptx-mcp] "),
	)

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal("Error loading config: %v", err)
	}

	s := server.NewMCPServer(serverName, version.Version)
	registerTools(s, cfg, log)

	if err := server.ServeStdio(s); err != nil {
		log.Fatal("server error: %v", err)
	}
}

func loadConfig() (*config.Config, error) {
	v := viper.New()
	v.SetEnvPrefix(config.EnvPrefix)
	v.AutomaticEnv()
	for _, key := range []string{"config", "editable", "zoom", "size_policy", "extractor", "password", "alt_text", "report"} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	cfg, err := config.LoadOrDefault(v.GetString("config"))
	if err != nil {
		return nil, err
	}
	cfg.ApplyOverrides(v)
	return cfg, cfg.Validate()
}

func registerTools(s *server.MCPServer, cfg *config.Config, log *logger.Logger) {
	s.AddTool(
		mcp.NewTool("convert_pdf_to_pptx",
			mcp.WithDescription("Convert a PDF file into a PowerPoint presentation. "+
				"By default every page becomes a picture on a 10in x 7.5in slide; "+
				"with editable=true the text and images of each page are rebuilt as editable shapes."),
			mcp.WithString(argPDFPath,
				mcp.Required(),
				mcp.Description("Absolute path of the PDF to convert"),
			),
			mcp.WithString(argPPTXPath,
				mcp.Required(),
				mcp.Description("Absolute path of the .pptx file to write"),
			),
			mcp.WithBoolean(argEditable,
				mcp.Description("Rebuild editable text boxes and pictures instead of rendering pages"),
			),
			mcp.WithString(argSizePolicy,
				mcp.Description("Slide sizing for mixed page sizes in editable mode: last, first, reject or rescale"),
			),
		),
		convertHandler(cfg, log),
	)

	s.AddTool(
		mcp.NewTool("get_conversion_info",
			mcp.WithDescription("Return the conversion modes, sizing policies and active configuration."),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText(conversionInfo(cfg)), nil
		},
	)
}

func convertHandler(base *config.Config, log *logger.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		pdfPath, ok := req.Params.Arguments[argPDFPath].(string)
		if !ok || pdfPath == "" {
			return mcp.NewToolResultError(argPDFPath + " is required"), nil
		}
		pptxPath, ok := req.Params.Arguments[argPPTXPath].(string)
		if !ok || pptxPath == "" {
			return mcp.NewToolResultError(argPPTXPath + " is required"), nil
		}

		cfg := *base
		if editable, ok := req.Params.Arguments[argEditable].(bool); ok {
			cfg.Editable = editable
		}
		if policy, ok := req.Params.Arguments[argSizePolicy].(string); ok && policy != "" {
			cfg.SizePolicy = config.SizePolicy(policy)
		}

		conv, err := convert.New(&cfg, log)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		rep, err := conv.Convert(ctx, pdfPath, pptxPath)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil, err
			}
			return mcp.NewToolResultError(err.Error()), nil
		}

		total := rep.Totals()
		msg := fmt.Sprintf("Wrote %s: %d slides (%s mode), %d text boxes, %d pictures",
			pptxPath, len(rep.Pages), rep.Mode, total.TextBoxes, total.Pictures)
		if total.DroppedImages > 0 {
			msg += fmt.Sprintf(", %d images dropped", total.DroppedImages)
		}
		return mcp.NewToolResultText(msg), nil
	}
}

func conversionInfo(cfg *config.Config) string {
	policies := []string{
		string(config.SizeLast), string(config.SizeFirst),
		string(config.SizeReject), string(config.SizeRescale),
	}

	return fmt.Sprintf(`# pdf2pptx Conversion Info

## Modes
- raster: each page rendered at %.0f DPI and centred on a %d x %d EMU slide
- editable: text boxes and pictures rebuilt at page coordinates (1pt = 12700 EMU)

## Size policies (editable mode)
- %s

## Configuration
- Editable by default: %t
- Size policy: %s
- Extractor: %s
- Picture alt text: %t`,
		72*cfg.Zoom, cfg.SlideSize.Width, cfg.SlideSize.Height,
		strings.Join(policies, "\n- "),
		cfg.Editable, cfg.SizePolicy, cfg.Extractor, cfg.AltText,
	)
}
