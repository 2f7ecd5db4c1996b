// Package report records what a conversion run produced, page by page.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/kpauljoseph/pdf2pptx/pkg/logger"
)

const pagesSheet = "Pages"

type PageEntry struct {
	Index          int     `yaml:"index"`
	Width          float64 `yaml:"width_pt"`
	Height         float64 `yaml:"height_pt"`
	TextBoxes      int     `yaml:"text_boxes"`
	Pictures       int     `yaml:"pictures"`
	DroppedImages  int     `yaml:"dropped_images"`
	FormatWarnings int     `yaml:"format_warnings"`
}

type Report struct {
	Input       string      `yaml:"input"`
	Output      string      `yaml:"output"`
	Mode        string      `yaml:"mode"`
	SizePolicy  string      `yaml:"size_policy,omitempty"`
	StartTime   time.Time   `yaml:"start_time"`
	EndTime     time.Time   `yaml:"end_time"`
	SlideWidth  int64       `yaml:"slide_width_emu"`
	SlideHeight int64       `yaml:"slide_height_emu"`
	MediaParts  int         `yaml:"media_parts"`
	Pages       []PageEntry `yaml:"pages"`
}

func New(input, output, mode string) *Report {
	return &Report{
		Input:     input,
		Output:    output,
		Mode:      mode,
		StartTime: time.Now(),
	}
}

func (r *Report) AddPage(entry PageEntry) {
	r.Pages = append(r.Pages, entry)
}

func (r *Report) Finish() {
	r.EndTime = time.Now()
}

func (r *Report) Duration() time.Duration {
	if r.EndTime.IsZero() {
		return time.Since(r.StartTime)
	}
	return r.EndTime.Sub(r.StartTime)
}

// Totals sums the per-page counters.
func (r *Report) Totals() PageEntry {
	var total PageEntry
	for _, p := range r.Pages {
		total.TextBoxes += p.TextBoxes
		total.Pictures += p.Pictures
		total.DroppedImages += p.DroppedImages
		total.FormatWarnings += p.FormatWarnings
	}
	return total
}

func (r *Report) Print(log *logger.Logger) {
	total := r.Totals()
	log.Info("Conversion complete:")
	log.Info("- Input: %s", r.Input)
	log.Info("- Output: %s", r.Output)
	log.Info("- Mode: %s", r.Mode)
	log.Info("- Slides: %d", len(r.Pages))
	log.Info("- Text boxes: %d", total.TextBoxes)
	log.Info("- Pictures: %d (%d media parts)", total.Pictures, r.MediaParts)
	if total.DroppedImages > 0 {
		log.Warn("- Dropped images: %d", total.DroppedImages)
	}
	if total.FormatWarnings > 0 {
		log.Info("- Formatting skipped: %d", total.FormatWarnings)
	}
	log.Info("- Duration: %s", r.Duration().Round(time.Millisecond))
}

// Write saves the report as YAML or, for .xlsx paths, as a workbook.
func (r *Report) Write(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return r.WriteYAML(path)
	case ".xlsx":
		return r.WriteXLSX(path)
	default:
		return fmt.Errorf("unsupported report format %q (expected .yaml, .yml or .xlsx)", filepath.Ext(path))
	}
}

func (r *Report) WriteYAML(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func (r *Report) WriteXLSX(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", pagesSheet); err != nil {
		return fmt.Errorf("failed to name report sheet: %w", err)
	}

	header := []interface{}{"Page", "Width (pt)", "Height (pt)", "Text boxes", "Pictures", "Dropped images", "Format warnings"}
	if err := f.SetSheetRow(pagesSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}

	for i, p := range r.Pages {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{p.Index + 1, p.Width, p.Height, p.TextBoxes, p.Pictures, p.DroppedImages, p.FormatWarnings}
		if err := f.SetSheetRow(pagesSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write report row %d: %w", i+1, err)
		}
	}

	summary := [][2]interface{}{
		{"Input", r.Input},
		{"Output", r.Output},
		{"Mode", r.Mode},
		{"Started", r.StartTime.Format(time.RFC3339)},
		{"Finished", r.EndTime.Format(time.RFC3339)},
		{"Slide width (EMU)", r.SlideWidth},
		{"Slide height (EMU)", r.SlideHeight},
		{"Media parts", r.MediaParts},
	}
	if _, err := f.NewSheet("Summary"); err != nil {
		return fmt.Errorf("failed to add summary sheet: %w", err)
	}
	for i, kv := range summary {
		for col, val := range kv {
			cell, err := excelize.CoordinatesToCellName(col+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue("Summary", cell, val); err != nil {
				return fmt.Errorf("failed to write report summary: %w", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
