// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type SizePolicy string

const (
	SizeLast    SizePolicy = "last"
	SizeFirst   SizePolicy = "first"
	SizeReject  SizePolicy = "reject"
	SizeRescale SizePolicy = "rescale"
)

type Extractor string

const (
	ExtractorStructured Extractor = "structured"
	ExtractorTextLayer  Extractor = "textlayer"
)

const (
	DefaultZoom = 2.0

	// Blank template size: 10in x 7.5in.
	DefaultSlideWidthEMU  int64 = 9144000
	DefaultSlideHeightEMU int64 = 6858000

	DefaultDimensionTolerance = 1.0

	EnvPrefix = "PDF2PPTX"
)

type Config struct {
	Editable  bool    `yaml:"editable"`
	Zoom      float64 `yaml:"zoom"`
	SlideSize struct {
		Width  int64 `yaml:"width"`
		Height int64 `yaml:"height"`
	} `yaml:"slide_size"`
	SizePolicy         SizePolicy `yaml:"size_policy"`
	Extractor          Extractor  `yaml:"extractor"`
	DimensionTolerance float64    `yaml:"dimension_tolerance"`
	Password           string     `yaml:"password"`
	AltText            bool       `yaml:"alt_text"`
	Report             string     `yaml:"report"`
}

func Default() *Config {
	cfg := &Config{AltText: true}
	cfg.applyDefaults()
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Config{AltText: true}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// LoadOrDefault behaves like Load but treats an empty path or a missing file
// as "use the defaults".
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func (c *Config) applyDefaults() {
	if c.Zoom <= 0 {
		c.Zoom = DefaultZoom
	}
	if c.SlideSize.Width <= 0 {
		c.SlideSize.Width = DefaultSlideWidthEMU
	}
	if c.SlideSize.Height <= 0 {
		c.SlideSize.Height = DefaultSlideHeightEMU
	}
	if c.SizePolicy == "" {
		c.SizePolicy = SizeLast
	}
	if c.Extractor == "" {
		c.Extractor = ExtractorStructured
	}
	if c.DimensionTolerance <= 0 {
		c.DimensionTolerance = DefaultDimensionTolerance
	}
}

// ApplyOverrides copies every key that is set in v (bound flags or
// PDF2PPTX_* environment variables) over the file values.
func (c *Config) ApplyOverrides(v *viper.Viper) {
	if v.IsSet("editable") {
		c.Editable = v.GetBool("editable")
	}
	if v.IsSet("zoom") {
		c.Zoom = v.GetFloat64("zoom")
	}
	if v.IsSet("size_policy") {
		c.SizePolicy = SizePolicy(v.GetString("size_policy"))
	}
	if v.IsSet("extractor") {
		c.Extractor = Extractor(v.GetString("extractor"))
	}
	if v.IsSet("password") {
		c.Password = v.GetString("password")
	}
	if v.IsSet("alt_text") {
		c.AltText = v.GetBool("alt_text")
	}
	if v.IsSet("report") {
		c.Report = v.GetString("report")
	}
	c.applyDefaults()
}

func (c *Config) Validate() error {
	switch c.SizePolicy {
	case SizeLast, SizeFirst, SizeReject, SizeRescale:
	default:
		return fmt.Errorf("unknown size policy %q (expected last, first, reject or rescale)", c.SizePolicy)
	}

	switch c.Extractor {
	case ExtractorStructured, ExtractorTextLayer:
	default:
		return fmt.Errorf("unknown extractor %q (expected structured or textlayer)", c.Extractor)
	}

	if c.Zoom > 16 {
		return fmt.Errorf("zoom %.1f is too large (max 16)", c.Zoom)
	}

	return nil
}
