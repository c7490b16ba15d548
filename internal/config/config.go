package config

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/claes/coursereport/internal/parser"
	"github.com/claes/coursereport/internal/report"
)

// FileName is the config file looked up in the scan root when none is given.
const FileName = ".coursereport.yaml"

// ErrInvalidConfig is returned for config files that cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the report settings. Zero values mean "use the default".
type Config struct {
	Title              string `yaml:"title,omitempty"`
	Subtitle           string `yaml:"subtitle,omitempty"`
	Output             string `yaml:"output,omitempty"`
	DescriptionLimit   int    `yaml:"description_limit,omitempty"`
	DescriptionPreview int    `yaml:"description_preview,omitempty"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Title:              report.DefaultTitle,
		Subtitle:           report.DefaultSubtitle,
		Output:             "course_report.html",
		DescriptionLimit:   parser.DefaultDescriptionLimit,
		DescriptionPreview: report.DefaultDescriptionPreview,
	}
}

// Load reads the YAML file at path on top of the defaults.
// If the file does not exist and optional is true, the defaults are returned.
func Load(path string, optional bool) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(ErrInvalidConfig, "read %s: %v", path, err)
	}
	var file Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return cfg, errors.Wrapf(ErrInvalidConfig, "parse %s: %v", path, err)
	}
	if file.DescriptionLimit < 0 || file.DescriptionPreview < 0 {
		return cfg, errors.Wrapf(ErrInvalidConfig, "%s: description lengths must not be negative", path)
	}
	return cfg.Merge(file), nil
}

// Merge returns c with every non-zero field of o applied.
func (c Config) Merge(o Config) Config {
	if o.Title != "" {
		c.Title = o.Title
	}
	if o.Subtitle != "" {
		c.Subtitle = o.Subtitle
	}
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.DescriptionLimit != 0 {
		c.DescriptionLimit = o.DescriptionLimit
	}
	if o.DescriptionPreview != 0 {
		c.DescriptionPreview = o.DescriptionPreview
	}
	return c
}

// ReportOptions returns the renderer options for c.
func (c Config) ReportOptions() report.Options {
	return report.Options{
		Title:              c.Title,
		Subtitle:           c.Subtitle,
		DescriptionPreview: c.DescriptionPreview,
	}
}
