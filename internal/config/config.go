// Package config loads the settings shared by the loom command-line tools
// from loom.yaml, loom.yml or loom.toml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"loom/internal/parser"
)

// Format represents the configuration file format
type Format int

const (
	// FormatTOML represents TOML format
	FormatTOML Format = iota

	// FormatYAML represents YAML format
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// DefaultFiles are probed in order by Discover.
var DefaultFiles = []string{"loom.yaml", "loom.yml", "loom.toml"}

// Config holds the tool settings. Zero values are replaced by defaults.
type Config struct {
	Entry        string `toml:"entry" yaml:"entry"`
	Precedence   bool   `toml:"precedence" yaml:"precedence"`
	KeepComments bool   `toml:"keep_comments" yaml:"keep_comments"`
	Color        string `toml:"color" yaml:"color"`         // auto, always, never
	LogLevel     string `toml:"log_level" yaml:"log_level"` // none .. debug

	path string
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the file at path, detecting its format by extension. An empty
// path falls back to Discover in the working directory.
func Load(path string) (*Config, error) {
	if path == "" {
		return Discover(".")
	}

	format, err := detectFormat(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := Parse(content, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.path = path
	return cfg, nil
}

// Discover loads the first of DefaultFiles found in dir, or the defaults
// when none exists.
func Discover(dir string) (*Config, error) {
	for _, name := range DefaultFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(), nil
}

// Parse decodes content in the given format, applies defaults and
// validates the result.
func Parse(content []byte, format Format) (*Config, error) {
	var cfg Config

	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(content, &cfg); err != nil {
			return nil, fmt.Errorf("TOML parse error: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return nil, fmt.Errorf("YAML parse error: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// detectFormat determines the configuration format from file extension
func detectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return 0, fmt.Errorf("unsupported format: %q", ext)
	}
}

func (c *Config) applyDefaults() {
	if c.Entry == "" {
		c.Entry = "program"
	}
	if c.Color == "" {
		c.Color = "auto"
	}
	if c.LogLevel == "" {
		c.LogLevel = "warning"
	}
}

var logLevels = map[string]int{
	"none":     -4,
	"critical": -3,
	"error":    -2,
	"warning":  -1,
	"notice":   0,
	"info":     1,
	"debug":    2,
}

// Validate checks every field against the values the tools accept.
func (c *Config) Validate() error {
	if names := parser.EntryNames(); !slices.Contains(names, c.Entry) {
		return fmt.Errorf("invalid entry %q: must be one of %s", c.Entry, strings.Join(names, ", "))
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color %q: must be auto, always or never", c.Color)
	}
	if _, ok := logLevels[c.LogLevel]; !ok {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return nil
}

// Verbosity maps LogLevel to a commonlog verbosity.
func (c *Config) Verbosity() int {
	return logLevels[c.LogLevel]
}

// ParserConfig returns the parser settings of c.
func (c *Config) ParserConfig() parser.Config {
	return parser.Config{
		Entry:        c.Entry,
		Precedence:   c.Precedence,
		KeepComments: c.KeepComments,
	}
}

// Path is the file c was loaded from; empty for defaults.
func (c *Config) Path() string {
	return c.path
}
