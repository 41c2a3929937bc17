// Package config loads the YAML configuration file of the wiki2pdf CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-wiki2pdf/internal/fileutil"
	"github.com/alnah/go-wiki2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxTitleLength       = 200
	MaxPathLength        = 4096
	MaxTextLength        = 500
	MaxPageSizeLength    = 10 // "letter", "a4", "legal"
	MaxOrientationLength = 10 // "portrait", "landscape"
	MaxStyleLength       = 50 // chroma style name
)

// Layout defaults, mirrored by the root package.
const (
	DefaultPageBreakMaxLevel = 1
	DefaultPageTOCMaxLevel   = 2
	maxLevel                 = 6
)

// Config holds all configuration for wiki conversion.
type Config struct {
	Title   string        `yaml:"title"`
	Assets  AssetsConfig  `yaml:"assets"`
	Layout  LayoutConfig  `yaml:"layout"`
	Page    PageConfig    `yaml:"page"`
	Footer  FooterConfig  `yaml:"footer"`
	Output  OutputConfig  `yaml:"output"`
	Render  RenderConfig  `yaml:"render"`
	Log     LogConfig     `yaml:"log"`
	Workers int           `yaml:"workers"` // 0 = auto
	Timeout time.Duration `yaml:"timeout"` // 0 = library default
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	Dir string `yaml:"dir"` // Empty = use embedded assets
}

// LayoutConfig controls page breaks and per-page TOCs by page level.
type LayoutConfig struct {
	PageBreakMaxLevel int `yaml:"pageBreakMaxLevel"`
	PageTOCMaxLevel   int `yaml:"pageTocMaxLevel"`
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "legal"
	Orientation string  `yaml:"orientation"` // "portrait", "landscape"
	Margin      float64 `yaml:"margin"`      // inches
}

// FooterConfig defines page footer options.
type FooterConfig struct {
	PageNumber bool   `yaml:"pageNumber"`
	Position   string `yaml:"position"` // "left", "center", "right"
	Text       string `yaml:"text"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	HTML bool   `yaml:"html"` // also write the intermediate HTML
	Dir  string `yaml:"dir"`  // Empty = current directory
}

// RenderConfig tunes markdown rendering.
type RenderConfig struct {
	HighlightStyle string `yaml:"highlightStyle"`
	RawHTML        bool   `yaml:"rawHtml"`
}

// LogConfig selects the CLI log handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // pretty, json, text
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"title", c.Title, MaxTitleLength},
		{"assets.dir", c.Assets.Dir, MaxPathLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"page.orientation", c.Page.Orientation, MaxOrientationLength},
		{"footer.text", c.Footer.Text, MaxTextLength},
		{"render.highlightStyle", c.Render.HighlightStyle, MaxStyleLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if err := validateLevel("layout.pageBreakMaxLevel", c.Layout.PageBreakMaxLevel); err != nil {
		return err
	}
	if err := validateLevel("layout.pageTocMaxLevel", c.Layout.PageTOCMaxLevel); err != nil {
		return err
	}

	if c.Footer.Position != "" {
		switch strings.ToLower(c.Footer.Position) {
		case "left", "center", "right":
			// valid
		default:
			return fmt.Errorf("%w: footer.position %q (must be left, center, or right)", ErrInvalidValue, c.Footer.Position)
		}
	}

	if c.Log.Format != "" {
		switch strings.ToLower(c.Log.Format) {
		case "pretty", "json", "text":
			// valid
		default:
			return fmt.Errorf("%w: log.format %q (must be pretty, json, or text)", ErrInvalidValue, c.Log.Format)
		}
	}

	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidValue, c.Workers)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative, got %s", ErrInvalidValue, c.Timeout)
	}
	return nil
}

func validateLevel(fieldName string, level int) error {
	if level < 0 || level > maxLevel {
		return fmt.Errorf("%w: %s must be between 0 and %d, got %d", ErrInvalidValue, fieldName, maxLevel, level)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Layout: LayoutConfig{
			PageBreakMaxLevel: DefaultPageBreakMaxLevel,
			PageTOCMaxLevel:   DefaultPageTOCMaxLevel,
		},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys absent from the file keep their DefaultConfig value.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-wiki2pdf/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-wiki2pdf", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
