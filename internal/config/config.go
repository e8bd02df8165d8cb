// Package config loads the carte configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dendoesit/carte/internal/dateutil"
	"github.com/dendoesit/carte/internal/fileutil"
	"github.com/dendoesit/carte/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// DefaultName is the config name searched when --config is not given.
const DefaultName = "carte"

// Field length limits.
const (
	MaxPathLength      = 4096
	MaxURLLength       = 2048 // Browser limit
	MaxTitleLength     = 200  // Title page heading
	MaxSubtitleLength  = 200  // Title page subheading
	MaxDateLength      = 60   // "auto:D MMMM YYYY" or a literal date
	MaxUserAgentLength = 200
	MaxRegionLength    = 50
	MaxDurationLength  = 20
	MaxTemplateLength  = 100
)

// Bounds for numeric settings.
const (
	MaxWorkers    = 32
	MaxFetchSize  = 1 << 30 // 1 GiB
	MaxRateLimit  = 1000.0
	MaxTimeoutAge = 10 * time.Minute
)

// Config holds all configuration for an export.
type Config struct {
	Output    OutputConfig    `yaml:"output"`
	Fetch     FetchConfig     `yaml:"fetch"`
	S3        S3Config        `yaml:"s3"`
	Document  DocumentConfig  `yaml:"document"`
	Templates TemplatesConfig `yaml:"templates"`
	Log       LogConfig       `yaml:"log"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Empty = current directory
}

// FetchConfig defines how attachments are fetched.
type FetchConfig struct {
	Timeout   string  `yaml:"timeout"`   // Go duration per attachment, e.g. "30s"
	MaxSize   int64   `yaml:"maxSize"`   // bytes per attachment (0 = library default)
	Workers   int     `yaml:"workers"`   // parallel prefetch per export (0 = default)
	UserAgent string  `yaml:"userAgent"` // HTTP User-Agent header
	RateLimit float64 `yaml:"rateLimit"` // remote fetches per second (0 = unlimited)
}

// S3Config defines S3 access for s3:// attachments.
type S3Config struct {
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"` // S3-compatible stores (MinIO, Ceph)
}

// DocumentConfig defines title page options.
type DocumentConfig struct {
	Title    string `yaml:"title"`    // Empty = "CARTEA TEHNICĂ"
	Subtitle string `yaml:"subtitle"` // Empty = "A CONSTRUCȚIEI"
	Date     string `yaml:"date"`     // "auto", "auto:FORMAT" or a literal date
}

// TemplatesConfig defines where custom checklist templates live.
type TemplatesConfig struct {
	BasePath string `yaml:"basePath"` // Empty = embedded templates only
	Default  string `yaml:"default"`  // Template used by "carte init"
}

// LogConfig defines diagnostic logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// TimeoutDuration parses Fetch.Timeout. An empty value yields 0.
func (f FetchConfig) TimeoutDuration() (time.Duration, error) {
	if f.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(f.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: fetch.timeout: %v", ErrInvalidValue, err)
	}
	return d, nil
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"fetch.timeout", c.Fetch.Timeout, MaxDurationLength},
		{"fetch.userAgent", c.Fetch.UserAgent, MaxUserAgentLength},
		{"s3.region", c.S3.Region, MaxRegionLength},
		{"s3.endpoint", c.S3.Endpoint, MaxURLLength},
		{"document.title", c.Document.Title, MaxTitleLength},
		{"document.subtitle", c.Document.Subtitle, MaxSubtitleLength},
		{"document.date", c.Document.Date, MaxDateLength},
		{"templates.basePath", c.Templates.BasePath, MaxPathLength},
		{"templates.default", c.Templates.Default, MaxTemplateLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	timeout, err := c.Fetch.TimeoutDuration()
	if err != nil {
		return err
	}
	if timeout < 0 || timeout > MaxTimeoutAge {
		return fmt.Errorf("%w: fetch.timeout: must be between 0 and %s, got %s", ErrInvalidValue, MaxTimeoutAge, timeout)
	}
	if c.Fetch.MaxSize < 0 || c.Fetch.MaxSize > MaxFetchSize {
		return fmt.Errorf("%w: fetch.maxSize: must be between 0 and %d, got %d", ErrInvalidValue, MaxFetchSize, c.Fetch.MaxSize)
	}
	if c.Fetch.Workers < 0 || c.Fetch.Workers > MaxWorkers {
		return fmt.Errorf("%w: fetch.workers: must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Fetch.Workers)
	}
	if c.Fetch.RateLimit < 0 || c.Fetch.RateLimit > MaxRateLimit {
		return fmt.Errorf("%w: fetch.rateLimit: must be between 0 and %g, got %g", ErrInvalidValue, MaxRateLimit, c.Fetch.RateLimit)
	}

	if c.S3.Endpoint != "" && !fileutil.IsURL(c.S3.Endpoint) {
		return fmt.Errorf("%w: s3.endpoint: must be an http(s) URL, got %q", ErrInvalidValue, c.S3.Endpoint)
	}

	if err := validateDate(c.Document.Date); err != nil {
		return err
	}

	if c.Log.Level != "" {
		switch strings.ToLower(c.Log.Level) {
		case "debug", "info", "warn", "error":
		default:
			return fmt.Errorf("%w: log.level: %q (must be debug, info, warn, or error)", ErrInvalidValue, c.Log.Level)
		}
	}
	if c.Log.Format != "" {
		switch strings.ToLower(c.Log.Format) {
		case "text", "json":
		default:
			return fmt.Errorf("%w: log.format: %q (must be text or json)", ErrInvalidValue, c.Log.Format)
		}
	}

	return nil
}

// validateDate rejects malformed "auto" values early. Literal dates are
// printed verbatim and never rejected.
func validateDate(value string) error {
	if _, err := dateutil.ResolveDate(value, time.Time{}); err != nil {
		return fmt.Errorf("%w: document.date: %v", ErrInvalidValue, err)
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

// DefaultConfig returns a configuration that defers every setting to the
// library defaults.
func DefaultConfig() *Config {
	return &Config{
		Document:  DocumentConfig{Date: "auto"},
		Templates: TemplatesConfig{Default: "standard"},
		Log:       LogConfig{Level: "warn", Format: "text"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
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

// SearchPaths lists the files LoadConfig tries for a config name, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "carte", name+ext))
		}
	}
	return paths
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\") || fileutil.IsRecordFile(s)
}

// resolveConfigPath searches for a config file by name: the current
// directory first, then $XDG_CONFIG_HOME/carte (os.UserConfigDir).
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
