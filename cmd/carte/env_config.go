package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dendoesit/carte/internal/config"
)

// envPrefix marks the variables read by carte.
const envPrefix = "CARTE_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // CARTE_CONFIG: config file name or path
	OutputDir  string        // CARTE_OUTPUT_DIR: output directory
	Timeout    time.Duration // CARTE_TIMEOUT: per-attachment timeout
	MaxSize    int64         // CARTE_MAX_SIZE: bytes per attachment
	Prefetch   int           // CARTE_PREFETCH: parallel fetches per export
	UserAgent  string        // CARTE_USER_AGENT: HTTP User-Agent
	RateLimit  float64       // CARTE_RATE_LIMIT: remote fetches per second
	S3Region   string        // CARTE_S3_REGION
	S3Endpoint string        // CARTE_S3_ENDPOINT
	Title      string        // CARTE_TITLE: title page heading
	Subtitle   string        // CARTE_SUBTITLE: title page subheading
	Date       string        // CARTE_DATE: title page date
	Templates  string        // CARTE_TEMPLATES: custom checklist template directory
	LogLevel   string        // CARTE_LOG_LEVEL
	LogFormat  string        // CARTE_LOG_FORMAT
	Workers    int           // CARTE_WORKERS: concurrent exports
}

// knownEnvVars lists valid CARTE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"CARTE_CONFIG":      true,
	"CARTE_OUTPUT_DIR":  true,
	"CARTE_TIMEOUT":     true,
	"CARTE_MAX_SIZE":    true,
	"CARTE_PREFETCH":    true,
	"CARTE_USER_AGENT":  true,
	"CARTE_RATE_LIMIT":  true,
	"CARTE_S3_REGION":   true,
	"CARTE_S3_ENDPOINT": true,
	"CARTE_TITLE":       true,
	"CARTE_SUBTITLE":    true,
	"CARTE_DATE":        true,
	"CARTE_TEMPLATES":   true,
	"CARTE_LOG_LEVEL":   true,
	"CARTE_LOG_FORMAT":  true,
	"CARTE_WORKERS":     true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers and durations are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("CARTE_CONFIG"),
		OutputDir:  getenv("CARTE_OUTPUT_DIR"),
		UserAgent:  getenv("CARTE_USER_AGENT"),
		S3Region:   getenv("CARTE_S3_REGION"),
		S3Endpoint: getenv("CARTE_S3_ENDPOINT"),
		Title:      getenv("CARTE_TITLE"),
		Subtitle:   getenv("CARTE_SUBTITLE"),
		Date:       getenv("CARTE_DATE"),
		Templates:  getenv("CARTE_TEMPLATES"),
		LogLevel:   getenv("CARTE_LOG_LEVEL"),
		LogFormat:  getenv("CARTE_LOG_FORMAT"),
	}

	if v := getenv("CARTE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if v := getenv("CARTE_MAX_SIZE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.MaxSize = n
		}
	}
	if v := getenv("CARTE_PREFETCH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Prefetch = n
		}
	}
	if v := getenv("CARTE_RATE_LIMIT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.RateLimit = f
		}
	}
	if v := getenv("CARTE_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Workers = n
		}
	}

	return cfg
}

// unknownEnvVars returns the CARTE_* variable names that carte does not
// read, sorted.
func unknownEnvVars(environ []string) []string {
	var unknown []string
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// warnUnknownEnvVars prints a warning per unrecognized CARTE_* variable.
// Helps catch typos like CARTE_TIMOUT.
func warnUnknownEnvVars(env *Environment) {
	for _, name := range unknownEnvVars(env.Environ()) {
		env.warnf("warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig overrides config file values with the environment.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.Timeout > 0 {
		cfg.Fetch.Timeout = env.Timeout.String()
	}
	if env.MaxSize > 0 {
		cfg.Fetch.MaxSize = env.MaxSize
	}
	if env.Prefetch > 0 {
		cfg.Fetch.Workers = env.Prefetch
	}
	if env.UserAgent != "" {
		cfg.Fetch.UserAgent = env.UserAgent
	}
	if env.RateLimit > 0 {
		cfg.Fetch.RateLimit = env.RateLimit
	}
	if env.S3Region != "" {
		cfg.S3.Region = env.S3Region
	}
	if env.S3Endpoint != "" {
		cfg.S3.Endpoint = env.S3Endpoint
	}
	if env.Title != "" {
		cfg.Document.Title = env.Title
	}
	if env.Subtitle != "" {
		cfg.Document.Subtitle = env.Subtitle
	}
	if env.Date != "" {
		cfg.Document.Date = env.Date
	}
	if env.Templates != "" {
		cfg.Templates.BasePath = env.Templates
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		cfg.Log.Format = env.LogFormat
	}
}

// describeEnv renders the applied variables for --verbose output.
func describeEnv(env *envConfig) string {
	var parts []string
	add := func(name, value string) {
		if value != "" {
			parts = append(parts, fmt.Sprintf("%s=%s", name, value))
		}
	}
	add("CARTE_CONFIG", env.ConfigPath)
	add("CARTE_OUTPUT_DIR", env.OutputDir)
	add("CARTE_S3_REGION", env.S3Region)
	add("CARTE_TEMPLATES", env.Templates)
	if env.Timeout > 0 {
		add("CARTE_TIMEOUT", env.Timeout.String())
	}
	if env.Workers > 0 {
		add("CARTE_WORKERS", strconv.Itoa(env.Workers))
	}
	return strings.Join(parts, " ")
}
