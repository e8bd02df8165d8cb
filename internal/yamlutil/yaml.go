// Package yamlutil wraps YAML parsing to isolate the external dependency.
// JSON documents are accepted too, since JSON is valid YAML for the parser.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// DefaultMaxSize limits YAML input to prevent memory exhaustion.
const DefaultMaxSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

// Option adjusts a single decode call.
type Option func(*decodeConfig)

type decodeConfig struct {
	maxSize int
}

// WithMaxSize overrides DefaultMaxSize. Records carrying inline attachment
// data need a larger limit than configuration files.
func WithMaxSize(n int) Option {
	return func(c *decodeConfig) {
		if n > 0 {
			c.maxSize = n
		}
	}
}

func validateInput(data []byte, v any, opts []Option) error {
	cfg := decodeConfig{maxSize: DefaultMaxSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > cfg.maxSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), cfg.maxSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// Unmarshal decodes data into v, ignoring unknown fields.
func Unmarshal(data []byte, v any, opts ...Option) error {
	if err := validateInput(data, v, opts); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any, opts ...Option) error {
	if err := validateInput(data, v, opts); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// Marshal encodes v as block-style YAML.
func Marshal(v any) ([]byte, error) {
	result, err := yaml.MarshalWithOptions(v, yaml.IndentSequence(true))
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return result, nil
}
