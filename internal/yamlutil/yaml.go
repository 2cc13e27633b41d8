// Package yamlutil wraps YAML decoding and encoding for config files and
// post frontmatter, so callers share one size limit and one error prefix.
package yamlutil

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

// DecodeOption configures Decode.
type DecodeOption func(*decodeConfig)

type decodeConfig struct {
	strict bool
}

// Strict rejects keys that have no matching field in the destination.
func Strict() DecodeOption {
	return func(c *decodeConfig) { c.strict = true }
}

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// Decode parses YAML data into v.
func Decode(data []byte, v any, opts ...DecodeOption) error {
	if err := validateInput(data, v); err != nil {
		return err
	}

	var cfg decodeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var yamlOpts []yaml.DecodeOption
	if cfg.strict {
		yamlOpts = append(yamlOpts, yaml.Strict())
	}

	if err := yaml.UnmarshalWithOptions(data, v, yamlOpts...); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// DecodeFile reads path and decodes it into v. Files larger than
// MaxInputSize are rejected before they are read.
func DecodeFile(path string, v any, opts ...DecodeOption) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() > int64(MaxInputSize) {
		return fmt.Errorf("%w: %s is %d bytes (max %d)", ErrInputTooLarge, path, info.Size(), MaxInputSize)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path
	if err != nil {
		return err
	}
	return Decode(data, v, opts...)
}

// Encode renders v as YAML with sequences indented under their key.
func Encode(v any) ([]byte, error) {
	result, err := yaml.MarshalWithOptions(v, yaml.IndentSequence(true))
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return result, nil
}
