package loader

import (
	"fmt"
	"unicode/utf8"

	"github.com/BaSui01/glutils/types"
)

// DefaultMaxLineBytes bounds a single JSONL line.
const DefaultMaxLineBytes = 10 * 1024 * 1024

// Config configures the built-in formats.
type Config struct {
	// MaxLineBytes is the longest JSONL line accepted. 0 means DefaultMaxLineBytes.
	MaxLineBytes int `yaml:"max_line_bytes" env:"MAX_LINE_BYTES"`
	// DirConcurrency is how many directory entries load at once. Values
	// below 2 load entries one after another. Aggregation order is the
	// directory order either way.
	DirConcurrency int `yaml:"dir_concurrency" env:"DIR_CONCURRENCY"`
	// CSV configures the CSV reader.
	CSV CSVConfig `yaml:"csv" env:"CSV"`
}

// CSVConfig configures the CSV loader.
type CSVConfig struct {
	// Delimiter is the field separator, a single character. Defaults to ",".
	Delimiter string `yaml:"delimiter" env:"DELIMITER"`
	// InferTypes converts numeric and boolean columns. When false every
	// cell stays a string.
	InferTypes bool `yaml:"infer_types" env:"INFER_TYPES"`
}

// DefaultConfig returns the configuration used by the package-level helpers.
func DefaultConfig() Config {
	return Config{
		MaxLineBytes:   DefaultMaxLineBytes,
		DirConcurrency: 1,
		CSV: CSVConfig{
			Delimiter:  ",",
			InferTypes: true,
		},
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.MaxLineBytes < 0 {
		return types.NewError(types.ErrInvalidArgument,
			fmt.Sprintf("max_line_bytes must not be negative, got %d", c.MaxLineBytes))
	}
	if c.DirConcurrency < 0 {
		return types.NewError(types.ErrInvalidArgument,
			fmt.Sprintf("dir_concurrency must not be negative, got %d", c.DirConcurrency))
	}
	if c.CSV.Delimiter != "" && utf8.RuneCountInString(c.CSV.Delimiter) != 1 {
		return types.NewError(types.ErrInvalidArgument,
			fmt.Sprintf("csv delimiter must be a single character, got %q", c.CSV.Delimiter))
	}
	return nil
}

// delimiter returns the configured separator rune.
func (c CSVConfig) delimiter() rune {
	if c.Delimiter == "" {
		return ','
	}
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}
