package config

import (
	"errors"
	"fmt"

	coretypes "github.com/projecteru2/core/types"

	"github.com/projecteru2/uuidkey/document"
	"github.com/projecteru2/uuidkey/symbol"
)

// Config holds the generator settings. The zero-flag, zero-env run uses
// DefaultConfig unchanged.
type Config struct {
	// Count is how many symbols to generate.
	// Env: UUIDKEY_COUNT. Default: 20.
	Count int `json:"count" mapstructure:"count"`
	// Output is the document path, relative to the working directory.
	// Env: UUIDKEY_OUTPUT. Default: uuidKey.json.
	Output string `json:"output" mapstructure:"output"`
	// Seed makes generation reproducible. Empty means a fresh random stream.
	Seed string `json:"seed" mapstructure:"seed"`
	// Strategy is "reject" or "exclude".
	Strategy string `json:"strategy" mapstructure:"strategy"`
	// Lock serializes concurrent runs with an flock on the output's directory.
	// Env: UUIDKEY_LOCK. Default: true.
	Lock bool `json:"lock" mapstructure:"lock"`
	// Log configuration, uses eru core's ServerLogConfig.
	Log *coretypes.ServerLogConfig `json:"log" mapstructure:"log"`
}

// DefaultConfig returns the settings of a plain invocation.
func DefaultConfig() *Config {
	return &Config{
		Count:    symbol.DefaultCount,
		Output:   document.DefaultPath,
		Strategy: string(symbol.StrategyReject),
		Lock:     true,
		Log: &coretypes.ServerLogConfig{
			Level: "info",
		},
	}
}

// Validate rejects settings the generator cannot honor.
func (c *Config) Validate() error {
	if c.Count < 0 {
		return fmt.Errorf("count %d: %w", c.Count, symbol.ErrNegativeCount)
	}
	if c.Output == "" {
		return errors.New("output path is empty")
	}
	if _, err := symbol.ParseStrategy(c.Strategy); err != nil {
		return err
	}
	return nil
}
