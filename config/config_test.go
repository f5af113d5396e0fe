package config

import (
	"errors"
	"testing"

	"github.com/projecteru2/uuidkey/symbol"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if c.Count != 20 {
		t.Errorf("expected count 20, got %d", c.Count)
	}
	if c.Output != "uuidKey.json" {
		t.Errorf("expected uuidKey.json, got %q", c.Output)
	}
	if !c.Lock {
		t.Error("expected locking on by default")
	}
	if c.Log == nil || c.Log.Level != "info" {
		t.Errorf("expected info log level, got %+v", c.Log)
	}
	if c.Seed != "" {
		t.Errorf("expected empty seed, got %q", c.Seed)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	c := DefaultConfig()
	c.Count = -3
	if err := c.Validate(); !errors.Is(err, symbol.ErrNegativeCount) {
		t.Errorf("expected ErrNegativeCount, got %v", err)
	}

	c = DefaultConfig()
	c.Output = ""
	if err := c.Validate(); err == nil {
		t.Error("expected error for empty output")
	}

	c = DefaultConfig()
	c.Strategy = "shuffle"
	if err := c.Validate(); err == nil {
		t.Error("expected error for unknown strategy")
	}

	c = DefaultConfig()
	c.Count = 0
	if err := c.Validate(); err != nil {
		t.Errorf("zero count is valid: %v", err)
	}
}
