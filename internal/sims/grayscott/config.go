package grayscott

import (
	"strconv"

	"rdcore/internal/core"
)

// Config controls the Gray-Scott arena.
type Config struct {
	Width  int
	Height int

	Seed     int64
	DataType core.DataType
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{Width: 128, Height: 128, Seed: 1, DataType: core.Float32}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["data_type"]; ok {
		if parsed, err := core.ParseDataType(v); err == nil {
			c.DataType = parsed
		}
	}
	return c
}
