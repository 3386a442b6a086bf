package app

import (
	"strconv"

	"github.com/spf13/pflag"
)

// Config represents the command-line parameters for the viewer.
type Config struct {
	Engine string
	File   string
	Width  int
	Height int
	Seed   int64

	Scale        int
	TPS          int
	StepsPerTick int
	HUDWidth     int

	Chemical    int
	BrushRadius float64
	BrushValue  float64

	// Low and High fix the display range. When High <= Low the range follows
	// the data.
	Low  float64
	High float64
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Engine:       "grayscott",
		Width:        128,
		Height:       128,
		Seed:         1,
		Scale:        4,
		TPS:          30,
		StepsPerTick: 8,
		HUDWidth:     220,
		Chemical:     1,
		BrushRadius:  3,
		BrushValue:   0.5,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&c.Engine, "engine", c.Engine, "engine to run")
	fs.StringVarP(&c.File, "file", "f", c.File, "pattern document to load and save")
	fs.IntVar(&c.Width, "width", c.Width, "arena width in cells")
	fs.IntVar(&c.Height, "height", c.Height, "arena height in cells")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the initial pattern")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "simulation ticks per second")
	fs.IntVar(&c.StepsPerTick, "steps", c.StepsPerTick, "timesteps per tick")
	fs.IntVar(&c.HUDWidth, "hud-width", c.HUDWidth, "parameter panel width, 0 hides it")
	fs.IntVarP(&c.Chemical, "chemical", "c", c.Chemical, "chemical to display and paint")
	fs.Float64Var(&c.BrushRadius, "brush-radius", c.BrushRadius, "paint brush radius in cells")
	fs.Float64Var(&c.BrushValue, "brush-value", c.BrushValue, "value painted by the brush")
	fs.Float64Var(&c.Low, "low", c.Low, "value drawn black")
	fs.Float64Var(&c.High, "high", c.High, "value drawn white")
}

// EngineOptions returns the key/value options passed to engine factories.
func (c *Config) EngineOptions() map[string]string {
	return map[string]string{
		"w":    strconv.Itoa(c.Width),
		"h":    strconv.Itoa(c.Height),
		"seed": strconv.FormatInt(c.Seed, 10),
	}
}
