// Package config loads pricing configuration from HCL files.
package config

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/cardsum/internal/pricing"
)

// Config represents the complete pricing configuration
type Config struct {
	LogLevel   string
	Simulation SimulationSettings
	Strikes    pricing.Strikes
	Delta      DeltaSettings
	Quote      QuoteSettings
}

// SimulationSettings controls the Monte Carlo run
type SimulationSettings struct {
	Workers    int
	Iterations int
	Seed       int64
}

// DeltaSettings controls the delta perturbation
type DeltaSettings struct {
	Threshold float64
}

// QuoteSettings controls market making around theo
type QuoteSettings struct {
	Tick   float64
	Credit float64
}

// file mirrors the HCL layout. Attributes are pointers so that an absent
// attribute keeps its default rather than becoming zero.
type file struct {
	LogLevel   *string          `hcl:"log_level,optional"`
	Simulation *simulationBlock `hcl:"simulation,block"`
	Strikes    *strikesBlock    `hcl:"strikes,block"`
	Delta      *deltaBlock      `hcl:"delta,block"`
	Quote      *quoteBlock      `hcl:"quote,block"`
}

type simulationBlock struct {
	Workers    *int   `hcl:"workers,optional"`
	Iterations *int   `hcl:"iterations,optional"`
	Seed       *int64 `hcl:"seed,optional"`
}

type strikesBlock struct {
	Call     *float64 `hcl:"call,optional"`
	Put      *float64 `hcl:"put,optional"`
	Straddle *float64 `hcl:"straddle,optional"`
}

type deltaBlock struct {
	Threshold *float64 `hcl:"threshold,optional"`
}

type quoteBlock struct {
	Tick   *float64 `hcl:"tick,optional"`
	Credit *float64 `hcl:"credit,optional"`
}

// DefaultConfig returns default pricing configuration
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Simulation: SimulationSettings{
			Workers:    4,
			Iterations: 100000,
		},
		Strikes: pricing.DefaultStrikes(),
		Delta: DeltaSettings{
			Threshold: pricing.DefaultDeltaThreshold,
		},
		Quote: QuoteSettings{
			Tick: 0.5,
		},
	}
}

// LoadConfig loads configuration from an HCL file. A missing file yields the
// defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(f)
}

// ParseConfig parses configuration from HCL source
func ParseConfig(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(f)
}

func decode(f *hcl.File) (*Config, error) {
	var raw file
	diags := gohcl.DecodeBody(f.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := DefaultConfig()
	set(&config.LogLevel, raw.LogLevel)
	if b := raw.Simulation; b != nil {
		set(&config.Simulation.Workers, b.Workers)
		set(&config.Simulation.Iterations, b.Iterations)
		set(&config.Simulation.Seed, b.Seed)
	}
	if b := raw.Strikes; b != nil {
		set(&config.Strikes.Call, b.Call)
		set(&config.Strikes.Put, b.Put)
		set(&config.Strikes.Straddle, b.Straddle)
	}
	if b := raw.Delta; b != nil {
		set(&config.Delta.Threshold, b.Threshold)
	}
	if b := raw.Quote; b != nil {
		set(&config.Quote.Tick, b.Tick)
		set(&config.Quote.Credit, b.Credit)
	}
	return config, nil
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Simulation.Workers <= 0 {
		return fmt.Errorf("invalid workers: %d", c.Simulation.Workers)
	}
	if c.Simulation.Iterations <= 0 {
		return fmt.Errorf("invalid iterations: %d", c.Simulation.Iterations)
	}
	if c.Quote.Tick <= 0 {
		return fmt.Errorf("quote tick must be positive: %g", c.Quote.Tick)
	}
	if c.Quote.Credit < 0 {
		return fmt.Errorf("quote credit must not be negative: %g", c.Quote.Credit)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}

// EngineConfig returns the pricing engine configuration for these settings
func (c *Config) EngineConfig() pricing.Config {
	threshold := c.Delta.Threshold
	return pricing.Config{
		Workers:        c.Simulation.Workers,
		Iterations:     c.Simulation.Iterations,
		Seed:           c.Simulation.Seed,
		DeltaThreshold: &threshold,
	}
}
