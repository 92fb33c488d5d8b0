package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/cardsum/internal/config"
	"github.com/lox/cardsum/internal/pricing"
	"github.com/lox/cardsum/internal/quote"
	"github.com/lox/cardsum/internal/report"
)

// ConfigFlags override values loaded from the HCL configuration file
type ConfigFlags struct {
	Config string `short:"c" default:"cardsum.hcl" env:"CARDSUM_CONFIG" help:"Path to HCL configuration file"`
	Debug  bool   `help:"Enable debug logging"`
}

func (f ConfigFlags) load() (*config.Config, error) {
	cfg, err := config.LoadConfig(f.Config)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// PriceCmd prices the call and put and their deltas
type PriceCmd struct {
	StateFlags  `embed:""`
	ConfigFlags `embed:""`

	Workers        int      `short:"w" env:"CARDSUM_WORKERS" help:"Parallel workers per pricing run (overrides config)"`
	Iterations     int      `short:"n" env:"CARDSUM_ITERATIONS" help:"Trials per worker (overrides config)"`
	Seed           *int64   `env:"CARDSUM_SEED" help:"Deterministic RNG seed (overrides config)"`
	CallStrike     *float64 `help:"Call strike (overrides config)"`
	PutStrike      *float64 `help:"Put strike (overrides config)"`
	StraddleStrike *float64 `help:"Straddle strike (overrides config)"`
	JSON           string   `name:"json" type:"path" help:"Write a JSON report to this file"`
	Progress       bool     `help:"Show a progress spinner while pricing"`
}

func (c *PriceCmd) Run() error {
	return c.run(os.Stdin, os.Stdout, os.Stderr)
}

func (c *PriceCmd) run(stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := c.load()
	if err != nil {
		return err
	}
	c.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := setupLogger(stderr, cfg.LogLevel, c.Debug)
	if err != nil {
		return err
	}

	state, err := c.loadState(stdin)
	if err != nil {
		return err
	}

	engineConfig := cfg.EngineConfig()
	engineConfig.Logger = logger
	var prog *progress
	if c.Progress {
		prog = startProgress(stderr, engineConfig.Workers)
		engineConfig.OnWorkerDone = prog.OnWorkerDone
	}

	engine, err := pricing.New(engineConfig)
	if err != nil {
		return err
	}

	logger.Debug("pricing",
		"cards", state.String(),
		"theo", state.TheoreticalPrice(),
		"workers", engineConfig.Workers,
		"iterations", engineConfig.Iterations)

	result, err := engine.Evaluate(state, cfg.Strikes)
	if prog != nil {
		prog.Stop()
	}
	if err != nil {
		return err
	}

	rep := report.New(state.ChosenCards(), cfg.Strikes, result)
	if market, err := quote.QuoteFloat(result.Theo, cfg.Quote.Tick, cfg.Quote.Credit); err == nil {
		rep.WithMarket(market)
	} else {
		logger.Warn("Failed to quote market", "error", err)
	}

	if err := rep.WriteValues(stdout); err != nil {
		return err
	}
	if err := rep.Render(stderr); err != nil {
		return err
	}

	if c.JSON != "" {
		if err := rep.WriteFile(c.JSON); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		logger.Info("Wrote report", "path", c.JSON)
	}
	return nil
}

func (c *PriceCmd) apply(cfg *config.Config) {
	if c.Workers != 0 {
		cfg.Simulation.Workers = c.Workers
	}
	if c.Iterations != 0 {
		cfg.Simulation.Iterations = c.Iterations
	}
	if c.Seed != nil {
		cfg.Simulation.Seed = *c.Seed
	}
	if c.CallStrike != nil {
		cfg.Strikes.Call = *c.CallStrike
	}
	if c.PutStrike != nil {
		cfg.Strikes.Put = *c.PutStrike
	}
	if c.StraddleStrike != nil {
		cfg.Strikes.Straddle = *c.StraddleStrike
	}
}

// TheoCmd prints the theoretical price of the final sum
type TheoCmd struct {
	StateFlags `embed:""`
}

func (c *TheoCmd) Run() error {
	return c.run(os.Stdin, os.Stdout)
}

func (c *TheoCmd) run(stdin io.Reader, stdout io.Writer) error {
	state, err := c.loadState(stdin)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "%g\n", state.TheoreticalPrice())
	return err
}

// QuoteCmd prints a bid and ask around the theoretical price
type QuoteCmd struct {
	StateFlags  `embed:""`
	ConfigFlags `embed:""`

	Tick   *float64 `help:"Tick size (overrides config)"`
	Credit *float64 `help:"Edge taken on each side of theo (overrides config)"`
}

func (c *QuoteCmd) Run() error {
	return c.run(os.Stdin, os.Stdout, os.Stderr)
}

func (c *QuoteCmd) run(stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := c.load()
	if err != nil {
		return err
	}
	if c.Tick != nil {
		cfg.Quote.Tick = *c.Tick
	}
	if c.Credit != nil {
		cfg.Quote.Credit = *c.Credit
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := setupLogger(stderr, cfg.LogLevel, c.Debug)
	if err != nil {
		return err
	}

	state, err := c.loadState(stdin)
	if err != nil {
		return err
	}

	theo := state.TheoreticalPrice()
	market, err := quote.QuoteFloat(theo, cfg.Quote.Tick, cfg.Quote.Credit)
	if err != nil {
		return err
	}

	logger.Debug("quoted",
		"theo", theo,
		"tick", cfg.Quote.Tick,
		"credit", cfg.Quote.Credit,
		"spread", market.Spread().String())

	_, err = fmt.Fprintln(stdout, market.String())
	return err
}
