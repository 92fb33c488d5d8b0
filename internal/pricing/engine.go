// Package pricing estimates option prices on the final sum of a card draw by
// parallel Monte Carlo simulation, and their delta by finite differences.
package pricing

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/cardsum/internal/deck"
	"github.com/lox/cardsum/internal/randutil"
	"github.com/lox/cardsum/internal/statistics"
)

// DefaultDeltaThreshold is the theoretical price at or below which the delta
// perturbation forces the largest remaining card instead of the smallest.
const DefaultDeltaThreshold = 140

// Worker groups reported through Config.OnWorkerDone
const (
	GroupBaseline  = "baseline"
	GroupPerturbed = "perturbed"
)

var (
	ErrInvalidWorkers    = errors.New("worker count must be positive")
	ErrInvalidIterations = errors.New("iteration count must be positive")
	ErrNilState          = errors.New("deck state is nil")
)

// WorkerDone is reported once per finished worker
type WorkerDone struct {
	Group  string
	Worker int
	Trials int
}

// Config holds configuration for a pricing engine
type Config struct {
	// Workers is the number of parallel workers per pricing run
	Workers int

	// Iterations is the number of trials every worker runs. A run simulates
	// Workers * Iterations trials in total.
	Iterations int

	// Seed makes runs reproducible. Zero seeds every worker from fresh entropy.
	Seed int64

	// DeltaThreshold selects the perturbation direction. Nil means 140; any
	// set value, including 0, is used as given.
	DeltaThreshold *float64

	Clock  quartz.Clock
	Logger *log.Logger

	// OnWorkerDone is called from worker goroutines and must be safe for
	// concurrent use.
	OnWorkerDone func(WorkerDone)
}

// Estimate is a Monte Carlo price with its standard error and 95%
// confidence bounds
type Estimate struct {
	Price    float64
	StdError float64
	Low      float64
	High     float64

	// WorkerStdDev is the spread of the per-worker means
	WorkerStdDev float64
}

// estimate prices from the per-worker means; the error and interval come
// from the pooled samples.
func estimate(workerMeans []float64, pooled statistics.Accumulator) Estimate {
	price, spread := statistics.MeanAndStdDev(workerMeans)
	low, high := pooled.ConfidenceInterval95()
	return Estimate{
		Price:        price,
		StdError:     pooled.StdError(),
		Low:          low,
		High:         high,
		WorkerStdDev: spread,
	}
}

// Prices is the outcome of one parallel pricing run
type Prices struct {
	Call     Estimate
	Put      Estimate
	Straddle Estimate

	// Trials is the total number of simulated completions across workers
	Trials  int
	Workers []WorkerResult
}

// Engine runs pricing simulations
type Engine struct {
	config Config
}

// New creates an engine, validating and defaulting the configuration
func New(config Config) (*Engine, error) {
	if config.Workers <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkers, config.Workers)
	}
	if config.Iterations <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidIterations, config.Iterations)
	}
	if config.DeltaThreshold == nil {
		threshold := float64(DefaultDeltaThreshold)
		config.DeltaThreshold = &threshold
	} else {
		threshold := *config.DeltaThreshold
		config.DeltaThreshold = &threshold
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Logger == nil {
		config.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Engine{config: config}, nil
}

// Config returns the engine's effective configuration
func (e *Engine) Config() Config {
	return e.config
}

// Price estimates call, put and straddle prices for the given state.
//
// Each worker receives its own clone of state, so the caller's state is never
// touched. The result is the mean of the per-worker means, which equals the
// pooled mean because every worker runs the same number of trials.
func (e *Engine) Price(state *deck.Cards, strikes Strikes) (Prices, error) {
	if state == nil {
		return Prices{}, ErrNilState
	}
	return e.price(GroupBaseline, 0, state, strikes)
}

func (e *Engine) price(group string, streamBase int, state *deck.Cards, strikes Strikes) (Prices, error) {
	workers := e.config.Workers
	iterations := e.config.Iterations
	results := make([]WorkerResult, workers)

	var g errgroup.Group
	for w := range workers {
		snapshot := state.Clone()
		rng := randutil.ForWorker(e.config.Seed, streamBase+w)

		g.Go(func() error {
			results[w] = runWorker(w, snapshot, strikes, iterations, rng)
			if err := results[w].validate(); err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			if e.config.OnWorkerDone != nil {
				e.config.OnWorkerDone(WorkerDone{Group: group, Worker: w, Trials: iterations})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Prices{}, fmt.Errorf("%s pricing: %w", group, err)
	}

	prices := aggregate(results)
	e.config.Logger.Debug("pricing run complete",
		"group", group,
		"workers", workers,
		"trials", prices.Trials,
		"call", prices.Call.Price,
		"put", prices.Put.Price)
	return prices, nil
}

func aggregate(results []WorkerResult) Prices {
	callMeans := make([]float64, len(results))
	putMeans := make([]float64, len(results))
	straddleMeans := make([]float64, len(results))
	var call, put, straddle statistics.Accumulator

	for i, r := range results {
		callMeans[i] = r.Call.Mean()
		putMeans[i] = r.Put.Mean()
		straddleMeans[i] = r.Straddle.Mean()

		call.Merge(r.Call)
		put.Merge(r.Put)
		straddle.Merge(r.Straddle)
	}

	return Prices{
		Call:     estimate(callMeans, call),
		Put:      estimate(putMeans, put),
		Straddle: estimate(straddleMeans, straddle),
		Trials:   call.N,
		Workers:  results,
	}
}

// Result is the outcome of a full valuation: baseline and perturbed prices
// and the finite-difference deltas between them.
type Result struct {
	Theo          float64
	PerturbedTheo float64
	ForcedRank    deck.Rank

	Baseline  Prices
	Perturbed Prices

	UnderlyingDelta float64
	CallDelta       float64
	PutDelta        float64
	StraddleDelta   float64

	Elapsed time.Duration
	Trials  int
}

// Evaluate prices the state and estimates deltas against a copy of the
// state with one more card forced (see Perturb). Both runs execute
// concurrently. The state is validated before any simulation starts.
func (e *Engine) Evaluate(state *deck.Cards, strikes Strikes) (*Result, error) {
	if state == nil {
		return nil, ErrNilState
	}

	start := e.config.Clock.Now()

	perturbed, forced, err := Perturb(state, *e.config.DeltaThreshold)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Theo:          state.TheoreticalPrice(),
		PerturbedTheo: perturbed.TheoreticalPrice(),
		ForcedRank:    forced,
	}

	e.config.Logger.Debug("starting valuation",
		"chosen", state.ChosenCount(),
		"theo", result.Theo,
		"forced", forced.String(),
		"workers", e.config.Workers,
		"iterations", e.config.Iterations)

	var g errgroup.Group
	g.Go(func() error {
		prices, err := e.price(GroupBaseline, 0, state, strikes)
		result.Baseline = prices
		return err
	})
	g.Go(func() error {
		prices, err := e.price(GroupPerturbed, e.config.Workers, perturbed, strikes)
		result.Perturbed = prices
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.UnderlyingDelta = result.PerturbedTheo - result.Theo
	result.CallDelta = difference(result.Perturbed.Call.Price, result.Baseline.Call.Price, result.UnderlyingDelta)
	result.PutDelta = difference(result.Perturbed.Put.Price, result.Baseline.Put.Price, result.UnderlyingDelta)
	result.StraddleDelta = difference(result.Perturbed.Straddle.Price, result.Baseline.Straddle.Price, result.UnderlyingDelta)

	result.Trials = result.Baseline.Trials + result.Perturbed.Trials
	result.Elapsed = e.config.Clock.Since(start)

	if result.UnderlyingDelta == 0 {
		e.config.Logger.Warn("perturbation did not move the theoretical price, deltas reported as zero",
			"forced", forced.String())
	}
	return result, nil
}

// difference returns the forward finite difference, or 0 when the
// underlying did not move.
func difference(perturbed, baseline, underlyingDelta float64) float64 {
	if underlyingDelta == 0 || math.IsNaN(underlyingDelta) {
		return 0
	}
	return (perturbed - baseline) / underlyingDelta
}
