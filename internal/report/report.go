// Package report renders valuation results and writes them to disk.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/cardsum/internal/deck"
	"github.com/lox/cardsum/internal/fileutil"
	"github.com/lox/cardsum/internal/pricing"
	"github.com/lox/cardsum/internal/quote"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

// Contract is one priced instrument
type Contract struct {
	Name     string  `json:"name"`
	Strike   float64 `json:"strike"`
	Price    float64 `json:"price"`
	StdError float64 `json:"std_error"`
	Low      float64 `json:"ci95_low"`
	High     float64 `json:"ci95_high"`
	Spread   float64 `json:"worker_std_dev"`
	Delta    float64 `json:"delta"`
}

// Report is the serialisable summary of a valuation
type Report struct {
	Chosen          []int      `json:"chosen"`
	Theo            float64    `json:"theo"`
	PerturbedTheo   float64    `json:"perturbed_theo"`
	ForcedRank      int        `json:"forced_rank"`
	UnderlyingDelta float64    `json:"underlying_delta"`
	Contracts       []Contract `json:"contracts"`
	Bid             string     `json:"bid,omitempty"`
	Ask             string     `json:"ask,omitempty"`
	Trials          int        `json:"trials"`
	ElapsedSeconds  float64    `json:"elapsed_seconds"`
}

// New builds a report from a valuation result
func New(chosen []deck.Rank, strikes pricing.Strikes, result *pricing.Result) *Report {
	ranks := make([]int, len(chosen))
	for i, r := range chosen {
		ranks[i] = int(r)
	}

	return &Report{
		Chosen:          ranks,
		Theo:            result.Theo,
		PerturbedTheo:   result.PerturbedTheo,
		ForcedRank:      int(result.ForcedRank),
		UnderlyingDelta: result.UnderlyingDelta,
		Contracts: []Contract{
			contract("call", strikes.Call, result.Baseline.Call, result.CallDelta),
			contract("put", strikes.Put, result.Baseline.Put, result.PutDelta),
			contract("straddle", strikes.Straddle, result.Baseline.Straddle, result.StraddleDelta),
		},
		Trials:         result.Trials,
		ElapsedSeconds: result.Elapsed.Seconds(),
	}
}

func contract(name string, strike float64, e pricing.Estimate, delta float64) Contract {
	return Contract{
		Name:     name,
		Strike:   strike,
		Price:    e.Price,
		StdError: e.StdError,
		Low:      e.Low,
		High:     e.High,
		Spread:   e.WorkerStdDev,
		Delta:    delta,
	}
}

// WithMarket attaches a quoted market around theo
func (r *Report) WithMarket(m quote.Market) *Report {
	r.Bid = m.Bid.String()
	r.Ask = m.Ask.String()
	return r
}

// Contract returns the named contract, or false when absent
func (r *Report) Contract(name string) (Contract, bool) {
	for _, c := range r.Contracts {
		if c.Name == name {
			return c, true
		}
	}
	return Contract{}, false
}

// WriteValues writes call price, put price, call delta and put delta, one
// per line.
func (r *Report) WriteValues(w io.Writer) error {
	call, _ := r.Contract("call")
	put, _ := r.Contract("put")
	_, err := fmt.Fprintf(w, "%g\n%g\n%g\n%g\n", call.Price, put.Price, call.Delta, put.Delta)
	return err
}

// Render writes a styled summary table
func (r *Report) Render(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "%s\t%s\n", labelStyle.Render("theo"), valueStyle.Render(fmt.Sprintf("%.4f", r.Theo)))
	fmt.Fprintf(tw, "%s\t%s\n", labelStyle.Render("forced"),
		fmt.Sprintf("%s (theo %.4f)", deck.Rank(r.ForcedRank), r.PerturbedTheo))
	if r.Bid != "" {
		fmt.Fprintf(tw, "%s\t%s\n", labelStyle.Render("market"), valueStyle.Render(r.Bid+" @ "+r.Ask))
	}
	fmt.Fprintln(tw)

	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("contract"),
		headerStyle.Render("strike"),
		headerStyle.Render("price"),
		headerStyle.Render("±se"),
		headerStyle.Render("delta"))
	for _, c := range r.Contracts {
		fmt.Fprintf(tw, "%s\t%g\t%s\t%s\t%.4f\n",
			labelStyle.Render(c.Name),
			c.Strike,
			valueStyle.Render(fmt.Sprintf("%.4f", c.Price)),
			errorStyle.Render(fmt.Sprintf("%.4f", c.StdError)),
			c.Delta)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	elapsed := time.Duration(r.ElapsedSeconds * float64(time.Second))
	_, err := fmt.Fprintf(w, "\n%d iterations in %v\n", r.Trials, elapsed.Truncate(time.Millisecond))
	return err
}

// WriteFile writes the report as indented JSON, replacing filename
// atomically.
func (r *Report) WriteFile(filename string) error {
	return fileutil.WriteAtomic(filename, 0o644, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return nil
	})
}

// ReadFile loads a report previously written by WriteFile
func ReadFile(filename string) (*Report, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return &r, nil
}
