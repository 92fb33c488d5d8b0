package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/cardsum/internal/deck"
	"github.com/lox/cardsum/internal/pricing"
	"github.com/lox/cardsum/internal/quote"
)

func sampleReport(t *testing.T) *Report {
	t.Helper()
	result := &pricing.Result{
		Theo:          140,
		PerturbedTheo: 146.125,
		ForcedRank:    deck.King,
		Baseline: pricing.Prices{
			Call:     pricing.Estimate{Price: 1.73, StdError: 0.01, Low: 1.71, High: 1.75, WorkerStdDev: 0.02},
			Put:      pricing.Estimate{Price: 1.72, StdError: 0.01},
			Straddle: pricing.Estimate{Price: 10.6, StdError: 0.02},
		},
		UnderlyingDelta: 6.125,
		CallDelta:       0.4,
		PutDelta:        -0.2,
		StraddleDelta:   0.3,
		Elapsed:         1500 * time.Millisecond,
		Trials:          800,
	}
	m, err := quote.QuoteFloat(result.Theo, 0.5, 1)
	require.NoError(t, err)
	return New([]deck.Rank{deck.Ace, deck.Five}, pricing.DefaultStrikes(), result).WithMarket(m)
}

func TestNew(t *testing.T) {
	r := sampleReport(t)

	assert.Equal(t, []int{1, 5}, r.Chosen)
	assert.Equal(t, 13, r.ForcedRank)
	assert.Equal(t, "139", r.Bid)
	assert.Equal(t, "141", r.Ask)
	assert.Equal(t, 1.5, r.ElapsedSeconds)

	call, ok := r.Contract("call")
	require.True(t, ok)
	assert.Equal(t, 150.0, call.Strike)
	assert.Equal(t, 1.73, call.Price)
	assert.Equal(t, 0.4, call.Delta)
	assert.Equal(t, 1.71, call.Low)
	assert.Equal(t, 1.75, call.High)
	assert.Equal(t, 0.02, call.Spread)

	straddle, ok := r.Contract("straddle")
	require.True(t, ok)
	assert.Equal(t, 140.0, straddle.Strike)

	_, ok = r.Contract("digital")
	assert.False(t, ok)
}

func TestWriteValues(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleReport(t).WriteValues(&buf))
	assert.Equal(t, "1.73\n1.72\n0.4\n-0.2\n", buf.String())
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleReport(t).Render(&buf))

	out := buf.String()
	for _, want := range []string{"theo", "140.0000", "K (theo 146.1250)", "139 @ 141", "straddle", "800 iterations in 1.5s"} {
		assert.Contains(t, out, want)
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")

	r := sampleReport(t)
	require.NoError(t, r.WriteFile(path))

	loaded, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, r, loaded)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file must not be left behind")
}

func TestWriteFileReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o600))

	require.NoError(t, sampleReport(t).WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{"))
}

func TestWriteFileMissingDirectory(t *testing.T) {
	err := sampleReport(t).WriteFile(filepath.Join(t.TempDir(), "missing", "report.json"))
	assert.Error(t, err)
}

func TestReadFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))

	_, err := ReadFile(path)
	assert.ErrorContains(t, err, "failed to decode report")
}
