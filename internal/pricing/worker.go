package pricing

import (
	rand "math/rand/v2"

	"github.com/lox/cardsum/internal/deck"
	"github.com/lox/cardsum/internal/statistics"
)

// WorkerResult holds the payoff moments collected by one simulation worker
type WorkerResult struct {
	Worker   int
	Call     statistics.Accumulator
	Put      statistics.Accumulator
	Straddle statistics.Accumulator
}

func (r WorkerResult) validate() error {
	for _, acc := range []statistics.Accumulator{r.Call, r.Put, r.Straddle} {
		if err := acc.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// runWorker prices one snapshot over a fixed number of random completions.
// The snapshot, the card buffer and rng are owned by the worker.
func runWorker(worker int, state *deck.Cards, strikes Strikes, iterations int, rng *rand.Rand) WorkerResult {
	result := WorkerResult{Worker: worker}

	chosenSum := state.ChosenSum()
	draws := state.DrawsLeft()

	// Nothing left to draw: every trial settles at the chosen sum
	if draws == 0 {
		result.Call.AddN(CallPayoff(strikes.Call, chosenSum), iterations)
		result.Put.AddN(PutPayoff(strikes.Put, chosenSum), iterations)
		result.Straddle.AddN(StraddlePayoff(strikes.Straddle, chosenSum), iterations)
		return result
	}

	remaining := state.RemainingCards()
	values := make([]int, len(remaining))
	for i, r := range remaining {
		values[i] = int(r)
	}
	n := len(values)

	for range iterations {
		// Partial Fisher-Yates: the first draws positions become a uniform
		// random ordered sample whatever order the buffer was left in.
		sum := 0
		for i := 0; i < draws; i++ {
			j := i + rng.IntN(n-i)
			values[i], values[j] = values[j], values[i]
			sum += values[i]
		}

		underlying := chosenSum + float64(sum)
		result.Call.Add(CallPayoff(strikes.Call, underlying))
		result.Put.Add(PutPayoff(strikes.Put, underlying))
		result.Straddle.Add(StraddlePayoff(strikes.Straddle, underlying))
	}

	return result
}
