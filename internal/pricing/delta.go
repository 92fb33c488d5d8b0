package pricing

import (
	"fmt"

	"github.com/lox/cardsum/internal/deck"
)

// Perturb returns a copy of state with one more card chosen: the largest
// remaining rank when the theoretical price is at or below threshold, the
// smallest otherwise. state itself is not modified.
func Perturb(state *deck.Cards, threshold float64) (*deck.Cards, deck.Rank, error) {
	perturbed := state.Clone()

	var forced deck.Rank
	var err error
	if state.TheoreticalPrice() <= threshold {
		forced, err = perturbed.LargestRemainingCard()
	} else {
		forced, err = perturbed.SmallestRemainingCard()
	}
	if err != nil {
		return nil, 0, fmt.Errorf("perturbing state: %w", err)
	}

	if err := perturbed.ChooseCard(forced); err != nil {
		return nil, 0, fmt.Errorf("perturbing state: %w", err)
	}
	return perturbed, forced, nil
}
