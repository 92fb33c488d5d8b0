package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/lox/cardsum/internal/deck"
)

var errNoCount = errors.New("missing card count")

// StateFlags select the cards already drawn
type StateFlags struct {
	Cards *string `short:"k" help:"Cards already drawn, e.g. '1 5 K' (read from stdin as a count followed by ranks when omitted)"`
}

// loadState builds the deck state from --cards, or from r when the flag is
// absent. Any invalid card fails before anything is simulated.
func (f StateFlags) loadState(r io.Reader) (*deck.Cards, error) {
	var ranks []deck.Rank
	var err error
	if f.Cards != nil {
		ranks, err = deck.ParseRanks(*f.Cards)
	} else {
		ranks, err = readCards(r)
	}
	if err != nil {
		return nil, err
	}

	state, err := deck.NewCardsFrom(ranks)
	if err != nil {
		return nil, fmt.Errorf("invalid cards: %w", err)
	}
	return state, nil
}

// readCards reads a count followed by that many ranks, separated by any
// whitespace. Tokens after the last rank are ignored.
func readCards(r io.Reader) ([]deck.Rank, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading cards: %w", err)
		}
		return nil, errNoCount
	}
	count, err := strconv.Atoi(scanner.Text())
	if err != nil || count < 0 {
		return nil, fmt.Errorf("invalid card count %q", scanner.Text())
	}

	ranks := make([]deck.Rank, 0, count)
	for len(ranks) < count {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return nil, fmt.Errorf("reading cards: %w", err)
			}
			return nil, fmt.Errorf("expected %d cards, got %d", count, len(ranks))
		}
		rank, err := deck.ParseRank(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", len(ranks)+1, err)
		}
		ranks = append(ranks, rank)
	}
	return ranks, nil
}
