package deck

import (
	"errors"
	"fmt"
)

// TotalToChoose is the number of cards that make up a completed draw
const TotalToChoose = 20

var (
	ErrInvalidRank      = errors.New("invalid rank")
	ErrRankExhausted    = errors.New("no cards of rank remaining")
	ErrTooManyOfRank    = errors.New("rank chosen more times than the deck holds")
	ErrNoCardsRemaining = errors.New("no cards remaining")
)

var allCards = func() []Rank {
	cards := make([]Rank, 0, DeckSize)
	for r := Ace; r <= King; r++ {
		for range CopiesPerRank {
			cards = append(cards, r)
		}
	}
	return cards
}()

// AllCards returns the full 52 card multiset, ascending by rank
func AllCards() []Rank {
	cards := make([]Rank, len(allCards))
	copy(cards, allCards)
	return cards
}

// Cards tracks which cards of the deck have been chosen and which remain.
//
// A Cards value is not safe for concurrent mutation. Callers that hand a
// state to concurrent readers should pass each one its own Clone.
type Cards struct {
	chosen []Rank
	counts [NumRanks + 1]int // index 0 unused
	target int
}

// NewCards creates a state with a full deck and nothing chosen
func NewCards() *Cards {
	c := &Cards{target: TotalToChoose}
	c.resetCounts()
	return c
}

// NewCardsFrom creates a state with the given cards already chosen
func NewCardsFrom(chosen []Rank) (*Cards, error) {
	c := NewCards()
	if err := c.SetChosenCards(chosen); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Cards) resetCounts() {
	for r := Ace; r <= King; r++ {
		c.counts[r] = CopiesPerRank
	}
}

// ChooseCard moves one card of the given rank from the remaining deck to the
// chosen cards. The state is left unchanged on error.
func (c *Cards) ChooseCard(r Rank) error {
	if !r.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidRank, int(r))
	}
	if c.counts[r] == 0 {
		return fmt.Errorf("%w: %s", ErrRankExhausted, r)
	}
	c.counts[r]--
	c.chosen = append(c.chosen, r)
	return nil
}

// SetChosenCards replaces the chosen cards and recomputes the remaining
// counts from a full deck. Every rank is validated first, so an invalid list
// leaves the state unchanged.
func (c *Cards) SetChosenCards(ranks []Rank) error {
	var counts [NumRanks + 1]int
	for r := Ace; r <= King; r++ {
		counts[r] = CopiesPerRank
	}

	for i, r := range ranks {
		if !r.Valid() {
			return fmt.Errorf("card %d: %w: %d", i+1, ErrInvalidRank, int(r))
		}
		if counts[r] == 0 {
			return fmt.Errorf("card %d: %w: %s", i+1, ErrTooManyOfRank, r)
		}
		counts[r]--
	}

	c.counts = counts
	c.chosen = append(c.chosen[:0:0], ranks...)
	return nil
}

// ChosenCards returns a copy of the chosen cards in draw order
func (c *Cards) ChosenCards() []Rank {
	out := make([]Rank, len(c.chosen))
	copy(out, c.chosen)
	return out
}

// ChosenCount returns the number of cards chosen so far
func (c *Cards) ChosenCount() int {
	return len(c.chosen)
}

// ChosenSum returns the sum of the chosen card values
func (c *Cards) ChosenSum() float64 {
	var sum float64
	for _, r := range c.chosen {
		sum += r.Value()
	}
	return sum
}

// RemainingCount returns how many cards of a rank are still in the deck
func (c *Cards) RemainingCount(r Rank) int {
	if !r.Valid() {
		return 0
	}
	return c.counts[r]
}

// RemainingTotal returns the number of cards still in the deck
func (c *Cards) RemainingTotal() int {
	total := 0
	for r := Ace; r <= King; r++ {
		total += c.counts[r]
	}
	return total
}

// RemainingCards returns the remaining multiset in ascending rank order
func (c *Cards) RemainingCards() []Rank {
	cards := make([]Rank, 0, c.RemainingTotal())
	for r := Ace; r <= King; r++ {
		for range c.counts[r] {
			cards = append(cards, r)
		}
	}
	return cards
}

// RemainingToChoose returns how many more cards complete the draw. It goes
// negative when more than TotalToChoose cards have been chosen.
func (c *Cards) RemainingToChoose() int {
	return c.target - len(c.chosen)
}

// DrawsLeft is RemainingToChoose clamped to the cards actually available
func (c *Cards) DrawsLeft() int {
	n := c.RemainingToChoose()
	if n < 0 {
		return 0
	}
	if total := c.RemainingTotal(); n > total {
		return total
	}
	return n
}

// ExpectedValue returns the mean value of a single card drawn from the
// remaining deck, or 0 when the deck is empty.
func (c *Cards) ExpectedValue() float64 {
	var sum float64
	total := 0
	for r := Ace; r <= King; r++ {
		sum += r.Value() * float64(c.counts[r])
		total += c.counts[r]
	}
	if total == 0 {
		return 0
	}
	return sum / float64(total)
}

// TheoreticalPrice returns the expected final sum of the draw
func (c *Cards) TheoreticalPrice() float64 {
	return c.ChosenSum() + c.ExpectedValue()*float64(c.DrawsLeft())
}

// LargestRemainingCard returns the highest rank still in the deck
func (c *Cards) LargestRemainingCard() (Rank, error) {
	for r := King; r >= Ace; r-- {
		if c.counts[r] > 0 {
			return r, nil
		}
	}
	return 0, ErrNoCardsRemaining
}

// SmallestRemainingCard returns the lowest rank still in the deck
func (c *Cards) SmallestRemainingCard() (Rank, error) {
	for r := Ace; r <= King; r++ {
		if c.counts[r] > 0 {
			return r, nil
		}
	}
	return 0, ErrNoCardsRemaining
}

// Clone returns an independent deep copy of the state
func (c *Cards) Clone() *Cards {
	clone := *c
	clone.chosen = make([]Rank, len(c.chosen))
	copy(clone.chosen, c.chosen)
	return &clone
}

func (c *Cards) String() string {
	return fmt.Sprintf("chosen=[%s] remaining=%d to_choose=%d",
		FormatRanks(c.chosen), c.RemainingTotal(), c.RemainingToChoose())
}
