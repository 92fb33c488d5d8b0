package deck

import (
	"fmt"
	"strconv"
	"strings"
)

// Rank represents a card rank. The rank is also the card's value.
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

const (
	// NumRanks is the number of distinct ranks in the deck
	NumRanks = 13

	// CopiesPerRank is how many cards of each rank the deck holds
	CopiesPerRank = 4

	// DeckSize is the total number of cards in a full deck
	DeckSize = NumRanks * CopiesPerRank
)

// String returns the single character notation for a rank
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	if r.Valid() {
		return strconv.Itoa(int(r))
	}
	return "?"
}

// Valid reports whether the rank is within 1..13
func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

// Value returns the numeric value the card contributes to a sum
func (r Rank) Value() float64 {
	return float64(r)
}

// ParseRank parses a single rank token. Numeric values 1..13 and the
// letters A, T, J, Q and K are accepted, case-insensitively.
func ParseRank(s string) (Rank, error) {
	s = strings.TrimSpace(s)
	switch strings.ToUpper(s) {
	case "A":
		return Ace, nil
	case "T":
		return Ten, nil
	case "J":
		return Jack, nil
	case "Q":
		return Queen, nil
	case "K":
		return King, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRank, s)
	}
	r := Rank(n)
	if !r.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidRank, n)
	}
	return r, nil
}

// ParseRanks parses a list of rank tokens separated by whitespace or commas.
// An empty string yields an empty list.
func ParseRanks(s string) ([]Rank, error) {
	fields := strings.FieldsFunc(s, func(c rune) bool {
		return c == ',' || c == ' ' || c == '\t' || c == '\n' || c == '\r'
	})

	ranks := make([]Rank, 0, len(fields))
	for i, field := range fields {
		r, err := ParseRank(field)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", i+1, err)
		}
		ranks = append(ranks, r)
	}
	return ranks, nil
}

// MustParseRanks is a test helper that parses ranks and panics on error.
// Production code uses ParseRanks.
func MustParseRanks(s string) []Rank {
	ranks, err := ParseRanks(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse ranks '%s': %v", s, err))
	}
	return ranks
}

// FormatRanks renders ranks space separated, e.g. "A 5 K"
func FormatRanks(ranks []Rank) string {
	parts := make([]string, len(ranks))
	for i, r := range ranks {
		parts[i] = r.String()
	}
	return strings.Join(parts, " ")
}
