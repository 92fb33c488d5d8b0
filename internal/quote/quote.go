// Package quote turns a theoretical price into a two-sided market on a tick grid.
package quote

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidTick   = errors.New("tick size must be positive")
	ErrInvalidCredit = errors.New("credit must not be negative")
)

// Market is a bid/ask pair
type Market struct {
	Bid decimal.Decimal
	Ask decimal.Decimal
}

// Spread returns ask minus bid
func (m Market) Spread() decimal.Decimal {
	return m.Ask.Sub(m.Bid)
}

// Mid returns the midpoint of the market
func (m Market) Mid() decimal.Decimal {
	return m.Bid.Add(m.Ask).Div(decimal.NewFromInt(2))
}

func (m Market) String() string {
	return fmt.Sprintf("%s @ %s", m.Bid.String(), m.Ask.String())
}

// RoundDownToTick rounds price down to a multiple of tick
func RoundDownToTick(price, tick decimal.Decimal) decimal.Decimal {
	return price.Div(tick).Floor().Mul(tick)
}

// RoundUpToTick rounds price up to a multiple of tick
func RoundUpToTick(price, tick decimal.Decimal) decimal.Decimal {
	return price.Div(tick).Ceil().Mul(tick)
}

// Quote builds a market around theo: the bid is theo-credit rounded down to
// the tick grid, the ask theo+credit rounded up. A market that would
// collapse onto one price is widened by one tick on the ask.
func Quote(theo, tick, credit decimal.Decimal) (Market, error) {
	if !tick.IsPositive() {
		return Market{}, fmt.Errorf("%w: %s", ErrInvalidTick, tick)
	}
	if credit.IsNegative() {
		return Market{}, fmt.Errorf("%w: %s", ErrInvalidCredit, credit)
	}

	m := Market{
		Bid: RoundDownToTick(theo.Sub(credit), tick),
		Ask: RoundUpToTick(theo.Add(credit), tick),
	}
	if m.Bid.Equal(m.Ask) {
		m.Ask = m.Ask.Add(tick)
	}
	return m, nil
}

// QuoteFloat is Quote for float inputs
func QuoteFloat(theo, tick, credit float64) (Market, error) {
	return Quote(decimal.NewFromFloat(theo), decimal.NewFromFloat(tick), decimal.NewFromFloat(credit))
}
