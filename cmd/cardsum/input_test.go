package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/cardsum/internal/deck"
)

func TestReadCards(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []deck.Rank
		hasError bool
	}{
		{
			name:     "count then ranks on lines",
			input:    "3\n1\n5\n13\n",
			expected: []deck.Rank{deck.Ace, deck.Five, deck.King},
		},
		{
			name:     "single line",
			input:    "2 12 10",
			expected: []deck.Rank{deck.Queen, deck.Ten},
		},
		{
			name:     "zero count",
			input:    "0\n",
			expected: []deck.Rank{},
		},
		{
			name:     "trailing tokens ignored",
			input:    "1 7 8 9",
			expected: []deck.Rank{deck.Seven},
		},
		{
			name:     "letters",
			input:    "2 a k",
			expected: []deck.Rank{deck.Ace, deck.King},
		},
		{
			name:     "empty input",
			input:    "",
			hasError: true,
		},
		{
			name:     "negative count",
			input:    "-1",
			hasError: true,
		},
		{
			name:     "bad count",
			input:    "three 1 2 3",
			hasError: true,
		},
		{
			name:     "too few cards",
			input:    "3 1 2",
			hasError: true,
		},
		{
			name:     "invalid rank",
			input:    "2 1 14",
			hasError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranks, err := readCards(strings.NewReader(tt.input))
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ranks)
		})
	}
}

func TestLoadStatePrefersFlag(t *testing.T) {
	cards := "K K"
	f := StateFlags{Cards: &cards}

	state, err := f.loadState(strings.NewReader("1 1"))
	require.NoError(t, err)
	assert.Equal(t, []deck.Rank{deck.King, deck.King}, state.ChosenCards())
}

func TestLoadStateFromReader(t *testing.T) {
	state, err := StateFlags{}.loadState(strings.NewReader("2\n4 4\n"))
	require.NoError(t, err)
	assert.Equal(t, []deck.Rank{deck.Four, deck.Four}, state.ChosenCards())
}

func TestLoadStateRejectsFifthCopy(t *testing.T) {
	_, err := StateFlags{}.loadState(strings.NewReader("5 9 9 9 9 9"))
	require.ErrorIs(t, err, deck.ErrTooManyOfRank)
}
