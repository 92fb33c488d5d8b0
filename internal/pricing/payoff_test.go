package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPayoffs(t *testing.T) {
	tests := []struct {
		name       string
		strike     float64
		underlying float64
		call       float64
		put        float64
		straddle   float64
	}{
		{name: "in the money call", strike: 150, underlying: 160, call: 10, put: 0, straddle: 10},
		{name: "in the money put", strike: 130, underlying: 120, call: 0, put: 10, straddle: 10},
		{name: "at the money", strike: 140, underlying: 140, call: 0, put: 0, straddle: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.call, CallPayoff(tt.strike, tt.underlying))
			assert.Equal(t, tt.put, PutPayoff(tt.strike, tt.underlying))
			assert.Equal(t, tt.straddle, StraddlePayoff(tt.strike, tt.underlying))
		})
	}
}

func TestDefaultStrikes(t *testing.T) {
	assert.Equal(t, Strikes{Call: 150, Put: 130, Straddle: 140}, DefaultStrikes())
}
