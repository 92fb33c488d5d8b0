package pricing

import "math"

// Strikes holds the strike prices of the priced contracts
type Strikes struct {
	Call     float64
	Put      float64
	Straddle float64
}

// DefaultStrikes returns the 150 call, 130 put and 140 straddle
func DefaultStrikes() Strikes {
	return Strikes{Call: 150, Put: 130, Straddle: 140}
}

// CallPayoff returns the value of a call at expiry
func CallPayoff(strike, underlying float64) float64 {
	if underlying > strike {
		return underlying - strike
	}
	return 0
}

// PutPayoff returns the value of a put at expiry
func PutPayoff(strike, underlying float64) float64 {
	if underlying < strike {
		return strike - underlying
	}
	return 0
}

// StraddlePayoff returns the value of a long call plus a long put at the same strike
func StraddlePayoff(strike, underlying float64) float64 {
	return math.Abs(underlying - strike)
}
