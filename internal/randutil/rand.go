// Package randutil derives PCG generators for simulation workers.
package randutil

import rand "math/rand/v2"

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// ForWorker returns an independent generator for one simulation worker.
//
// A zero seed draws fresh entropy on every call, so runs are not
// reproducible. Any other seed derives a distinct, reproducible stream per
// worker index.
func ForWorker(seed int64, stream int) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return New(int64(mix(uint64(seed)) + uint64(stream+1)*goldenRatio64))
}

// mix is the SplitMix64 finalizer
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
