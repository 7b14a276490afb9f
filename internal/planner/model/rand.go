package model

import "math/rand/v2"

// NewRand returns a PCG source for seed. Seed 0 draws a random seed.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}
