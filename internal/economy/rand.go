package economy

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// NewRand returns a PCG source seeded from the OS entropy pool. Reward
// resolution takes an explicit *rand.Rand so tests can pass a fixed seed
// and replay draws deterministically.
func NewRand() *rand.Rand {
	var seed [16]byte
	if _, err := crand.Read(seed[:]); err != nil {
		// Entropy read failing is effectively fatal elsewhere; a zero
		// seed keeps the box opening rather than the request failing.
		return rand.New(rand.NewPCG(0, 0))
	}
	return rand.New(rand.NewPCG(
		binary.LittleEndian.Uint64(seed[:8]),
		binary.LittleEndian.Uint64(seed[8:]),
	))
}
