// Package random builds the random sources used by the pairing engine.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// New returns a pairing source seeded with seed. A zero seed is replaced by
// one drawn from crypto/rand, so unseeded runs pair differently.
func New(seed int64) (*rand.Rand, error) {
	if seed == 0 {
		var b [8]byte
		if _, err := crand.Read(b[:]); err != nil {
			return nil, fmt.Errorf("failed to draw pairing seed: %w", err)
		}
		seed = int64(binary.BigEndian.Uint64(b[:]))
	}
	return rand.New(rand.NewSource(seed)), nil
}
