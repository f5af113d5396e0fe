package symbol

import (
	"encoding/binary"
	"math/rand/v2"

	"github.com/google/uuid"
)

// Source yields uniform integers in [0, n).
type Source interface {
	IntN(n int) int
}

// NewSource returns a PCG-backed Source. A non-empty seed makes the stream
// reproducible: both PCG state words come from the UUIDv5 of seed.
func NewSource(seed string) Source {
	if seed == "" {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec
	}
	hi, lo := seedWords(seed)
	return rand.New(rand.NewPCG(hi, lo)) //nolint:gosec
}

func seedWords(seed string) (uint64, uint64) {
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(seed))
	return binary.BigEndian.Uint64(id[:8]), binary.BigEndian.Uint64(id[8:])
}
