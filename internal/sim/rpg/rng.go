package rpg

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// seededRNG builds the default uniform source. Non-cryptographic PRNG is
// intentional for reproducible simulation behavior.
// #nosec G404
func seededRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(seedWord(seed, "a"), seedWord(seed, "b")))
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}
