package registry

import (
	"math/rand/v2"
	"sync"

	"github.com/cespare/xxhash/v2"
)

var (
	seedOnce sync.Once
	seed     uint64
)

// Seed returns the process-wide hashing seed, generating it on first call.
// The value never changes for the lifetime of the process.
func Seed() uint64 {
	seedOnce.Do(func() {
		seed = rand.Uint64()
	})
	return seed
}

// Hash returns the seeded xxhash of key.
func Hash(key string) uint64 {
	d := xxhash.NewWithSeed(Seed())
	_, _ = d.WriteString(key)
	return d.Sum64()
}

func hashKey(key string) uint64 { return Hash(key) }
