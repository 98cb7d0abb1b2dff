package datagen

import (
	"fmt"
	"math/rand"
	"time"
)

// Rand is the source of randomness threaded through every provider and
// generator. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a seeded source. A zero seed uses the current time, so runs
// are not reproducible.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func coin(r Rand) bool {
	return r.Intn(2) == 0
}

func choice[T any](r Rand, items []T) T {
	return items[r.Intn(len(items))]
}

// Shuffle permutes items in place (Fisher-Yates).
func Shuffle[T any](r Rand, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

// sample draws k distinct elements without replacement.
func sample[T any](r Rand, items []T, k int) ([]T, error) {
	if k > len(items) {
		return nil, fmt.Errorf("cannot sample %d items from a pool of %d", k, len(items))
	}
	pool := make([]T, len(items))
	copy(pool, items)

	out := make([]T, k)
	for i := range k {
		j := i + r.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
		out[i] = pool[i]
	}
	return out, nil
}
