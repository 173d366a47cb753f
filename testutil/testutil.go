package testutil

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"github.com/vecsift/vecsift/metadata"
	"github.com/vecsift/vecsift/model"
)

// RNG encapsulates a seeded random number generator. It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), //nolint:gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// FillUniform fills dst with random values in range [0, 1).
func (r *RNG) FillUniform(dst []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = r.rand.Float32()
	}
}

// UniformVectors generates num random vectors of the given dimensionality.
func (r *RNG) UniformVectors(num, dim int) [][]float32 {
	vectors := make([][]float32, num)
	for i := range vectors {
		vectors[i] = make([]float32, dim)
		r.FillUniform(vectors[i])
	}
	return vectors
}

var severities = []string{"low", "medium", "high", "critical"}

// RandomBatch generates a record batch shaped like a real advisory
// collection: uuid ids, uniform vectors, categorical metadata with a
// parseable published date, and documents of varying length.
func (r *RNG) RandomBatch(n, dim int) *model.Batch {
	ids := make([]string, n)
	vectors := r.UniformVectors(n, dim)
	metas := make([]metadata.Document, n)
	docs := make([]string, n)

	for i := 0; i < n; i++ {
		ids[i] = uuid.NewString()
		metas[i] = metadata.Document{
			"source":    metadata.String("seed"),
			"severity":  metadata.String(severities[r.Intn(len(severities))]),
			"published": metadata.String(fmt.Sprintf("2024-%02d-%02d", 1+r.Intn(12), 1+r.Intn(28))),
		}
		docs[i] = randomDocument(r, 10+r.Intn(200))
	}

	return &model.Batch{IDs: ids, Vectors: vectors, Metadata: metas, Documents: docs}
}

func randomDocument(r *RNG, length int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz      "
	b := make([]byte, length)
	for i := range b {
		b[i] = letters[r.Intn(len(letters))]
	}
	return string(b)
}
