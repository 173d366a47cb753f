package similarity

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/vecsift/vecsift/model"
)

// ErrInvalidK is returned when k is not positive.
var ErrInvalidK = errors.New("k must be positive")

// ShapeMismatchError indicates vectors of differing length passed to a
// similarity computation. It is a contract violation: vectors are never
// silently truncated or padded.
type ShapeMismatchError struct {
	LenA int
	LenB int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("shape mismatch: %d vs %d", e.LenA, e.LenB)
}

// Cosine computes the cosine similarity between two equal-length vectors,
// in [-1, 1]. If either vector has zero magnitude the result is exactly
// 0.0, keeping downstream ranking well-defined.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, &ShapeMismatchError{LenA: len(a), LenB: len(b)}
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// Norm returns the Euclidean norm of v.
func Norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// Match pairs a record with its similarity score against a query.
type Match struct {
	Record model.Record
	Score  float64
}

// TopK scores every record against query and returns the k highest-scoring
// records, descending by score. Equal scores preserve original batch order
// (the sort is stable and compares score only). If k exceeds the batch
// size the whole batch is returned ranked; an empty batch yields an empty
// result, not an error.
func TopK(query []float32, records []model.Record, k int) ([]Match, error) {
	if k < 1 {
		return nil, ErrInvalidK
	}

	matches := make([]Match, 0, len(records))
	for _, rec := range records {
		score, err := Cosine(query, rec.Vector)
		if err != nil {
			return nil, fmt.Errorf("record %q: %w", rec.ID, err)
		}
		matches = append(matches, Match{Record: rec, Score: score})
	}

	slices.SortStableFunc(matches, func(a, b Match) int {
		return cmp.Compare(b.Score, a.Score)
	})

	if k < len(matches) {
		matches = matches[:k]
	}
	return matches, nil
}
