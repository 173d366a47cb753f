package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vecsift/vecsift/model"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float64
	}{
		{"SelfSimilarity", []float32{1, 2, 3}, []float32{1, 2, 3}, 1.0},
		{"Orthogonal", []float32{1, 0}, []float32{0, 1}, 0.0},
		{"ParallelScaled", []float32{1, 0}, []float32{2, 0}, 1.0},
		{"Opposite", []float32{1, 0}, []float32{-3, 0}, -1.0},
		{"ZeroLeft", []float32{0, 0}, []float32{1, 2}, 0.0},
		{"ZeroRight", []float32{1, 2}, []float32{0, 0}, 0.0},
		{"ZeroBoth", []float32{0, 0}, []float32{0, 0}, 0.0},
		{"Empty", []float32{}, []float32{}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Cosine(tt.a, tt.b)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestCosineZeroVectorIsExactlyZero(t *testing.T) {
	got, err := Cosine([]float32{0, 0, 0}, []float32{0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestCosineShapeMismatch(t *testing.T) {
	_, err := Cosine([]float32{1, 2}, []float32{1, 2, 3})
	require.Error(t, err)

	var sm *ShapeMismatchError
	require.ErrorAs(t, err, &sm)
	assert.Equal(t, 2, sm.LenA)
	assert.Equal(t, 3, sm.LenB)
	assert.Equal(t, "shape mismatch: 2 vs 3", sm.Error())
}

func TestNorm(t *testing.T) {
	assert.InDelta(t, 5.0, Norm([]float32{3, 4}), 1e-9)
	assert.Equal(t, 0.0, Norm(nil))
	assert.Equal(t, 0.0, Norm([]float32{0, 0}))
}

func records(vectors ...[]float32) []model.Record {
	recs := make([]model.Record, len(vectors))
	for i, v := range vectors {
		recs[i] = model.Record{ID: string(rune('a' + i)), Vector: v}
	}
	return recs
}

func TestTopK(t *testing.T) {
	batch := records(
		[]float32{1, 0},
		[]float32{0, 1},
		[]float32{0.9, 0.1},
		[]float32{-1, 0},
	)

	t.Run("DescendingByScore", func(t *testing.T) {
		matches, err := TopK([]float32{1, 0}, batch, 3)
		require.NoError(t, err)
		require.Len(t, matches, 3)
		for i := 1; i < len(matches); i++ {
			assert.GreaterOrEqual(t, matches[i-1].Score, matches[i].Score)
		}
		assert.Equal(t, "a", matches[0].Record.ID)
		assert.InDelta(t, 1.0, matches[0].Score, 1e-9)
	})

	t.Run("SelfIsBest", func(t *testing.T) {
		for _, rec := range batch {
			matches, err := TopK(rec.Vector, batch, 1)
			require.NoError(t, err)
			require.Len(t, matches, 1)
			assert.Equal(t, rec.ID, matches[0].Record.ID)
		}
	})

	t.Run("KExceedsBatch", func(t *testing.T) {
		matches, err := TopK([]float32{1, 0}, batch, 100)
		require.NoError(t, err)
		assert.Len(t, matches, len(batch))
	})

	t.Run("EmptyBatch", func(t *testing.T) {
		matches, err := TopK([]float32{1, 0}, nil, 5)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("InvalidK", func(t *testing.T) {
		_, err := TopK([]float32{1, 0}, batch, 0)
		assert.ErrorIs(t, err, ErrInvalidK)
	})

	t.Run("ShapeMismatchPropagates", func(t *testing.T) {
		_, err := TopK([]float32{1, 0, 0}, batch, 2)
		var sm *ShapeMismatchError
		assert.ErrorAs(t, err, &sm)
	})
}

func TestTopKStableTieBreak(t *testing.T) {
	// Identical vectors score identically; original batch order must survive.
	batch := []model.Record{
		{ID: "first", Vector: []float32{1, 1}},
		{ID: "second", Vector: []float32{1, 1}},
		{ID: "third", Vector: []float32{2, 2}}, // same direction, same score
	}

	matches, err := TopK([]float32{1, 1}, batch, 3)
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, "first", matches[0].Record.ID)
	assert.Equal(t, "second", matches[1].Record.ID)
	assert.Equal(t, "third", matches[2].Record.ID)
}
