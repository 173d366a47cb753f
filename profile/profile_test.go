package profile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vecsift/vecsift/metadata"
	"github.com/vecsift/vecsift/model"
)

func mustBatch(t *testing.T, ids []string, vectors [][]float32, metas []metadata.Document, docs []string) *model.Batch {
	t.Helper()
	b, err := model.NewBatch(ids, vectors, metas, docs)
	require.NoError(t, err)
	return b
}

func TestRunEmptyBatch(t *testing.T) {
	p, rows := Run(&model.Batch{})

	assert.Equal(t, 0, p.NumRecords)
	assert.Nil(t, p.EmbeddingDim)
	assert.Nil(t, p.DocLengthStats)
	assert.Nil(t, p.EmbeddingNormStats)
	assert.Empty(t, rows)
	assert.Empty(t, p.DuplicateIDs)

	// The zero profile must still serialize cleanly.
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"embedding_dim":null`)
}

func TestRunAugmentedRows(t *testing.T) {
	b := mustBatch(t,
		[]string{"a", "b"},
		[][]float32{{3, 4}, {0, 0}},
		[]metadata.Document{nil, nil},
		[]string{"hello", ""},
	)

	_, rows := Run(b)
	require.Len(t, rows, 2)

	assert.InDelta(t, 5.0, rows[0].Norm, 1e-9)
	assert.True(t, rows[0].HasDocument)
	assert.Equal(t, 5, rows[0].DocumentLength)
	assert.Equal(t, "a", rows[0].ID)
	assert.Equal(t, []float32{3, 4}, rows[0].Vector)

	assert.Equal(t, 0.0, rows[1].Norm)
	assert.False(t, rows[1].HasDocument)
	assert.Equal(t, 0, rows[1].DocumentLength)
}

func TestRunDimensionality(t *testing.T) {
	t.Run("Consistent", func(t *testing.T) {
		b := mustBatch(t,
			[]string{"a", "b"},
			[][]float32{{1, 2, 3}, {4, 5, 6}},
			make([]metadata.Document, 2),
			make([]string, 2),
		)
		p, _ := Run(b)
		require.NotNil(t, p.EmbeddingDim)
		assert.Equal(t, 3, *p.EmbeddingDim)
	})

	t.Run("Ragged", func(t *testing.T) {
		b := mustBatch(t,
			[]string{"a", "b"},
			[][]float32{{1, 2, 3}, {4, 5}},
			make([]metadata.Document, 2),
			make([]string, 2),
		)
		p, rows := Run(b)
		assert.Nil(t, p.EmbeddingDim)
		// Per-record norms are still computed on a ragged batch.
		assert.InDelta(t, 3.7416573867739413, rows[0].Norm, 1e-9)
		require.NotNil(t, p.EmbeddingNormStats)
		assert.Equal(t, 2, p.EmbeddingNormStats.Count)
	})
}

func TestRunDuplicateIDs(t *testing.T) {
	b := mustBatch(t,
		[]string{"a", "b", "c", "b", "d", "e"},
		[][]float32{{1}, {2}, {3}, {4}, {5}, {6}},
		make([]metadata.Document, 6),
		make([]string, 6),
	)

	p, rows := Run(b)
	assert.Equal(t, 5, p.UniqueIDs)
	assert.Equal(t, []string{"b"}, p.DuplicateIDs)
	// Reporting only: no row is dropped.
	assert.Len(t, rows, 6)
}

func TestRunFieldCompleteness(t *testing.T) {
	b := mustBatch(t,
		[]string{"a", "b", "c", "d"},
		[][]float32{{1}, {1}, {1}, {1}},
		[]metadata.Document{
			{"severity": metadata.String("high"), "score": metadata.Float(9.8)},
			{"severity": metadata.String("low")},
			{"severity": metadata.Null()},
			nil,
		},
		make([]string, 4),
	)

	p, _ := Run(b)
	assert.Equal(t, []string{"score", "severity"}, p.Fields)
	assert.InDelta(t, 0.5, p.FieldCompleteness["severity"], 1e-9) // null doesn't count
	assert.InDelta(t, 0.25, p.FieldCompleteness["score"], 1e-9)
}

func TestRunHasDocumentPct(t *testing.T) {
	b := mustBatch(t,
		[]string{"a", "b", "c", "d"},
		[][]float32{{1}, {1}, {1}, {1}},
		make([]metadata.Document, 4),
		[]string{"x", "", "yz", ""},
	)

	p, _ := Run(b)
	assert.InDelta(t, 0.5, p.HasDocumentPct, 1e-9)
	require.NotNil(t, p.DocLengthStats)
	assert.Equal(t, 4, p.DocLengthStats.Count)
	assert.Equal(t, 0.0, p.DocLengthStats.Min)
	assert.Equal(t, 2.0, p.DocLengthStats.Max)
}

func TestRunTopFields(t *testing.T) {
	metas := make([]metadata.Document, 8)
	for i := range metas {
		metas[i] = metadata.Document{}
	}
	// "source": 7 distinct values, one repeated - only top 5 retained.
	sources := []string{"nvd", "nvd", "nvd", "osv", "osv", "ghsa", "mitre", "redhat"}
	for i, s := range sources {
		metas[i]["source"] = metadata.String(s)
	}
	// "score" is numeric: excluded from categorical summaries.
	metas[0]["score"] = metadata.Float(9.8)
	// "mixed" has both string and numeric values: not categorical.
	metas[0]["mixed"] = metadata.String("x")
	metas[1]["mixed"] = metadata.Int(1)

	b := mustBatch(t,
		[]string{"a", "b", "c", "d", "e", "f", "g", "h"},
		[][]float32{{1}, {1}, {1}, {1}, {1}, {1}, {1}, {1}},
		metas,
		make([]string, 8),
	)

	p, _ := Run(b)
	require.Contains(t, p.TopFields, "source")
	assert.NotContains(t, p.TopFields, "score")
	assert.NotContains(t, p.TopFields, "mixed")

	top := p.TopFields["source"]
	require.Len(t, top, 5)
	assert.Equal(t, ValueCount{Value: "nvd", Count: 3}, top[0])
	assert.Equal(t, ValueCount{Value: "osv", Count: 2}, top[1])
	// Singleton ties are ordered lexicographically.
	assert.Equal(t, "ghsa", top[2].Value)
	assert.Equal(t, "mitre", top[3].Value)
	assert.Equal(t, "redhat", top[4].Value)
}

func TestProfileJSONRoundTrip(t *testing.T) {
	b := mustBatch(t,
		[]string{"a", "a"},
		[][]float32{{1, 0}, {0, 1}},
		[]metadata.Document{{"source": metadata.String("nvd")}, {"source": metadata.String("nvd")}},
		[]string{"doc", "longer doc"},
	)

	p, _ := Run(b)
	data, err := json.Marshal(p)
	require.NoError(t, err)

	var back Profile
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, p.NumRecords, back.NumRecords)
	assert.Equal(t, p.DuplicateIDs, back.DuplicateIDs)
	require.NotNil(t, back.EmbeddingDim)
	assert.Equal(t, 2, *back.EmbeddingDim)
}
