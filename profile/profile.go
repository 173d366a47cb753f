package profile

import (
	"slices"
	"strings"

	"github.com/vecsift/vecsift/model"
	"github.com/vecsift/vecsift/similarity"
)

// topValues caps per-field frequency output regardless of cardinality.
const topValues = 5

// ValueCount is one observed categorical value and its frequency.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Profile is the aggregate quality snapshot of one batch. Every field is
// a JSON-encodable scalar, sequence or mapping.
type Profile struct {
	// NumRecords is the batch size.
	NumRecords int `json:"num_records"`
	// EmbeddingDim is the shared vector dimensionality, or null for an
	// empty or ragged batch.
	EmbeddingDim *int `json:"embedding_dim"`
	// FieldCompleteness maps each observed metadata field to the fraction
	// of records where it is present and non-null.
	FieldCompleteness map[string]float64 `json:"field_completeness"`
	// HasDocumentPct is the fraction of records with non-empty content.
	HasDocumentPct float64 `json:"has_document_pct"`
	// DocLengthStats summarizes content lengths across the batch.
	DocLengthStats *Summary `json:"doc_length_stats"`
	// EmbeddingNormStats summarizes per-record Euclidean norms.
	EmbeddingNormStats *Summary `json:"embedding_norm_stats"`
	// Fields lists all observed metadata field names, sorted.
	Fields []string `json:"fields"`
	// TopFields holds, per categorical field, the five most frequent
	// values. A field is categorical when all its non-null values are
	// strings.
	TopFields map[string][]ValueCount `json:"top_fields"`
	// UniqueIDs is the cardinality of the id set.
	UniqueIDs int `json:"unique_ids"`
	// DuplicateIDs lists ids occurring more than once, in first-seen
	// order. Reporting only: profiling never deduplicates.
	DuplicateIDs []string `json:"duplicate_ids"`
}

// Run profiles a batch and returns the aggregate Profile together with
// the augmented per-record rows the curator consumes. Data-quality
// irregularities degrade into report findings; Run itself never fails.
func Run(batch *model.Batch) (*Profile, []model.AugmentedRow) {
	p := &Profile{
		FieldCompleteness: map[string]float64{},
		Fields:            []string{},
		TopFields:         map[string][]ValueCount{},
		DuplicateIDs:      []string{},
	}

	n := batch.Len()
	if n == 0 {
		return p, nil
	}
	p.NumRecords = n

	if dim, ok := batch.Dim(); ok {
		p.EmbeddingDim = &dim
	}

	rows := make([]model.AugmentedRow, n)
	norms := make([]float64, n)
	docLens := make([]float64, n)
	hasDoc := 0

	present := map[string]int{}
	numericSeen := map[string]bool{}
	freq := map[string]map[string]int{}

	idCount := map[string]int{}
	idOrder := make([]string, 0, n)

	for i := 0; i < n; i++ {
		rec := batch.Record(i)

		norm := similarity.Norm(rec.Vector)
		row := model.AugmentedRow{
			Record:         rec,
			Norm:           norm,
			HasDocument:    rec.Document != "",
			DocumentLength: len(rec.Document),
		}
		rows[i] = row

		norms[i] = norm
		docLens[i] = float64(row.DocumentLength)
		if row.HasDocument {
			hasDoc++
		}

		if _, seen := idCount[rec.ID]; !seen {
			idOrder = append(idOrder, rec.ID)
		}
		idCount[rec.ID]++

		for key, v := range rec.Metadata {
			if v.IsNull() {
				// Observed but null: counts toward the field set only.
				if _, ok := present[key]; !ok {
					present[key] = 0
				}
				continue
			}
			present[key]++
			if s, ok := v.AsString(); ok {
				m := freq[key]
				if m == nil {
					m = map[string]int{}
					freq[key] = m
				}
				m[s]++
			} else {
				numericSeen[key] = true
			}
		}
	}

	p.HasDocumentPct = float64(hasDoc) / float64(n)
	p.DocLengthStats = Describe(docLens)
	p.EmbeddingNormStats = Describe(norms)

	for key, count := range present {
		p.Fields = append(p.Fields, key)
		p.FieldCompleteness[key] = float64(count) / float64(n)
	}
	slices.Sort(p.Fields)

	for key, counts := range freq {
		if numericSeen[key] {
			continue // mixed-type field, not categorical
		}
		p.TopFields[key] = topCounts(counts)
	}

	p.UniqueIDs = len(idCount)
	for _, id := range idOrder {
		if idCount[id] > 1 {
			p.DuplicateIDs = append(p.DuplicateIDs, id)
		}
	}

	return p, rows
}

// topCounts selects the most frequent values, count descending with
// lexicographic order on ties so output is deterministic.
func topCounts(counts map[string]int) []ValueCount {
	out := make([]ValueCount, 0, len(counts))
	for v, c := range counts {
		out = append(out, ValueCount{Value: v, Count: c})
	}
	slices.SortFunc(out, func(a, b ValueCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Value, b.Value)
	})
	if len(out) > topValues {
		out = out[:topValues]
	}
	return out
}
