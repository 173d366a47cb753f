package curate

import (
	"errors"
	"slices"
	"time"

	"github.com/vecsift/vecsift/export"
	"github.com/vecsift/vecsift/metadata"
	"github.com/vecsift/vecsift/model"
)

// ErrInvalidCap is returned when the export cap is not positive.
var ErrInvalidCap = errors.New("cap must be positive")

// DefaultCap bounds the export set when the caller does not choose one.
const DefaultCap = 2048

// DefaultDateField is the metadata field consulted for recency ranking.
const DefaultDateField = "published"

// DefaultKeyFields is the illustrative projection used when the caller
// does not configure one.
var DefaultKeyFields = []string{"id", "title", "summary", "cve_id", "published", "source", "severity"}

// Options configures one curation run.
type Options struct {
	// Cap is the maximum number of entries exported. Required, positive.
	Cap int
	// KeyFields is the ordered field allow-list projected into each
	// entry. "id" resolves to the record id. Nil means DefaultKeyFields.
	KeyFields []string
	// DateField is the metadata field parsed for the recency sort.
	// Empty means DefaultDateField.
	DateField string
}

func (o *Options) setDefaults() {
	if o.KeyFields == nil {
		o.KeyFields = DefaultKeyFields
	}
	if o.DateField == "" {
		o.DateField = DefaultDateField
	}
}

// candidate bundles a surviving row with its parsed recency date, so
// sorting never re-derives row positions.
type candidate struct {
	row     model.AugmentedRow
	date    time.Time
	hasDate bool
}

// Curate applies the selection policy to the augmented rows and returns
// the bounded export set.
//
// Dedup keeps the first occurrence of each id in input order. The sort
// is stable: date descending where parseable (undated rows after dated
// ones), then document length descending within any tie. Ragged vectors
// pass through unchanged; vector quality is a profiling concern.
func Curate(rows []model.AugmentedRow, opts Options) (export.Set, error) {
	if opts.Cap < 1 {
		return nil, ErrInvalidCap
	}
	opts.setDefaults()

	seen := make(map[string]struct{}, len(rows))
	kept := make([]candidate, 0, len(rows))
	for _, row := range rows {
		if _, dup := seen[row.ID]; dup {
			continue
		}
		seen[row.ID] = struct{}{}

		c := candidate{row: row}
		if v, ok := row.Metadata[opts.DateField]; ok {
			c.date, c.hasDate = parseDate(v)
		}
		kept = append(kept, c)
	}

	slices.SortStableFunc(kept, compareCandidates)

	if opts.Cap < len(kept) {
		kept = kept[:opts.Cap]
	}

	set := make(export.Set, len(kept))
	for i, c := range kept {
		set[i] = project(c.row, opts.KeyFields)
	}
	return set, nil
}

// compareCandidates orders by date descending (dated rows before undated
// ones), then document length descending. When no row carries a
// parseable date the first stage is a no-op and the order degrades to
// pure length ranking.
func compareCandidates(a, b candidate) int {
	switch {
	case a.hasDate && b.hasDate:
		if !a.date.Equal(b.date) {
			if a.date.After(b.date) {
				return -1
			}
			return 1
		}
	case a.hasDate:
		return -1
	case b.hasDate:
		return 1
	}
	return b.row.DocumentLength - a.row.DocumentLength
}

// project builds the export entry for one kept row. Key fields absent on
// the row are omitted, never placeholder-filled.
func project(row model.AugmentedRow, keyFields []string) export.Entry {
	fields := make(map[string]metadata.Value, len(keyFields))
	for _, key := range keyFields {
		if key == "id" {
			fields[key] = metadata.String(row.ID)
			continue
		}
		if v, ok := row.Metadata[key]; ok {
			fields[key] = v
		}
	}
	return export.Entry{
		Fields:   fields,
		Vector:   row.Vector,
		Document: row.Document,
	}
}
