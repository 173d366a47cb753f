package model

import (
	"fmt"

	"github.com/vecsift/vecsift/metadata"
)

// Record represents one stored item: a stable string id, an embedding
// vector, a metadata document and optional free-text content.
//
// An empty Document means absent content; derived statistics treat null
// and empty the same way.
type Record struct {
	ID       string
	Vector   []float32
	Metadata metadata.Document
	Document string
}

// Batch is one fetched collection snapshot in the columnar layout the
// datastore boundary delivers: parallel columns indexed by record position.
// It is owned transiently by a single profiling/curation run.
type Batch struct {
	IDs       []string
	Vectors   [][]float32
	Metadata  []metadata.Document
	Documents []string
}

// ColumnMismatchError reports columns of differing length passed to NewBatch.
type ColumnMismatchError struct {
	IDs       int
	Vectors   int
	Metadata  int
	Documents int
}

func (e *ColumnMismatchError) Error() string {
	return fmt.Sprintf("batch column length mismatch: ids=%d vectors=%d metadata=%d documents=%d",
		e.IDs, e.Vectors, e.Metadata, e.Documents)
}

// NewBatch assembles a Batch, validating that all columns have one length.
func NewBatch(ids []string, vectors [][]float32, metas []metadata.Document, docs []string) (*Batch, error) {
	n := len(ids)
	if len(vectors) != n || len(metas) != n || len(docs) != n {
		return nil, &ColumnMismatchError{
			IDs:       n,
			Vectors:   len(vectors),
			Metadata:  len(metas),
			Documents: len(docs),
		}
	}
	return &Batch{IDs: ids, Vectors: vectors, Metadata: metas, Documents: docs}, nil
}

// Len returns the number of records in the batch.
func (b *Batch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.IDs)
}

// Record materializes the row view of record i.
func (b *Batch) Record(i int) Record {
	return Record{
		ID:       b.IDs[i],
		Vector:   b.Vectors[i],
		Metadata: b.Metadata[i],
		Document: b.Documents[i],
	}
}

// Records materializes all rows in batch order.
func (b *Batch) Records() []Record {
	recs := make([]Record, b.Len())
	for i := range recs {
		recs[i] = b.Record(i)
	}
	return recs
}

// Dim returns the shared vector dimensionality. ok is false for an empty
// batch or a ragged one (vectors of inconsistent length).
func (b *Batch) Dim() (dim int, ok bool) {
	if b.Len() == 0 {
		return 0, false
	}
	dim = len(b.Vectors[0])
	for _, v := range b.Vectors[1:] {
		if len(v) != dim {
			return 0, false
		}
	}
	return dim, true
}

// AugmentedRow is one Record plus the per-record derived columns the
// profiler computes. It carries its own vector and document through
// sorting and truncation, so no positional re-lookup is ever needed.
type AugmentedRow struct {
	Record

	// Norm is the Euclidean norm of the embedding vector.
	Norm float64
	// HasDocument reports whether the record carries non-empty content.
	HasDocument bool
	// DocumentLength is the content length in bytes, 0 if absent.
	DocumentLength int
}
