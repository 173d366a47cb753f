// Package vecsift profiles collections of embedding-vector records and
// curates bounded, deduplicated export subsets for edge deployments.
//
// The top-level Pipeline ties the pieces together: it computes a
// statistical profile of a record batch (field completeness, document
// and norm statistics, duplicate detection), then selects a capped,
// ranked subset of records and projects them into a flat export shape.
//
// The subpackages can also be used independently:
//
//   - similarity: cosine scoring and top-k retrieval
//   - profile: collection statistics and data-quality findings
//   - curate: deduplication, ranking, and field projection
//   - export: flat export entries and artifact writing
//   - store: SQLite-backed record persistence
//   - sample: deterministic test-fixture sampling
//
// Basic usage:
//
//	p := vecsift.New(vecsift.WithCap(1024))
//	res, err := p.Run(ctx, batch)
//	if err != nil {
//	    return err
//	}
//	err = p.WriteArtifacts(ctx, "out", res)
package vecsift
