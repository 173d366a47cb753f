// Package similarity provides exact vector similarity scoring and
// top-k ranking over in-memory record batches.
//
// Scoring is brute force: every record is compared against the query.
// Accumulation happens in float64 regardless of the float32 vector
// element type, which keeps scores stable on long vectors.
//
//	score, err := similarity.Cosine(a, b)
//	matches, err := similarity.TopK(query, batch.Records(), 10)
package similarity
