// Package curate selects the bounded, deduplicated, ranked subset of a
// profiled batch for transfer to a resource-constrained consumer.
//
// The pipeline is dedup -> sort -> truncate -> project. Ranking prefers
// recent records (a parseable date field, descending) and, within date
// ties or when no dates parse at all, longer documents: richer content
// is considered more informative for the edge subset.
package curate
