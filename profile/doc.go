// Package profile turns a record batch into a statistical quality report
// and an augmented per-record view.
//
// Profiling is deliberately tolerant: it characterizes messy input rather
// than rejecting it. Ragged vector dimensions, missing metadata fields
// and duplicate ids are all surfaced as findings in the Profile instead
// of errors. An empty batch is a normal outcome and yields a zero
// Profile.
package profile
