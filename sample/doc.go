// Package sample draws fixed-size uniform random samples (without
// replacement) from export artifacts, producing small fixture files for
// unit tests and CI.
//
// This is a fixture generator, not a production path: when the source
// artifact holds fewer records than requested it fails loudly rather
// than silently truncating, because a short CI artifact is a real
// problem worth surfacing.
package sample
