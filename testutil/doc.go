// Package testutil provides testing utilities for vecsift.
//
// This package is intended for use in tests, benchmarks and demo
// seeding only. It provides a seeded, thread-safe RNG and generators
// for random vectors and realistic record batches.
package testutil
