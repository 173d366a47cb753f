// Package model defines the shared data types that flow between the
// datastore boundary, the profiler and the curator.
package model
