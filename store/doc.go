// Package store is the datastore collaborator: a SQLite-backed
// collection store (modernc.org/sqlite, no cgo) that the curation core
// consumes batches from.
//
// The core never holds a handle to the store. It receives a fully
// materialized model.Batch from FetchAll and hands back plain
// serializable structures; pagination, retries and connection lifecycle
// all stay on this side of the boundary.
//
// Records with duplicate ids are representable on purpose: duplicate
// detection is a profiling finding and deduplication is the curator's
// job, so the store must not mask either.
package store
