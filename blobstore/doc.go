// Package blobstore abstracts where curated artifacts are published.
//
// The export pipeline produces small immutable JSON artifacts (profile
// reports, edge export sets, CI fixtures). A Store is the destination
// those artifacts are mirrored to so that on-device consumers can fetch
// them: the local filesystem during development, an in-memory store in
// tests, or a MinIO/S3-compatible bucket in production (see the minio
// subpackage).
package blobstore
