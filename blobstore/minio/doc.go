// Package minio provides a blobstore.Store backed by MinIO or any
// S3-compatible object storage.
//
//	client, _ := minio.New("minio.example.com:9000", &minio.Options{
//	    Creds: credentials.NewStaticV4(accessKey, secretKey, ""),
//	})
//	store := miniostore.NewStore(client, "artifacts", "edge/")
//
// The store is the publication target for export artifacts: devices pull
// the curated set straight from the bucket.
package minio
