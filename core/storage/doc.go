// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so CSV datasets and rendered reports can live
// in AWS S3 or a self-hosted MinIO instance. The Client interface is mocked in
// core/storage/mocks for unit tests.
//
// # Operations
//
//   - EnsureBucket: Creates the target bucket if needed.
//   - GetObject: Retrieves a CSV dataset as a stream.
//   - PutObject: Uploads generated datasets and HTML reports.
//   - ListKeys: Lists dataset objects under a prefix.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
