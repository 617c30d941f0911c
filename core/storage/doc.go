// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client, which serves both AWS S3 and self-hosted MinIO.
// The synchronizer uses it to archive the report of every full reload so that
// past sweeps (failed documents, skipped records) can be audited.
//
// # Client Interface
//
// The Client interface is the subset of the MinIO client the archive needs,
// which keeps it easy to mock (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
