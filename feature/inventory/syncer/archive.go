package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"inventory-sync/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ArchiveSink writes reload reports to object storage as JSON.
// Archive failures are logged and never affect the reload.
type ArchiveSink struct {
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger
}

// NewArchiveSink creates a sink writing to {bucket}/{prefix}/<unix-nanos>.json.
func NewArchiveSink(client storage.Client, bucket, prefix string, logger *zap.Logger) *ArchiveSink {
	return &ArchiveSink{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		logger: logger,
	}
}

// ObjectName returns the key a report is stored under.
func (a *ArchiveSink) ObjectName(report *ReloadReport) string {
	name := fmt.Sprintf("%d.json", report.StartedAt.UnixNano())
	if a.prefix == "" {
		return name
	}
	return a.prefix + "/" + name
}

func (a *ArchiveSink) Record(ctx context.Context, report *ReloadReport) {
	body, err := json.Marshal(report)
	if err != nil {
		a.logger.Warn("Failed to encode reload report", zap.Error(err))
		return
	}

	objectName := a.ObjectName(report)
	_, err = a.client.PutObject(ctx, a.bucket, objectName, bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		a.logger.Warn("Failed to archive reload report",
			zap.String("bucket", a.bucket),
			zap.String("object", objectName),
			zap.Error(err))
		return
	}

	a.logger.Debug("Reload report archived", zap.String("object", objectName))
}
