package matching

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"crm-matcher/core/apperror"
	"crm-matcher/core/match"
	"crm-matcher/core/storage"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Exporter uploads the detail lists of a matching run to object storage.
type Exporter struct {
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewExporter creates an exporter writing into the given bucket.
func NewExporter(client storage.Client, bucket string, logger *zap.Logger) *Exporter {
	return &Exporter{client: client, bucket: bucket, logger: logger}
}

// ExportDetails writes matched.csv, only_crm.csv and only_leads.csv under
// exports/<key>/<run-id>/ and returns the object prefix. Each row carries the
// normalized key and its representative original spelling.
func (e *Exporter) ExportDetails(ctx context.Context, key string, result *match.Result) (string, error) {
	exists, err := e.client.BucketExists(ctx, e.bucket)
	if err != nil {
		return "", apperror.Wrap(apperror.KindStorage, err, "checking bucket %s", e.bucket)
	}
	if !exists {
		if err := e.client.MakeBucket(ctx, e.bucket, minio.MakeBucketOptions{}); err != nil {
			return "", apperror.Wrap(apperror.KindStorage, err, "creating bucket %s", e.bucket)
		}
	}

	prefix := fmt.Sprintf("exports/%s/%s", key, uuid.NewString())
	lists := []struct {
		name string
		keys []string
	}{
		{"matched.csv", result.Matches},
		{"only_crm.csv", result.OnlyA},
		{"only_leads.csv", result.OnlyB},
	}

	for _, list := range lists {
		body, err := renderDetailCSV(result, list.keys)
		if err != nil {
			return "", err
		}
		objectName := prefix + "/" + list.name
		_, err = e.client.PutObject(ctx, e.bucket, objectName,
			bytes.NewReader(body), int64(len(body)),
			minio.PutObjectOptions{ContentType: "text/csv"})
		if err != nil {
			return "", apperror.Wrap(apperror.KindStorage, err, "uploading %s", objectName)
		}
	}

	e.logger.Info("Exported detail lists",
		zap.String("bucket", e.bucket),
		zap.String("prefix", prefix),
	)
	return prefix, nil
}

func renderDetailCSV(result *match.Result, keys []string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"normalized", "original"}); err != nil {
		return nil, apperror.Wrap(apperror.KindStorage, err, "rendering detail csv")
	}
	for _, k := range keys {
		if err := w.Write([]string{k, result.RepresentativeOriginal(k)}); err != nil {
			return nil, apperror.Wrap(apperror.KindStorage, err, "rendering detail csv")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, apperror.Wrap(apperror.KindStorage, err, "rendering detail csv")
	}
	return buf.Bytes(), nil
}
