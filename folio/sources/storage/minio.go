package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"folio/folio/config"
	"folio/folio/sources/psql/models"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ArchiveStore exports chat-session summaries to object storage so the
// primary database only keeps recent rows.
type ArchiveStore struct {
	client *minio.Client
	bucket string
}

func NewArchiveStore(cfg config.Config) (*ArchiveStore, error) {
	bucket := cfg.MinIOBucket
	client, err := minio.New(
		cfg.MinIOEndpoint,
		&minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
			Secure: false,
		},
	)
	if err != nil {
		return nil, err
	}
	exists, err := client.BucketExists(context.Background(), bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}
	return &ArchiveStore{client: client, bucket: bucket}, nil
}

// UploadSessions writes one JSON object holding the batch, keyed by the
// cutoff date and upload time.
func (s *ArchiveStore) UploadSessions(ctx context.Context, cutoff time.Time, sessions []models.ChatSession) (string, error) {
	key := filepath.Join(
		"chat-sessions",
		cutoff.Format("2006-01-02"),
		fmt.Sprintf("batch-%d.json", time.Now().Unix()),
	)

	data, err := json.Marshal(sessions)
	if err != nil {
		return "", err
	}

	_, err = s.client.PutObject(ctx, s.bucket, key,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", err
	}

	return key, nil
}
