package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"book-catalog-api/internal/config"
)

const authorImagePrefix = "authors/"

// MinIOStorage stores uploads as objects in a MinIO bucket
type MinIOStorage struct {
	client *minio.Client
	bucket string
}

// NewMinIOStorage connects to MinIO and creates the bucket if missing
func NewMinIOStorage(ctx context.Context, cfg config.MinIOConfig) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinIOStorage{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// Save uploads data as authors/<uuid>_<name>; Location is the object URL
func (s *MinIOStorage) Save(ctx context.Context, originalName string, data []byte) (*StoredFile, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	key := authorImagePrefix + objectName(originalName)
	contentType := detectContentType(data)

	_, err := s.client.PutObject(
		ctx,
		s.bucket,
		key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upload to minio: %w", err)
	}

	return &StoredFile{
		Key:         key,
		Location:    s.objectURL(key),
		ContentType: contentType,
		Size:        int64(len(data)),
	}, nil
}

func (s *MinIOStorage) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

func (s *MinIOStorage) objectURL(key string) string {
	endpoint := s.client.EndpointURL()
	return fmt.Sprintf("%s://%s/%s/%s", endpoint.Scheme, endpoint.Host, s.bucket, key)
}
