package archive

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yanqian/smart-wardrobe/internal/domain/wardrobe"
)

// S3Storage archives uploads in any S3-compatible bucket (MinIO, R2, AWS).
type S3Storage struct {
	client *minio.Client
	bucket string
	logger *slog.Logger

	bucketOnce sync.Once
	bucketErr  error
}

// NewS3Storage constructs the storage adapter.
func NewS3Storage(endpoint, accessKey, secretKey, bucket, region string, logger *slog.Logger) (*S3Storage, error) {
	if logger == nil {
		logger = slog.Default()
	}
	client, err := minio.New(sanitizeEndpoint(endpoint), &minio.Options{
		Creds:        credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure:       useSSL(endpoint),
		Region:       region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}
	return &S3Storage{client: client, bucket: bucket, logger: logger.With("component", "archive.s3")}, nil
}

func (s *S3Storage) ensureBucket(ctx context.Context) error {
	s.bucketOnce.Do(func() {
		exists, err := s.client.BucketExists(ctx, s.bucket)
		if err == nil && exists {
			return
		}
		err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
		if err != nil && minio.ToErrorResponse(err).Code != "BucketAlreadyOwnedByYou" {
			s.bucketErr = fmt.Errorf("ensure bucket %s: %w", s.bucket, err)
			return
		}
		s.logger.Info("archive bucket ready", "bucket", s.bucket)
	})
	return s.bucketErr
}

// Put uploads data to the bucket.
func (s *S3Storage) Put(ctx context.Context, key string, data []byte, mimeType string) (wardrobe.StoredObject, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return wardrobe.StoredObject{}, err
	}
	info, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:      mimeType,
		DisableMultipart: len(data) < 5*1024*1024,
	})
	if err != nil {
		return wardrobe.StoredObject{}, fmt.Errorf("put %s: %w", key, err)
	}
	return wardrobe.StoredObject{
		Key:      key,
		Size:     info.Size,
		MimeType: mimeType,
		ETag:     info.ETag,
	}, nil
}

var _ wardrobe.ObjectStorage = (*S3Storage)(nil)

// sanitizeEndpoint removes schemes and paths to satisfy minio.New expectations.
func sanitizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	if i := strings.Index(raw, "/"); i >= 0 {
		raw = raw[:i]
	}
	return raw
}

func useSSL(endpoint string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(endpoint)), "https")
}
