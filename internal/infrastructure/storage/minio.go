package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/minio/minio-go/v7"
	"policy-vault.backend/internal/domain/repositories"
)

// minioAPI narrows *minio.Client so tests can substitute a fake.
type minioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
}

// MinioStore keeps uploaded documents in an S3-compatible bucket. Object keys
// mirror the public relative paths handed to clients, minus the URL prefix.
type MinioStore struct {
	api       minioAPI
	bucket    string
	urlPrefix string
}

var _ repositories.FileStore = (*MinioStore)(nil)

// NewMinioStore creates a bucket-backed file store, ensuring the bucket exists
func NewMinioStore(ctx context.Context, client *minio.Client, bucket, urlPrefix string) (*MinioStore, error) {
	return newMinioStoreWithAPI(ctx, client, bucket, urlPrefix)
}

func newMinioStoreWithAPI(ctx context.Context, api minioAPI, bucket, urlPrefix string) (*MinioStore, error) {
	s := &MinioStore{
		api:       api,
		bucket:    bucket,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
	}

	exists, err := s.api.BucketExists(ctx, s.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := s.api.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return s, nil
}

// Store uploads content and returns the public relative path
func (s *MinioStore) Store(ctx context.Context, filename string, content io.Reader) (string, error) {
	key := fmt.Sprintf("%d-%s", nowMillis(), sanitizeFilename(filename))

	_, err := s.api.PutObject(ctx, s.bucket, key, content, -1, minio.PutObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return s.urlPrefix + "/" + key, nil
}

// Delete removes the object behind a previously returned path
func (s *MinioStore) Delete(ctx context.Context, path string) error {
	key := strings.TrimPrefix(path, s.urlPrefix+"/")

	if _, err := s.api.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err != nil {
		if resp := minio.ToErrorResponse(err); resp.StatusCode == http.StatusNotFound {
			return repositories.ErrFileNotFound
		}
		return fmt.Errorf("failed to stat object: %w", err)
	}

	if err := s.api.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}
