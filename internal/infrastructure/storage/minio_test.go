package storage

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"policy-vault.backend/internal/domain/repositories"
)

type fakeMinioAPI struct {
	bucketExists bool
	madeBucket   bool
	objects      map[string]string
}

func newFakeMinioAPI(bucketExists bool) *fakeMinioAPI {
	return &fakeMinioAPI{bucketExists: bucketExists, objects: map[string]string{}}
}

func (f *fakeMinioAPI) BucketExists(context.Context, string) (bool, error) {
	return f.bucketExists, nil
}

func (f *fakeMinioAPI) MakeBucket(_ context.Context, _ string, _ minio.MakeBucketOptions) error {
	f.madeBucket = true
	f.bucketExists = true
	return nil
}

func (f *fakeMinioAPI) PutObject(_ context.Context, _ string, objectName string, reader io.Reader, _ int64, _ minio.PutObjectOptions) (minio.UploadInfo, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.objects[objectName] = string(data)
	return minio.UploadInfo{Key: objectName}, nil
}

func (f *fakeMinioAPI) RemoveObject(_ context.Context, _ string, objectName string, _ minio.RemoveObjectOptions) error {
	delete(f.objects, objectName)
	return nil
}

func (f *fakeMinioAPI) StatObject(_ context.Context, _ string, objectName string, _ minio.StatObjectOptions) (minio.ObjectInfo, error) {
	if _, ok := f.objects[objectName]; !ok {
		return minio.ObjectInfo{}, minio.ErrorResponse{StatusCode: http.StatusNotFound, Code: "NoSuchKey"}
	}
	return minio.ObjectInfo{Key: objectName}, nil
}

func TestMinioStore_CreatesBucketWhenMissing(t *testing.T) {
	api := newFakeMinioAPI(false)
	_, err := newMinioStoreWithAPI(context.Background(), api, "policy-docs", "/uploads")
	require.NoError(t, err)
	assert.True(t, api.madeBucket)
}

func TestMinioStore_StoreAndDelete(t *testing.T) {
	api := newFakeMinioAPI(true)
	store, err := newMinioStoreWithAPI(context.Background(), api, "policy-docs", "/uploads")
	require.NoError(t, err)
	ctx := context.Background()

	path, err := store.Store(ctx, "contract.pdf", strings.NewReader("pdf-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "/uploads/"))

	key := strings.TrimPrefix(path, "/uploads/")
	assert.Equal(t, "pdf-bytes", api.objects[key])

	require.NoError(t, store.Delete(ctx, path))
	assert.Empty(t, api.objects)
}

func TestMinioStore_DeleteMissingObject(t *testing.T) {
	api := newFakeMinioAPI(true)
	store, err := newMinioStoreWithAPI(context.Background(), api, "policy-docs", "/uploads")
	require.NoError(t, err)

	err = store.Delete(context.Background(), "/uploads/1700000000000-gone.pdf")
	assert.ErrorIs(t, err, repositories.ErrFileNotFound)
}
