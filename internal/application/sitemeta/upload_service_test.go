package sitemeta

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ngkart/backend/internal/domain/shared"
	"github.com/ngkart/backend/internal/domain/sitemeta"
)

// fakeStorage records puts and deletes, serving as the blob store stand-in
type fakeStorage struct {
	putKeys     []string
	deletedKeys []string
	putErr      error
}

func (f *fakeStorage) Put(_ context.Context, key string, _ io.Reader, _ string, _ int64) (string, error) {
	if f.putErr != nil {
		return "", f.putErr
	}
	f.putKeys = append(f.putKeys, key)
	return "https://cdn.example.com/" + key, nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	f.deletedKeys = append(f.deletedKeys, key)
	return nil
}

func TestUploadServiceUpload(t *testing.T) {
	store := &fakeStorage{}
	repo := new(MockFileUploadRepository)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*sitemeta.FileUpload")).Return(nil)

	service := NewUploadService(repo, store)
	resp, err := service.Upload(context.Background(), "teapot.jpg", "image/jpeg", 4, strings.NewReader("data"))

	require.NoError(t, err)
	require.Len(t, store.putKeys, 1)
	assert.Contains(t, resp.Key, "uploads/")
	assert.Contains(t, resp.Key, "teapot-")
	assert.True(t, strings.HasSuffix(resp.Key, ".jpg"))
	assert.Equal(t, "https://cdn.example.com/"+resp.Key, resp.URL)
	assert.Equal(t, int64(4), resp.Size)
	repo.AssertExpectations(t)
}

func TestUploadServiceUploadRejectsEmptyFile(t *testing.T) {
	store := &fakeStorage{}
	repo := new(MockFileUploadRepository)

	service := NewUploadService(repo, store)
	_, err := service.Upload(context.Background(), "teapot.jpg", "image/jpeg", 0, strings.NewReader(""))

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_FILE", domainErr.Code)
	assert.Empty(t, store.putKeys)
}

func TestUploadServiceUploadCleansUpOnSaveFailure(t *testing.T) {
	store := &fakeStorage{}
	repo := new(MockFileUploadRepository)
	repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("db down"))

	service := NewUploadService(repo, store)
	_, err := service.Upload(context.Background(), "teapot.jpg", "image/jpeg", 4, strings.NewReader("data"))

	require.Error(t, err)
	require.Len(t, store.putKeys, 1)
	assert.Equal(t, store.putKeys, store.deletedKeys)
}

func TestUploadServiceDelete(t *testing.T) {
	upload, err := sitemeta.NewFileUpload("uploads/2026/08/29/teapot-abc123.jpg", "https://cdn.example.com/x", "image/jpeg", 4)
	require.NoError(t, err)

	store := &fakeStorage{}
	repo := new(MockFileUploadRepository)
	repo.On("FindByID", mock.Anything, upload.ID).Return(upload, nil)
	repo.On("Delete", mock.Anything, upload.ID).Return(nil)

	service := NewUploadService(repo, store)
	require.NoError(t, service.Delete(context.Background(), upload.ID))
	assert.Equal(t, []string{upload.Key}, store.deletedKeys)
	repo.AssertExpectations(t)
}
