package credential_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"course-media/internal/adapters/storage"
	"course-media/internal/config"
	"course-media/internal/core/domain"
	"course-media/internal/core/service/credential"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var minioCfg = config.MinioConfig{
	BucketName:              "course-media",
	UploadPresignDefault:    time.Hour,
	UploadPresignCeiling:    24 * time.Hour,
	DownloadPresignDuration: 24 * time.Hour,
	PlayPresignDuration:     7 * 24 * time.Hour,
}

var uploadCfg = config.UploadConfig{
	MaxObjectSize: 50 << 30,
	PartSize:      10 << 20,
	MaxNameLength: 100,
}

func TestCredentialService_IssueUploadCredential_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockStorage := storage.NewMockStorage()
	service := credential.NewCredentialService(mockStorage, minioCfg, uploadCfg)

	uploadExpiresAt := time.Now().Add(time.Hour)
	downloadExpiresAt := time.Now().Add(24 * time.Hour)

	mockStorage.
		On("PresignUpload", ctx, mock.Anything, "video/mp4", time.Hour).
		Return("https://minio.example.com/upload", &uploadExpiresAt, nil)
	mockStorage.
		On("PresignDownload", ctx, mock.Anything, 24*time.Hour).
		Return("https://minio.example.com/download", &downloadExpiresAt, nil)
	mockStorage.On("Bucket").Return("course-media")

	// Act
	cred, err := service.IssueUploadCredential(ctx, domain.CredentialRequest{
		FileName:    "lesson.mp4",
		ContentType: "video/mp4",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "https://minio.example.com/upload", cred.UploadURL)
	assert.Equal(t, "https://minio.example.com/download", cred.DownloadURL)
	assert.Empty(t, cred.PlayURL)
	assert.Equal(t, "lesson.mp4", cred.OriginalFileName)
	assert.Equal(t, time.Hour, cred.ExpiresIn)
	assert.Equal(t, "course-media", cred.Bucket)
	assert.Contains(t, cred.StorageKey, "lesson.mp4")
	mockStorage.AssertExpectations(t)
}

func TestCredentialService_IssueUploadCredential_WithPlayURL(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockStorage := storage.NewMockStorage()
	service := credential.NewCredentialService(mockStorage, minioCfg, uploadCfg)

	expiresAt := time.Now().Add(24 * time.Hour)
	playExpiresAt := time.Now().Add(7 * 24 * time.Hour)

	mockStorage.
		On("PresignUpload", ctx, mock.Anything, "video/mp4", time.Hour).
		Return("https://minio.example.com/upload", &expiresAt, nil)
	mockStorage.
		On("PresignDownload", ctx, mock.Anything, 24*time.Hour).
		Return("https://minio.example.com/download", &expiresAt, nil)
	mockStorage.
		On("PresignDownload", ctx, mock.Anything, 7*24*time.Hour).
		Return("https://minio.example.com/play", &playExpiresAt, nil)
	mockStorage.On("Bucket").Return("course-media")

	// Act
	cred, err := service.IssueUploadCredential(ctx, domain.CredentialRequest{
		FileName:        "lesson.mp4",
		ContentType:     "video/mp4",
		GeneratePlayURL: true,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "https://minio.example.com/play", cred.PlayURL)
	require.NotNil(t, cred.PlayURLExpiresAt)
	assert.WithinDuration(t, playExpiresAt, *cred.PlayURLExpiresAt, time.Second)
	mockStorage.AssertExpectations(t)
}

func TestCredentialService_IssueUploadCredential_ClampsExpiry(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockStorage := storage.NewMockStorage()
	service := credential.NewCredentialService(mockStorage, minioCfg, uploadCfg)

	expiresAt := time.Now().Add(24 * time.Hour)

	// 48h requested, 24h ceiling
	mockStorage.
		On("PresignUpload", ctx, mock.Anything, "", 24*time.Hour).
		Return("https://minio.example.com/upload", &expiresAt, nil)
	mockStorage.
		On("PresignDownload", ctx, mock.Anything, 24*time.Hour).
		Return("https://minio.example.com/download", &expiresAt, nil)
	mockStorage.On("Bucket").Return("course-media")

	// Act
	cred, err := service.IssueUploadCredential(ctx, domain.CredentialRequest{
		FileName: "lesson.mp4",
		Expires:  48 * time.Hour,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, cred.ExpiresIn)
	mockStorage.AssertExpectations(t)
}

func TestCredentialService_IssueUploadCredential_EmptyFileName(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockStorage := storage.NewMockStorage()
	service := credential.NewCredentialService(mockStorage, minioCfg, uploadCfg)

	// Act
	cred, err := service.IssueUploadCredential(ctx, domain.CredentialRequest{FileName: "   "})

	// Assert
	require.ErrorIs(t, err, domain.ErrInvalidRequest)
	assert.Nil(t, cred)
	mockStorage.AssertNotCalled(t, "PresignUpload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCredentialService_IssueUploadCredential_SigningFailure(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockStorage := storage.NewMockStorage()
	service := credential.NewCredentialService(mockStorage, minioCfg, uploadCfg)

	var nilTime *time.Time
	mockStorage.
		On("PresignUpload", ctx, mock.Anything, "", time.Hour).
		Return("", nilTime, errors.New("bucket unreachable"))

	// Act
	cred, err := service.IssueUploadCredential(ctx, domain.CredentialRequest{FileName: "lesson.mp4"})

	// Assert
	require.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.Nil(t, cred)
	mockStorage.AssertExpectations(t)
}
