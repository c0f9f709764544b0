package storageevent_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"course-media/internal/adapters/repository"
	"course-media/internal/adapters/storage"
	"course-media/internal/core/domain"
	"course-media/internal/core/port"
	"course-media/internal/core/service/storageevent"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newEventService(mockRepo *repository.MockMediaRepository, mockStorage *storage.MockStorage) port.MessageService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return storageevent.NewStorageEventService(mockStorage, mockRepo, logger)
}

func notification(eventName, key string, size int64) []byte {
	return []byte(fmt.Sprintf(`{
		"EventName": %q,
		"Key": "course-media/%s",
		"Records": [{
			"eventName": %q,
			"s3": {
				"bucket": {"name": "course-media"},
				"object": {"key": %q, "size": %d, "eTag": "abc123"}
			},
			"eventTime": "2024-05-01T12:00:00.000Z"
		}]
	}`, eventName, key, eventName, key, size))
}

func TestStorageEventService_HandleMessage_ReconcilesObjectInfo(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := repository.NewMockMediaRepository()
	mockStorage := storage.NewMockStorage()
	service := newEventService(mockRepo, mockStorage)

	storageKey := "1714000000000-a1b2c3d4-lecture.mp4"
	record := &domain.MediaRecord{
		ID:          uuid.New(),
		StorageKey:  storageKey,
		SizeBytes:   10 * 1024 * 1024, // stale part-size estimate
		ContentType: "",
	}

	mockRepo.On("FindByStorageKey", ctx, storageKey).Return(record, nil)
	mockStorage.On("StatObject", ctx, storageKey).
		Return(&minio.ObjectInfo{Size: 12583912, ContentType: "video/mp4"}, nil)
	mockRepo.On("UpdateObjectInfo", ctx, record.ID, int64(12583912), "video/mp4").
		Return(nil)

	// Act
	err := service.HandleMessage(ctx, notification("s3:ObjectCreated:CompleteMultipartUpload", storageKey, 12583912))

	// Assert
	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockStorage.AssertExpectations(t)
}

func TestStorageEventService_HandleMessage_NoChangeSkipsWrite(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := repository.NewMockMediaRepository()
	mockStorage := storage.NewMockStorage()
	service := newEventService(mockRepo, mockStorage)

	storageKey := "1714000000000-a1b2c3d4-lecture.mp4"
	record := &domain.MediaRecord{
		ID:          uuid.New(),
		StorageKey:  storageKey,
		SizeBytes:   2048,
		ContentType: "video/mp4",
	}

	mockRepo.On("FindByStorageKey", ctx, storageKey).Return(record, nil)
	mockStorage.On("StatObject", ctx, storageKey).
		Return(&minio.ObjectInfo{Size: 2048, ContentType: "video/mp4"}, nil)

	// Act
	err := service.HandleMessage(ctx, notification("s3:ObjectCreated:Put", storageKey, 2048))

	// Assert
	require.NoError(t, err)
	mockRepo.AssertNotCalled(t, "UpdateObjectInfo", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestStorageEventService_HandleMessage_UnknownKeySkipped(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := repository.NewMockMediaRepository()
	mockStorage := storage.NewMockStorage()
	service := newEventService(mockRepo, mockStorage)

	mockRepo.On("FindByStorageKey", ctx, "unregistered.bin").
		Return(nil, domain.ErrRecordNotFound)

	// Act
	err := service.HandleMessage(ctx, notification("s3:ObjectCreated:Put", "unregistered.bin", 1))

	// Assert
	assert.NoError(t, err)
	mockStorage.AssertNotCalled(t, "StatObject", mock.Anything, mock.Anything)
}

func TestStorageEventService_HandleMessage_IgnoresUnrelatedEvents(t *testing.T) {
	// Arrange
	mockRepo := repository.NewMockMediaRepository()
	mockStorage := storage.NewMockStorage()
	service := newEventService(mockRepo, mockStorage)

	// Act
	err := service.HandleMessage(context.Background(), notification("s3:ObjectRemoved:Delete", "whatever.mp4", 0))

	// Assert
	assert.NoError(t, err)
	mockRepo.AssertNotCalled(t, "FindByStorageKey", mock.Anything, mock.Anything)
}

func TestStorageEventService_HandleMessage_MalformedPayload(t *testing.T) {
	// Arrange
	mockRepo := repository.NewMockMediaRepository()
	mockStorage := storage.NewMockStorage()
	service := newEventService(mockRepo, mockStorage)

	// Act
	err := service.HandleMessage(context.Background(), []byte(`{"Records": []}`))

	// Assert
	assert.Error(t, err)
}

func TestStorageEventService_HandleMessage_DecodesURLEncodedKey(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := repository.NewMockMediaRepository()
	mockStorage := storage.NewMockStorage()
	service := newEventService(mockRepo, mockStorage)

	record := &domain.MediaRecord{ID: uuid.New(), StorageKey: "1714-abcd1234-my file.mp4"}
	mockRepo.On("FindByStorageKey", ctx, "1714-abcd1234-my file.mp4").Return(record, nil)
	mockStorage.On("StatObject", ctx, "1714-abcd1234-my file.mp4").
		Return(&minio.ObjectInfo{Size: 5, ContentType: "video/mp4"}, nil)
	mockRepo.On("UpdateObjectInfo", ctx, record.ID, int64(5), "video/mp4").Return(nil)

	// Act
	err := service.HandleMessage(ctx, notification("s3:ObjectCreated:Put", "1714-abcd1234-my%20file.mp4", 5))

	// Assert
	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
