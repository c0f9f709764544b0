package storageevent

import (
	"log/slog"

	"course-media/internal/core/port"
)

type storageEventService struct {
	storage port.ObjectStorage
	media   port.MediaRepository
	logger  *slog.Logger
}

// NewStorageEventService creates a new storage event handler
func NewStorageEventService(storage port.ObjectStorage, media port.MediaRepository, logger *slog.Logger) port.MessageService {
	return &storageEventService{
		storage: storage,
		media:   media,
		logger:  logger,
	}
}
