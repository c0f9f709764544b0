package media

import (
	"log/slog"

	"course-media/internal/config"
	"course-media/internal/core/port"
)

type mediaService struct {
	media    port.MediaRepository
	storage  port.ObjectStorage
	minioCfg config.MinioConfig
	logger   *slog.Logger
}

// NewMediaService creates a new media service
func NewMediaService(media port.MediaRepository, storage port.ObjectStorage, minioCfg config.MinioConfig, logger *slog.Logger) port.MediaService {
	return &mediaService{
		media:    media,
		storage:  storage,
		minioCfg: minioCfg,
		logger:   logger,
	}
}
