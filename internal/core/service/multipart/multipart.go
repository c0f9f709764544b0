package multipart

import (
	"log/slog"
	"sort"

	"course-media/internal/config"
	"course-media/internal/core/domain"
	"course-media/internal/core/port"
)

type multipartService struct {
	storage   port.ObjectStorage
	media     port.MediaRepository
	minioCfg  config.MinioConfig
	uploadCfg config.UploadConfig
	logger    *slog.Logger
}

// NewMultipartService creates a new multipart service
func NewMultipartService(storage port.ObjectStorage, media port.MediaRepository, minioCfg config.MinioConfig, uploadCfg config.UploadConfig, logger *slog.Logger) port.MultipartService {
	return &multipartService{
		storage:   storage,
		media:     media,
		minioCfg:  minioCfg,
		uploadCfg: uploadCfg,
		logger:    logger,
	}
}

// orderParts sorts the client-supplied part set and rejects empty, duplicate
// or gapped sets. Completion is only valid when every part number 1..N has an etag.
func orderParts(parts []domain.UploadPart) ([]domain.UploadPart, error) {
	if len(parts) == 0 {
		return nil, domain.ErrIncompleteUpload
	}

	ordered := make([]domain.UploadPart, len(parts))
	copy(ordered, parts)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].PartNumber < ordered[j].PartNumber
	})

	for i, part := range ordered {
		if i > 0 && part.PartNumber == ordered[i-1].PartNumber {
			return nil, domain.ErrDuplicatePart
		}
		if part.PartNumber != i+1 {
			return nil, domain.ErrIncompleteUpload
		}
	}

	return ordered, nil
}
