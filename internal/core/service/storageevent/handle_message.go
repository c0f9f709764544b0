package storageevent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"course-media/internal/core/domain"
)

// HandleMessage reconciles a media record against the object a bucket
// notification describes: the stored object's stat is authoritative for size
// and content type, overriding whatever estimate was persisted at completion.
func (s *storageEventService) HandleMessage(ctx context.Context, data []byte) error {
	var event domain.StorageEvent

	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("could not unmarshal storage event: %v", err)
	}
	if len(event.Records) == 0 {
		return fmt.Errorf("no records in storage event")
	}

	notif := event.Records[0]

	eventType := classifyEvent(notif.EventName)
	if eventType == domain.EventTypeUnknown {
		s.logger.Info("ignoring storage event", "eventName", notif.EventName)
		return nil
	}

	// MinIO URL-encodes object keys in notifications.
	storageKey, err := url.QueryUnescape(notif.S3.Object.Key)
	if err != nil {
		return fmt.Errorf("could not decode object key %q: %v", notif.S3.Object.Key, err)
	}

	s.logger.Info("handling storage event",
		"eventName", notif.EventName,
		"storageKey", storageKey)

	record, err := s.media.FindByStorageKey(ctx, storageKey)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			// Objects uploaded before registration land here; the register
			// call will carry the correct metadata itself.
			s.logger.Info("no record for storage key, skipping", "storageKey", storageKey)
			return nil
		}
		return err
	}

	info, err := s.storage.StatObject(ctx, storageKey)
	if err != nil {
		return fmt.Errorf("could not stat %s: %w", storageKey, err)
	}

	if record.SizeBytes == info.Size && record.ContentType == info.ContentType {
		return nil
	}

	if err := s.media.UpdateObjectInfo(ctx, record.ID, info.Size, info.ContentType); err != nil {
		return fmt.Errorf("%w: could not reconcile record %s: %w", domain.ErrPersistenceFailed, record.ID, err)
	}

	s.logger.Info("reconciled media record from storage event",
		"recordID", record.ID.String(),
		"sizeBytes", info.Size,
		"contentType", info.ContentType)

	return nil
}

func classifyEvent(eventName string) domain.EventType {
	switch eventName {
	case "s3:ObjectCreated:Put":
		return domain.EventTypeSimpleUploadComplete
	case "s3:ObjectCreated:CompleteMultipartUpload":
		return domain.EventTypeMultipartUploadComplete
	default:
		return domain.EventTypeUnknown
	}
}
