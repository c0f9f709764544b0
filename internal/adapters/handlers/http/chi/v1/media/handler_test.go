package media_test

import (
	"io"
	"log/slog"
	"net/http"

	"course-media/internal/adapters/handlers/http/chi"
	mediahandler "course-media/internal/adapters/handlers/http/chi/v1/media"
	"course-media/internal/core/service/audit"
	"course-media/internal/core/service/credential"
	"course-media/internal/core/service/media"
	"course-media/internal/core/service/multipart"
)

type handlerMocks struct {
	credential *credential.MockCredentialService
	multipart  *multipart.MockMultipartService
	audit      *audit.MockAuditService
	media      *media.MockMediaService
}

func newTestRouter() (http.Handler, *handlerMocks) {
	mocks := &handlerMocks{
		credential: credential.NewMockCredentialService(),
		multipart:  multipart.NewMockMultipartService(),
		audit:      audit.NewMockAuditService(),
		media:      media.NewMockMediaService(),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := mediahandler.NewMediaHandlerV1(mocks.credential, mocks.multipart, mocks.audit, mocks.media, logger)
	return chi.NewRouter(logger, handler, ""), mocks
}
