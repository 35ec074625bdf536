package http

import (
	"net/http"
	"testing"

	"github.com/MKhiriev/trip-keeper/internal/logger"
	"github.com/MKhiriev/trip-keeper/internal/mock"
	"github.com/MKhiriev/trip-keeper/internal/service"
	"github.com/MKhiriev/trip-keeper/internal/utils"
	"go.uber.org/mock/gomock"
)

type testMocks struct {
	auth      *mock.MockAuthService
	documents *mock.MockDocumentService
	appInfo   *mock.MockAppInfoService
}

// newTestHandler создаёт Handler с моками сервисов и nop-логгером.
func newTestHandler(t *testing.T) (*Handler, testMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := testMocks{
		auth:      mock.NewMockAuthService(ctrl),
		documents: mock.NewMockDocumentService(ctrl),
		appInfo:   mock.NewMockAppInfoService(ctrl),
	}

	h := NewHandler(&service.Services{
		AuthService:     m.auth,
		DocumentService: m.documents,
		AppInfoService:  m.appInfo,
	}, logger.Nop())

	return h, m
}

// withUser кладёт userID в контекст так же, как это делает middleware auth.
func withUser(r *http.Request, userID string) *http.Request {
	return r.WithContext(utils.WithUserID(r.Context(), userID))
}
