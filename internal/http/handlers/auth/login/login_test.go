package login

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/ambuhub/internal/common"
	"github.com/magabrotheeeer/ambuhub/internal/models"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Login(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

type SessionsMock struct {
	mock.Mock
}

func (m *SessionsMock) Start(ctx context.Context, w http.ResponseWriter, userID string, role models.Role) (*models.Session, error) {
	args := m.Called(ctx, w, userID, role)
	s, _ := args.Get(0).(*models.Session)
	return s, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestLoginHandler_ServeHTTP(t *testing.T) {
	vendor := &models.User{ID: "u1", Email: "a@x.com", Role: models.RoleVendor}
	standard := &models.User{ID: "u2", Email: "b@x.com", Role: models.RoleStandard}

	tests := []struct {
		name         string
		mockUser     *models.User
		mockErr      error
		sessionErr   error
		wantStatus   int
		wantLocation string
		wantBody     string
		wantSession  bool
	}{
		{
			name:         "vendor goes to vendor page",
			mockUser:     vendor,
			wantStatus:   http.StatusSeeOther,
			wantLocation: VendorHome,
			wantSession:  true,
		},
		{
			name:         "standard user goes to standard page",
			mockUser:     standard,
			wantStatus:   http.StatusSeeOther,
			wantLocation: StandardHome,
			wantSession:  true,
		},
		{
			name:       "invalid credentials",
			mockErr:    common.ErrInvalidCredentials,
			wantStatus: http.StatusBadRequest,
			wantBody:   "invalid email or password",
		},
		{
			name:       "storage failure",
			mockErr:    common.ErrPersistence,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:        "session store failure",
			mockUser:    vendor,
			sessionErr:  assert.AnError,
			wantStatus:  http.StatusInternalServerError,
			wantSession: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(AuthServiceMock)
			sessions := new(SessionsMock)

			svc.On("Login", mock.Anything, "a@x.com", "pw1").Return(tt.mockUser, tt.mockErr).Once()
			if tt.wantSession {
				sessions.On("Start", mock.Anything, mock.Anything, tt.mockUser.ID, tt.mockUser.Role).
					Return(&models.Session{Token: "tok", UserID: tt.mockUser.ID, Role: tt.mockUser.Role}, tt.sessionErr).Once()
			}

			form := url.Values{"email": {"a@x.com"}, "password": {"pw1"}}
			req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()

			New(newNoopLogger(), svc, sessions).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
			}
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
			svc.AssertExpectations(t)
			sessions.AssertExpectations(t)
			if !tt.wantSession {
				sessions.AssertNotCalled(t, "Start", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}
