package edit

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/ambuhub/internal/common"
	"github.com/magabrotheeeer/ambuhub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/ambuhub/internal/models"
	services "github.com/magabrotheeeer/ambuhub/internal/services/product"
)

type ProductServiceMock struct {
	mock.Mock
}

func (m *ProductServiceMock) Update(ctx context.Context, productID int, ownerID string, fields models.ProductFields, img *services.Image) error {
	args := m.Called(ctx, productID, ownerID, fields, img)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newRequest(t *testing.T, id, filename string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range map[string]string{"name": "Cart v2", "description": "new", "price": "7.5", "stock": "0"} {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte("GIF89a"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/edit-product/"+id, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middleware.RequestIDKey, "reqid123")
	ctx = middlewarectx.WithSession(ctx, &models.Session{UserID: "vendor-a", Role: models.RoleVendor})
	return req.WithContext(ctx)
}

func TestEditHandler_ServeHTTP(t *testing.T) {
	fields := models.ProductFields{Name: "Cart v2", Description: "new", Price: 7.5, Stock: 0}

	tests := []struct {
		name         string
		id           string
		filename     string
		callsService bool
		mockErr      error
		wantStatus   int
	}{
		{name: "updated without image", id: "1", callsService: true, wantStatus: http.StatusSeeOther},
		{name: "updated with image", id: "1", filename: "new.gif", callsService: true, wantStatus: http.StatusSeeOther},
		{name: "foreign or missing product", id: "2", callsService: true, mockErr: common.ErrNotFoundOrForbidden, wantStatus: http.StatusNotFound},
		{name: "upload rejected", id: "1", filename: "new.gif", callsService: true, mockErr: common.ErrUpload, wantStatus: http.StatusBadRequest},
		{name: "storage failure", id: "1", callsService: true, mockErr: common.ErrPersistence, wantStatus: http.StatusInternalServerError},
		{name: "non numeric id", id: "abc", wantStatus: http.StatusBadRequest},
		{name: "zero id", id: "0", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ProductServiceMock)
			if tt.callsService {
				imgMatcher := mock.MatchedBy(func(img *services.Image) bool {
					if tt.filename == "" {
						return img == nil
					}
					return img != nil && img.Filename == tt.filename
				})
				svc.On("Update", mock.Anything, mock.AnythingOfType("int"), "vendor-a", fields, imgMatcher).
					Return(tt.mockErr).Once()
			}

			rec := httptest.NewRecorder()
			New(newNoopLogger(), svc, 1<<20).ServeHTTP(rec, newRequest(t, tt.id, tt.filename))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusSeeOther {
				assert.Equal(t, "/usuario_ambulante", rec.Header().Get("Location"))
			}
			svc.AssertExpectations(t)
			if !tt.callsService {
				svc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}
