package vendorlist

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/ambuhub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/ambuhub/internal/models"
)

type ProductServiceMock struct {
	mock.Mock
}

func (m *ProductServiceMock) ListByOwner(ctx context.Context, ownerID string) ([]*models.Product, error) {
	args := m.Called(ctx, ownerID)
	p, _ := args.Get(0).([]*models.Product)
	return p, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestVendorListHandler_ServeHTTP(t *testing.T) {
	t.Run("own products of session user", func(t *testing.T) {
		svc := new(ProductServiceMock)
		svc.On("ListByOwner", mock.Anything, "vendor-a").Return([]*models.Product{
			{ID: 1, Name: "Cart", OwnerID: "vendor-a"},
		}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/usuario_ambulante", nil)
		req = req.WithContext(middlewarectx.WithSession(req.Context(), &models.Session{UserID: "vendor-a", Role: models.RoleVendor}))
		rec := httptest.NewRecorder()

		New(newNoopLogger(), svc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var got struct {
			Data []models.Product `json:"data"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		require.Len(t, got.Data, 1)
		assert.Equal(t, "vendor-a", got.Data[0].OwnerID)
		svc.AssertExpectations(t)
	})

	t.Run("no session", func(t *testing.T) {
		svc := new(ProductServiceMock)
		rec := httptest.NewRecorder()

		New(newNoopLogger(), svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/usuario_ambulante", nil))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		svc.AssertNotCalled(t, "ListByOwner", mock.Anything, mock.Anything)
	})
}
