// Package vendorlist отдаёт товары текущего продавца.
package vendorlist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/ambuhub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/ambuhub/internal/http/response"
	"github.com/magabrotheeeer/ambuhub/internal/lib/sl"
	"github.com/magabrotheeeer/ambuhub/internal/models"
)

// Service возвращает товары владельца.
type Service interface {
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Product, error)
}

// Handler обрабатывает GET /usuario_ambulante.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создаёт Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.vendorlist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	s, ok := middlewarectx.SessionFromContext(r.Context())
	if !ok {
		log.Error("session missing in context")
		response.Redirect(w, r, middlewarectx.LoginPath)
		return
	}

	products, err := h.service.ListByOwner(r.Context(), s.UserID)
	if err != nil {
		log.Error("failed to list products", sl.Err(err))
		response.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	render.JSON(w, r, response.StatusOKWithData(products))
}
