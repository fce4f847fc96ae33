// Package remove реализует HTTP-обработчик удаления товара его владельцем.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/ambuhub/internal/common"
	"github.com/magabrotheeeer/ambuhub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/ambuhub/internal/http/response"
	"github.com/magabrotheeeer/ambuhub/internal/lib/sl"
)

// Service удаляет товар.
type Service interface {
	Delete(ctx context.Context, productID int, ownerID string) error
}

// Handler обрабатывает POST /delete-product/{id}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создаёт Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.remove"

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

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		log.Info("invalid product id", slog.String("id", chi.URLParam(r, "id")))
		response.Error(w, r, http.StatusBadRequest, "invalid product id")
		return
	}

	err = h.service.Delete(r.Context(), id, s.UserID)
	if errors.Is(err, common.ErrNotFoundOrForbidden) {
		log.Info("product not found or not owned", slog.Int("id", id))
		response.Error(w, r, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		log.Error("failed to delete product", sl.Err(err))
		response.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	log.Info("product deleted", slog.Int("id", id))
	response.Redirect(w, r, "/usuario_ambulante")
}
