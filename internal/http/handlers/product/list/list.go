// Package list отдаёт все товары для страницы обычного пользователя.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/ambuhub/internal/http/response"
	"github.com/magabrotheeeer/ambuhub/internal/lib/sl"
	"github.com/magabrotheeeer/ambuhub/internal/models"
)

// Service возвращает все товары.
type Service interface {
	ListAll(ctx context.Context) ([]*models.Product, error)
}

// Handler обрабатывает GET /usuario_padrao.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создаёт Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	products, err := h.service.ListAll(r.Context())
	if err != nil {
		log.Error("failed to list products", sl.Err(err))
		response.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	log.Debug("products listed", slog.Int("count", len(products)))
	render.JSON(w, r, response.StatusOKWithData(products))
}
