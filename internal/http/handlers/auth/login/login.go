// Package login реализует HTTP-обработчик входа по email и паролю.
//
// При успехе создаётся сессия и клиент перенаправляется на страницу своей роли.
// Неизвестный email и неверный пароль дают одинаковый ответ 400.
package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/ambuhub/internal/common"
	"github.com/magabrotheeeer/ambuhub/internal/http/response"
	"github.com/magabrotheeeer/ambuhub/internal/lib/sl"
	"github.com/magabrotheeeer/ambuhub/internal/models"
)

const (
	// VendorHome страница продавца.
	VendorHome = "/usuario_ambulante"
	// StandardHome страница обычного пользователя.
	StandardHome = "/usuario_padrao"
)

// Request данные формы входа.
type Request struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// Service проверяет учётные данные.
type Service interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
}

// Sessions создаёт сессию после успешного входа.
type Sessions interface {
	Start(ctx context.Context, w http.ResponseWriter, userID string, role models.Role) (*models.Session, error)
}

// Handler обрабатывает POST /login.
type Handler struct {
	log      *slog.Logger
	service  Service
	sessions Sessions
}

// New создаёт Handler входа.
func New(log *slog.Logger, service Service, sessions Sessions) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		sessions: sessions,
	}
}

// HomeFor возвращает страницу, на которую попадает пользователь с ролью role.
func HomeFor(role models.Role) string {
	if role == models.RoleVendor {
		return VendorHome
	}
	return StandardHome
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := render.DecodeForm(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.Error(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.service.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, common.ErrInvalidCredentials) {
		log.Info("invalid credentials")
		response.Error(w, r, http.StatusBadRequest, "invalid email or password")
		return
	}
	if err != nil {
		log.Error("login failed", sl.Err(err))
		response.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	if _, err = h.sessions.Start(r.Context(), w, user.ID, user.Role); err != nil {
		log.Error("failed to start session", sl.Err(err))
		response.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	log.Info("login success", slog.String("user_id", user.ID), slog.String("role", string(user.Role)))
	response.Redirect(w, r, HomeFor(user.Role))
}
