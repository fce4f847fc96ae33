// Package signup реализует HTTP-обработчик регистрации пользователей.
//
// Форма содержит email, password и флажок advertiser: отмеченный флажок
// регистрирует продавца, иначе создаётся обычный пользователь.
// После успешной регистрации клиент перенаправляется на страницу входа.
package signup

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/ambuhub/internal/common"
	"github.com/magabrotheeeer/ambuhub/internal/http/response"
	"github.com/magabrotheeeer/ambuhub/internal/lib/sl"
	"github.com/magabrotheeeer/ambuhub/internal/models"
)

// Request данные формы регистрации.
type Request struct {
	Email      string `form:"email" validate:"required,email"`
	Password   string `form:"password" validate:"required,max=72"`
	Advertiser string `form:"advertiser"`
}

// Service создаёт учётную запись.
type Service interface {
	Signup(ctx context.Context, email, rawPassword string, role models.Role) (*models.User, error)
}

// Handler обрабатывает POST /signup.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создаёт Handler регистрации.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.signup"

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

	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			response.Error(w, r, http.StatusBadRequest, response.ValidationError(verrs))
			return
		}
		response.Error(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.service.Signup(r.Context(), req.Email, req.Password, models.RoleFromVendorFlag(req.Advertiser))
	if errors.Is(err, common.ErrPasswordTooLong) {
		log.Info("password too long")
		response.Error(w, r, http.StatusBadRequest, "field Password must be at most 72 bytes")
		return
	}
	if errors.Is(err, common.ErrDuplicateEmail) {
		log.Info("email already registered")
		response.Error(w, r, http.StatusConflict, "email already registered")
		return
	}
	if err != nil {
		log.Error("failed to create user", sl.Err(err))
		response.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	log.Info("user registered", slog.String("user_id", user.ID), slog.String("role", string(user.Role)))
	response.Redirect(w, r, "/login")
}
