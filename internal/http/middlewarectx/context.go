package middlewarectx

import (
	"context"

	"github.com/magabrotheeeer/ambuhub/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// SessionKey ключ сессии пользователя в контексте.
const SessionKey Key = "session"

// WithSession кладёт сессию в контекст запроса.
func WithSession(ctx context.Context, s *models.Session) context.Context {
	return context.WithValue(ctx, SessionKey, s)
}

// SessionFromContext возвращает сессию, положенную RequireAuthenticated.
func SessionFromContext(ctx context.Context) (*models.Session, bool) {
	s, ok := ctx.Value(SessionKey).(*models.Session)
	return s, ok && s != nil
}
