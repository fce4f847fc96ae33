// Package session реализует серверные сессии: непрозрачный токен в cookie
// и данные {userID, role} в хранилище ключ-значение (Redis).
package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/ambuhub/internal/common"
	"github.com/magabrotheeeer/ambuhub/internal/config"
	"github.com/magabrotheeeer/ambuhub/internal/models"
)

const keyPrefix = "session:"

// Store хранилище данных сессии с TTL.
type Store interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Manager выдаёт, читает и уничтожает сессии.
type Manager struct {
	store        Store
	cookieName   string
	cookieSecure bool
	ttl          time.Duration
}

// NewManager создаёт Manager с настройками cookie из конфига.
func NewManager(store Store, cfg config.Session) *Manager {
	return &Manager{
		store:        store,
		cookieName:   cfg.CookieName,
		cookieSecure: cfg.CookieSecure,
		ttl:          cfg.TTL,
	}
}

// CookieName имя cookie с токеном сессии.
func (m *Manager) CookieName() string {
	return m.cookieName
}

// Start создаёт сессию для пользователя, сохраняет её и устанавливает cookie.
func (m *Manager) Start(ctx context.Context, w http.ResponseWriter, userID string, role models.Role) (*models.Session, error) {
	const op = "session.Start"

	s := &models.Session{
		Token:  uuid.NewString(),
		UserID: userID,
		Role:   role,
	}
	if err := m.store.Set(ctx, keyPrefix+s.Token, s, m.ttl); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	http.SetCookie(w, m.cookie(s.Token, int(m.ttl.Seconds())))
	return s, nil
}

// Read возвращает сессию по токену или common.ErrSessionAbsent.
func (m *Manager) Read(ctx context.Context, token string) (*models.Session, error) {
	const op = "session.Read"

	if _, err := uuid.Parse(token); err != nil {
		return nil, fmt.Errorf("%s: %w", op, common.ErrSessionAbsent)
	}

	var s models.Session
	found, err := m.store.Get(ctx, keyPrefix+token, &s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !found || s.UserID == "" {
		return nil, fmt.Errorf("%s: %w", op, common.ErrSessionAbsent)
	}
	if _, err = models.ParseRole(string(s.Role)); err != nil {
		return nil, fmt.Errorf("%s: %w", op, common.ErrSessionAbsent)
	}
	s.Token = token
	return &s, nil
}

// FromRequest читает сессию по cookie запроса.
func (m *Manager) FromRequest(r *http.Request) (*models.Session, error) {
	c, err := r.Cookie(m.cookieName)
	if err != nil {
		return nil, fmt.Errorf("session.FromRequest: %w", common.ErrSessionAbsent)
	}
	return m.Read(r.Context(), c.Value)
}

// Destroy удаляет сессию и просит клиента удалить cookie.
// Повторный вызов для того же токена не является ошибкой.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, token string) error {
	const op = "session.Destroy"

	http.SetCookie(w, m.cookie("", -1))
	if token == "" {
		return nil
	}
	if err := m.store.Invalidate(ctx, keyPrefix+token); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
