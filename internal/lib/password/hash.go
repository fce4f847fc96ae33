// Package password реализует хеширование и проверку паролей на bcrypt.
//
// Hasher хранит стоимость хеширования, которая берётся из конфига.
// Соль генерируется bcrypt заново при каждом вызове Hash.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/magabrotheeeer/ambuhub/internal/common"
)

// DefaultCost стоимость по умолчанию, 10 раундов.
const DefaultCost = 10

// Hasher создаёт и проверяет bcrypt-хэши с заданной стоимостью.
type Hasher struct {
	cost int
}

// NewHasher возвращает Hasher. Стоимость вне диапазона bcrypt заменяется на bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Cost возвращает используемую стоимость.
func (h *Hasher) Cost() int {
	return h.cost
}

// MaxBytes предел длины пароля для bcrypt.
const MaxBytes = 72

// Hash принимает пароль пользователя и возвращает его bcrypt‑хэш.
// Пароль длиннее MaxBytes байт даёт common.ErrPasswordTooLong.
func (h *Hasher) Hash(plaintext string) (string, error) {
	const op = "password.Hash"
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%s: %w", op, common.ErrPasswordTooLong)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// Verify сообщает, соответствует ли пароль хэшу.
// Сравнение выполняет bcrypt за постоянное время.
func (h *Hasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
