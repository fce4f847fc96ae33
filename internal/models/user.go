// Package models содержит доменные модели маркетплейса: пользователей,
// их роли, товары и сессии. Структуры используются в бизнес-логике,
// хранилище и HTTP-слое.
package models

import (
	"fmt"

	"github.com/magabrotheeeer/ambuhub/internal/common"
)

// Role роль пользователя. Допустимы только значения из набора ниже.
type Role string

const (
	// RoleStandard может только просматривать товары.
	RoleStandard Role = "standard_user"
	// RoleVendor может создавать товары и управлять своими объявлениями.
	RoleVendor Role = "vendor_user"
)

// ParseRole превращает строку в Role или возвращает ошибку для неизвестного значения.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStandard, RoleVendor:
		return Role(s), nil
	default:
		return "", fmt.Errorf("models.ParseRole: %q: %w", s, common.ErrInvalidRole)
	}
}

// RoleFromVendorFlag возвращает RoleVendor, если в форме регистрации отмечен флажок продавца.
func RoleFromVendorFlag(flag string) Role {
	if flag == "on" || flag == "true" {
		return RoleVendor
	}
	return RoleStandard
}

func (r Role) String() string {
	return string(r)
}

// User представляет зарегистрированного пользователя.
type User struct {
	ID           string // UUID, генерируется базой данных
	Email        string // Уникальный email, используется для входа
	PasswordHash string // bcrypt-хэш пароля
	Role         Role
}
