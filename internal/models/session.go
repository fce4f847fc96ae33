package models

// Session данные, которые сервер хранит по токену из cookie.
type Session struct {
	Token  string `json:"-"`
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
}
