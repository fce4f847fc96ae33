package models

import "time"

// Product объявление продавца.
type Product struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	ImageURL    string    `json:"image_url,omitempty"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductFields изменяемые поля товара, приходят из формы создания и редактирования.
type ProductFields struct {
	Name        string  `validate:"required,max=200"`
	Description string  `validate:"required,max=2000"`
	Price       float64 `validate:"gte=0,lte=1000000000"`
	Stock       int     `validate:"gte=0,lte=2147483647"`
}
