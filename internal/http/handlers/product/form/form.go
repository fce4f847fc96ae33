// Package form разбирает multipart-форму товара, общую для создания и редактирования.
package form

import (
	"errors"
	"fmt"
	"math"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/ambuhub/internal/http/response"
	"github.com/magabrotheeeer/ambuhub/internal/models"
	services "github.com/magabrotheeeer/ambuhub/internal/services/product"
)

// ErrInvalidForm форма не разобрана или поля не прошли проверку.
var ErrInvalidForm = errors.New("invalid product form")

// Product разобранная форма товара. Close освобождает загруженный файл.
type Product struct {
	Fields models.ProductFields
	Image  *services.Image

	file multipart.File
}

// Close закрывает файл изображения, если он был.
func (p *Product) Close() {
	if p.file != nil {
		_ = p.file.Close()
	}
}

// Parse читает поля name, description, price, stock и необязательный файл image.
// Тело запроса ограничено maxBytes.
func Parse(w http.ResponseWriter, r *http.Request, validate *validator.Validate, maxBytes int64) (*Product, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue("price")), 64)
	// ParseFloat принимает Inf и NaN, которые нельзя отдать в JSON
	if err != nil || math.IsInf(price, 0) || math.IsNaN(price) {
		return nil, fmt.Errorf("%w: field price must be a number", ErrInvalidForm)
	}
	stock, err := strconv.ParseInt(strings.TrimSpace(r.FormValue("stock")), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: field stock must be an integer", ErrInvalidForm)
	}

	p := &Product{
		Fields: models.ProductFields{
			Name:        strings.TrimSpace(r.FormValue("name")),
			Description: strings.TrimSpace(r.FormValue("description")),
			Price:       price,
			Stock:       int(stock),
		},
	}
	if err = validate.Struct(p.Fields); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidForm, response.ValidationError(verrs))
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}

	file, header, err := r.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return p, nil
	case err != nil:
		return nil, fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}
	// пустое поле файла в браузерной форме приходит без имени
	if header.Filename == "" && header.Size == 0 {
		_ = file.Close()
		return p, nil
	}

	p.file = file
	p.Image = &services.Image{Filename: header.Filename, Body: file}
	return p, nil
}

// Message текст ошибки формы без служебного префикса.
func Message(err error) string {
	return strings.TrimPrefix(err.Error(), ErrInvalidForm.Error()+": ")
}
