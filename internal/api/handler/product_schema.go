package handler

import "github.com/loknadh006/product-catalog/internal/core/domain"

// Price is accepted as any JSON value so the sanitizer can distinguish "not a
// number" from a legitimate zero; the service performs the coercion.

type createProductRequest struct {
	Name  string `json:"name"  validate:"required"`
	Price any    `json:"price" validate:"required"`
	Image string `json:"image" validate:"required"`
}

type updateProductRequest struct {
	Name  *string `json:"name"`
	Price any     `json:"price"`
	Image *string `json:"image"`
}

type productResponse struct {
	Success bool            `json:"success"`
	Data    *domain.Product `json:"data"`
}

type productListResponse struct {
	Success bool             `json:"success"`
	Data    []domain.Product `json:"data"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
