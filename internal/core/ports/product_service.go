package ports

import (
	"context"

	"github.com/loknadh006/product-catalog/internal/core/domain"
)

// CreateProductInput carries the raw create payload. Price stays untyped so
// the sanitizer can distinguish "not a number" from a literal zero.
type CreateProductInput struct {
	Name  string
	Price any
	Image string
	// ActorID identifies the admin performing the write, for the audit trail.
	ActorID string
}

// UpdateProductInput carries the raw partial-update payload. Nil fields were
// not supplied; at least one must be.
type UpdateProductInput struct {
	Name    *string
	Price   any
	Image   *string
	ActorID string
}

// ProductService defines catalog use cases. List is public; the mutating
// operations run behind the admin gate.
type ProductService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, input UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string, actorID string) error
}
