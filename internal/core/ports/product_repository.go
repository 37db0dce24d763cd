package ports

import (
	"context"

	"github.com/loknadh006/product-catalog/internal/core/domain"
)

// ProductUpdate holds the fields of a partial update. Nil means "leave
// unchanged"; only set fields are written to the store.
type ProductUpdate struct {
	Name  *string
	Price *float64
	Image *string
}

// ProductRepository defines catalog persistence. Lookups by an id that does
// not resolve to a stored document return domain.ErrProductNotFound.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id string, update ProductUpdate) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
