package ports

import (
	"context"

	"github.com/loknadh006/product-catalog/internal/core/domain"
)

// AuthRepository defines the interface for user account persistence.
// Email uniqueness is enforced at the store (unique index); Create returns
// domain.ErrEmailTaken on a duplicate.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
