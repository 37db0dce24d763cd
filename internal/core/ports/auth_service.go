package ports

import (
	"context"

	"github.com/loknadh006/product-catalog/internal/core/domain"
)

// RegisterInput carries the raw registration payload. Role is optional and
// falls back to "user" unless it is exactly a known role.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// AuthResult is returned on successful registration or login. User is the
// public view, never carrying the password hash.
type AuthResult struct {
	Token string
	User  *domain.User
}

// AuthService defines registration and login use cases.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}

// PasswordHasher is a one-way hash over plaintext passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenClaims is the identity decoded from a verified token.
type TokenClaims struct {
	UserID string
	Role   string
}

// TokenIssuer creates and validates signed, expiring identity tokens.
// Verify must not trust any claim before the signature checks out; expired,
// tampered or malformed tokens yield domain.ErrInvalidToken.
type TokenIssuer interface {
	Issue(userID, role string) (string, error)
	Verify(token string) (*TokenClaims, error)
}

// LoginLimiter throttles repeated login failures per account.
type LoginLimiter interface {
	// Allow reports whether another attempt for key is permitted and records it.
	Allow(ctx context.Context, key string) (bool, error)
	// Reset clears the counter after a successful login.
	Reset(ctx context.Context, key string) error
}
