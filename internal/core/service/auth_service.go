package service

import (
	"context"
	"errors"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/loknadh006/product-catalog/internal/core/domain"
	"github.com/loknadh006/product-catalog/internal/core/ports"
	"github.com/loknadh006/product-catalog/internal/pkg/sanitize"
)

var (
	emailPattern     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	uppercasePattern = regexp.MustCompile(`[A-Z]`)
	digitPattern     = regexp.MustCompile(`\d`)
)

// AuthService implements registration and login on top of the credential
// store, the password hasher and the token issuer.
type AuthService struct {
	repo    ports.AuthRepository
	hasher  ports.PasswordHasher
	tokens  ports.TokenIssuer
	limiter ports.LoginLimiter
	logger  zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, limiter ports.LoginLimiter, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, limiter: limiter, logger: logger}
}

// Register validates and sanitizes the payload, enforces password strength,
// persists the account and issues a token.
//
// The role is taken from the payload when it is exactly a known role and
// silently falls back to "user" otherwise. Anyone can therefore
// self-register as admin.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, domain.Validationf("all fields (name, email, password) are required")
	}

	name := sanitize.String(input.Name)
	email := sanitize.Email(input.Email)

	// Length limits count characters, not bytes.
	if utf8.RuneCountInString(name) < 2 {
		return nil, domain.Validationf("name must be at least 2 characters long")
	}
	if utf8.RuneCountInString(name) > 50 {
		return nil, domain.Validationf("name must not exceed 50 characters")
	}
	if !emailPattern.MatchString(email) {
		return nil, domain.Validationf("please provide a valid email address")
	}
	if err := checkPasswordStrength(input.Password); err != nil {
		return nil, err
	}

	role := domain.RoleUser
	if domain.ValidRole(input.Role) {
		role = input.Role
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("password hashing failed")
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(created.ID, created.Role)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	return &ports.AuthResult{Token: token, User: created.PublicView()}, nil
}

// Login authenticates by email and password. Unknown email and wrong password
// produce the same error so callers cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.Validationf("email and password are required")
	}

	email = sanitize.Email(email)
	if !emailPattern.MatchString(email) {
		return nil, domain.Validationf("please provide a valid email address")
	}

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, email)
		if err != nil {
			// Throttle store being down must not lock everyone out.
			s.logger.Warn().Err(err).Msg("login limiter unavailable")
		} else if !allowed {
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, email); err != nil {
			s.logger.Warn().Err(err).Msg("login limiter reset failed")
		}
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return &ports.AuthResult{Token: token, User: user.PublicView()}, nil
}

// checkPasswordStrength requires at least 6 characters, one uppercase letter
// and one digit.
func checkPasswordStrength(password string) error {
	if utf8.RuneCountInString(password) < 6 {
		return domain.Validationf("password must be at least 6 characters long")
	}
	if !uppercasePattern.MatchString(password) || !digitPattern.MatchString(password) {
		return domain.Validationf("password must contain at least one uppercase letter and one number")
	}
	return nil
}
