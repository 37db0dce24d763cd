package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/loknadh006/product-catalog/internal/core/domain"
	"github.com/loknadh006/product-catalog/internal/core/ports"
)

type stubAuthRepo struct {
	users  map[string]*domain.User
	nextID int
	// failWith, when set, is returned by every call to simulate a store outage.
	failWith error
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrEmailTaken
	}
	copy := cloneUser(user)
	r.nextID++
	copy.ID = string(rune('a' + r.nextID))
	r.users[copy.Email] = cloneUser(copy)
	return copy, nil
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	if u, ok := r.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

type stubLimiter struct {
	allowed bool
	resets  int
}

func (l *stubLimiter) Allow(_ context.Context, _ string) (bool, error) { return l.allowed, nil }
func (l *stubLimiter) Reset(_ context.Context, _ string) error {
	l.resets++
	return nil
}

func newTestAuthService(repo ports.AuthRepository, limiter ports.LoginLimiter) *AuthService {
	return NewAuthService(repo, NewBcryptHasher(4), NewTokenManager("secret", time.Hour), limiter, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo, nil)

	res, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Alice", Email: "Alice@Example.com", Password: "Secret1",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected token")
	}
	if res.User.Email != "alice@example.com" {
		t.Fatalf("expected lowercased email, got %q", res.User.Email)
	}
	if res.User.Role != domain.RoleUser {
		t.Fatalf("expected default role user, got %q", res.User.Role)
	}
	if res.User.PasswordHash != "" {
		t.Fatalf("public view leaked password hash")
	}
	stored := repo.users["alice@example.com"]
	if stored == nil || stored.PasswordHash == "" || stored.PasswordHash == "Secret1" {
		t.Fatalf("password not hashed in store: %+v", stored)
	}
}

func TestAuthService_Register_RoleHandling(t *testing.T) {
	cases := []struct {
		role string
		want string
	}{
		{"", domain.RoleUser},
		{"user", domain.RoleUser},
		{"admin", domain.RoleAdmin},
		{"superuser", domain.RoleUser}, // unknown role silently falls back
	}
	for i, tc := range cases {
		repo := newStubAuthRepo()
		svc := newTestAuthService(repo, nil)
		res, err := svc.Register(context.Background(), ports.RegisterInput{
			Name: "Bob", Email: "bob@example.com", Password: "Secret1", Role: tc.role,
		})
		if err != nil {
			t.Fatalf("case %d: register failed: %v", i, err)
		}
		if res.User.Role != tc.want {
			t.Fatalf("case %d: role %q → %q, want %q", i, tc.role, res.User.Role, tc.want)
		}
	}
}

func TestAuthService_Register_MultibyteName(t *testing.T) {
	svc := newTestAuthService(newStubAuthRepo(), nil)

	name := strings.Repeat("é", 50)
	res, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: name, Email: "eva@example.com", Password: "Secret1",
	})
	if err != nil {
		t.Fatalf("50-character name rejected: %v", err)
	}
	if res.User.Name != name {
		t.Fatalf("name altered: %q", res.User.Name)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newTestAuthService(newStubAuthRepo(), nil)

	cases := []ports.RegisterInput{
		{Name: "", Email: "a@b.com", Password: "Secret1"},
		{Name: "A", Email: "a@b.com", Password: "Secret1"},       // name too short after trim
		{Name: "Alice", Email: "not-an-email", Password: "Secret1"},
		{Name: "Alice", Email: "a@b.com", Password: "Sh0rt"},     // under 6 chars
		{Name: "Alice", Email: "a@b.com", Password: "secret1"},   // no uppercase
		{Name: "Alice", Email: "a@b.com", Password: "Secretx"},   // no digit
	}
	for i, in := range cases {
		if _, err := svc.Register(context.Background(), in); !domain.IsValidation(err) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo, nil)

	in := ports.RegisterInput{Name: "Alice", Email: "a@b.com", Password: "Secret1"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubAuthRepo()
	limiter := &stubLimiter{allowed: true}
	svc := newTestAuthService(repo, limiter)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Carol", Email: "carol@example.com", Password: "S3cret", Role: "admin",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	res, err := svc.Login(context.Background(), "Carol@Example.com", "S3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.Token == "" || res.User.Role != domain.RoleAdmin {
		t.Fatalf("unexpected result: %+v", res)
	}
	if limiter.resets != 1 {
		t.Fatalf("expected limiter reset after successful login")
	}
}

func TestAuthService_Login_IndistinguishableFailures(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo, nil)

	_, _ = svc.Register(context.Background(), ports.RegisterInput{
		Name: "Dave", Email: "dave@example.com", Password: "G00dpass",
	})

	_, wrongPass := svc.Login(context.Background(), "dave@example.com", "Badpass1")
	_, unknown := svc.Login(context.Background(), "ghost@example.com", "G00dpass")

	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPass)
	}
	if !errors.Is(unknown, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknown)
	}
	if wrongPass.Error() != unknown.Error() {
		t.Fatalf("failure messages differ: %q vs %q", wrongPass, unknown)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo, &stubLimiter{allowed: false})

	if _, err := svc.Login(context.Background(), "dave@example.com", "G00dpass"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Login_MissingInput(t *testing.T) {
	svc := newTestAuthService(newStubAuthRepo(), nil)

	if _, err := svc.Login(context.Background(), "", "pass"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "a@b.com", ""); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuthService_Register_StoreFailure(t *testing.T) {
	repo := newStubAuthRepo()
	repo.failWith = errors.New("connection reset")
	svc := newTestAuthService(repo, nil)

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Alice", Email: "a@b.com", Password: "Secret1",
	})
	if err == nil || domain.IsValidation(err) {
		t.Fatalf("expected internal error, got %v", err)
	}
}
