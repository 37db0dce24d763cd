package client

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrNotAuthenticated is returned by the route guards when no usable session
// is present.
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrForbidden is returned by RequireAdmin for a valid non-admin session.
var ErrForbidden = errors.New("admin role required")

// SessionUser is the public account view held client-side.
type SessionUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Session holds the token and public user view between issuance and expiry.
// It replaces ambient global state with an explicit object that is loaded,
// saved and cleared through a file-backed store.
type Session struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}

// Valid reports whether the session carries an unexpired token. This is a
// local, non-authoritative check: the payload is decoded without the signing
// secret, purely to avoid sending requests that the server would reject.
func (s *Session) Valid() bool {
	return s != nil && s.Token != "" && tokenExpiry(s.Token).After(time.Now())
}

// IsAdmin reports whether the session is valid and carries the admin role.
func (s *Session) IsAdmin() bool {
	return s.Valid() && s.User.Role == "admin"
}

// RequireAuth is the route guard for authenticated views.
func (s *Session) RequireAuth() error {
	if !s.Valid() {
		return ErrNotAuthenticated
	}
	return nil
}

// RequireAdmin is the route guard for admin-only views. A valid session with
// the wrong role is a distinct outcome from a missing or expired one.
func (s *Session) RequireAdmin() error {
	if err := s.RequireAuth(); err != nil {
		return err
	}
	if s.User.Role != "admin" {
		return ErrForbidden
	}
	return nil
}

// tokenExpiry extracts the exp claim from a JWT without verifying the
// signature. Unparseable tokens report the zero time, i.e. expired.
func tokenExpiry(token string) time.Time {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return time.Time{}
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return time.Time{}
	}
	var claims struct {
		Exp int64 `json:"exp"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil || claims.Exp == 0 {
		return time.Time{}
	}
	return time.Unix(claims.Exp, 0)
}

// SessionStore persists a session to a file with owner-only permissions.
type SessionStore struct {
	path string
}

func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// Load reads the stored session. A missing file yields (nil, nil).
func (st *SessionStore) Load() (*Session, error) {
	b, err := os.ReadFile(st.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (st *SessionStore) Save(s *Session) error {
	if err := os.MkdirAll(filepath.Dir(st.path), 0o755); err != nil {
		return err
	}
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(st.path, b, 0o600)
}

// Clear removes the stored session. Clearing an absent session is a no-op.
func (st *SessionStore) Clear() error {
	err := os.Remove(st.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
