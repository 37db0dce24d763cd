// Package client is a Go client for the product catalog API. It keeps the
// issued token and public user view in an explicit Session with a load/save/
// clear lifecycle, and mirrors the server's token expiry check locally so UI
// routes can be gated before a request is ever sent. The server remains
// authoritative: a rejected or expired token clears the session.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client talks to the catalog API.
type Client struct {
	baseURL string
	http    *http.Client
	store   *SessionStore
	session *Session
}

// New builds a Client rooted at baseURL, restoring any previously saved
// session from the store.
func New(baseURL string, store *SessionStore) (*Client, error) {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		store:   store,
	}
	if store != nil {
		s, err := store.Load()
		if err != nil {
			return nil, fmt.Errorf("load session: %w", err)
		}
		if s.Valid() {
			c.session = s
		} else if s != nil {
			// Stale token on disk, drop it.
			_ = store.Clear()
		}
	}
	return c, nil
}

// Session returns the current session, nil when logged out.
func (c *Client) Session() *Session { return c.session }

// Product mirrors the server's catalog entry.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type authPayload struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    SessionUser `json:"user"`
}

type productPayload struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    *Product `json:"data"`
}

type productListPayload struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Data    []Product `json:"data"`
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// Register creates an account and persists the resulting session.
func (c *Client) Register(ctx context.Context, name, email, password, role string) (*Session, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	if role != "" {
		body["role"] = role
	}
	var out authPayload
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, false, &out); err != nil {
		return nil, err
	}
	return c.adoptSession(out)
}

// Login authenticates and persists the resulting session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var out authPayload
	err := c.do(ctx, http.MethodPost, "/api/auth/login",
		map[string]string{"email": email, "password": password}, false, &out)
	if err != nil {
		return nil, err
	}
	return c.adoptSession(out)
}

// Logout clears the session locally. Tokens are stateless server-side, so
// there is nothing to revoke.
func (c *Client) Logout() error {
	c.session = nil
	if c.store != nil {
		return c.store.Clear()
	}
	return nil
}

// ListProducts fetches the public catalog.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var out productListPayload
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, false, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// CreateProduct creates a catalog entry. Admin session required.
func (c *Client) CreateProduct(ctx context.Context, name string, price float64, image string) (*Product, error) {
	if err := c.session.RequireAdmin(); err != nil {
		return nil, err
	}
	var out productPayload
	err := c.do(ctx, http.MethodPost, "/api/products",
		map[string]any{"name": name, "price": price, "image": image}, true, &out)
	if err != nil {
		return nil, err
	}
	return out.Data, nil
}

// UpdateProduct applies a partial update; nil fields are left unchanged.
func (c *Client) UpdateProduct(ctx context.Context, id string, name *string, price *float64, image *string) (*Product, error) {
	if err := c.session.RequireAdmin(); err != nil {
		return nil, err
	}
	body := map[string]any{}
	if name != nil {
		body["name"] = *name
	}
	if price != nil {
		body["price"] = *price
	}
	if image != nil {
		body["image"] = *image
	}
	var out productPayload
	if err := c.do(ctx, http.MethodPut, "/api/products/"+id, body, true, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// DeleteProduct removes a catalog entry by id.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	if err := c.session.RequireAdmin(); err != nil {
		return err
	}
	var out productPayload
	return c.do(ctx, http.MethodDelete, "/api/products/"+id, nil, true, &out)
}

func (c *Client) adoptSession(out authPayload) (*Session, error) {
	s := &Session{Token: out.Token, User: out.User}
	c.session = s
	if c.store != nil {
		if err := c.store.Save(s); err != nil {
			return nil, fmt.Errorf("save session: %w", err)
		}
	}
	return s, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, authed bool, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		if !c.session.Valid() {
			return ErrNotAuthenticated
		}
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var envelope struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	raw := json.NewDecoder(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = raw.Decode(&envelope)
		if resp.StatusCode == http.StatusUnauthorized && authed {
			// Server rejected the token; the session is no longer usable.
			_ = c.Logout()
		}
		return &APIError{StatusCode: resp.StatusCode, Message: envelope.Message}
	}
	if out != nil {
		if err := raw.Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
