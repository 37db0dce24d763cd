package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/loknadh006/product-catalog/internal/api/middleware"
	"github.com/loknadh006/product-catalog/internal/core/domain"
	"github.com/loknadh006/product-catalog/internal/core/ports"
)

type stubProductService struct {
	listFn   func(ctx context.Context) ([]domain.Product, error)
	createFn func(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error)
	updateFn func(ctx context.Context, id string, input ports.UpdateProductInput) (*domain.Product, error)
	deleteFn func(ctx context.Context, id, actorID string) error
}

func (s *stubProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.listFn(ctx)
}

func (s *stubProductService) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	return s.createFn(ctx, input)
}

func (s *stubProductService) Update(ctx context.Context, id string, input ports.UpdateProductInput) (*domain.Product, error) {
	return s.updateFn(ctx, id, input)
}

func (s *stubProductService) Delete(ctx context.Context, id, actorID string) error {
	return s.deleteFn(ctx, id, actorID)
}

func TestProductHandler_List(t *testing.T) {
	stub := &stubProductService{
		listFn: func(ctx context.Context) ([]domain.Product, error) {
			return []domain.Product{{ID: "p1", Name: "Widget", Price: 9.99}}, nil
		},
	}
	h := NewProductHandler(stub)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	data, ok := resp["data"].([]any)
	if resp["success"] != true || !ok || len(data) != 1 {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
}

func TestProductHandler_Create_PassesActor(t *testing.T) {
	stub := &stubProductService{
		createFn: func(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
			if input.ActorID != "admin-1" {
				t.Fatalf("actor id not forwarded: %+v", input)
			}
			if input.Name != "Widget" || input.Image != "https://x.com/a.png" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Product{ID: "p1", Name: input.Name, Price: 9.99, Image: input.Image}, nil
		},
	}
	h := NewProductHandler(stub)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/products",
		strings.NewReader(`{"name":"Widget","price":9.99,"image":"https://x.com/a.png"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextUserID, "admin-1")
	c.Set(middleware.ContextRole, domain.RoleAdmin)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestProductHandler_Create_ValidationErrorPropagates(t *testing.T) {
	stub := &stubProductService{
		createFn: func(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
			return nil, domain.Validationf("product name must not be a URL")
		},
	}
	h := NewProductHandler(stub)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/products",
		strings.NewReader(`{"name":"https://evil.com","price":9.99,"image":"https://x.com/a.png"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestProductHandler_Update_PartialBody(t *testing.T) {
	stub := &stubProductService{
		updateFn: func(ctx context.Context, id string, input ports.UpdateProductInput) (*domain.Product, error) {
			if id != "p1" {
				t.Fatalf("unexpected id: %s", id)
			}
			if input.Name != nil || input.Price != nil {
				t.Fatalf("unsupplied fields should be nil: %+v", input)
			}
			if input.Image == nil || *input.Image != "https://new.com/b.png" {
				t.Fatalf("image not forwarded: %+v", input)
			}
			return &domain.Product{ID: id, Name: "Widget", Price: 9.99, Image: *input.Image}, nil
		},
	}
	h := NewProductHandler(stub)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/api/products/p1",
		strings.NewReader(`{"image":"https://new.com/b.png"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestProductHandler_Update_NotFoundPropagates(t *testing.T) {
	stub := &stubProductService{
		updateFn: func(ctx context.Context, id string, input ports.UpdateProductInput) (*domain.Product, error) {
			return nil, domain.ErrProductNotFound
		},
	}
	h := NewProductHandler(stub)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/api/products/bad-id",
		strings.NewReader(`{"price":5}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("bad-id")

	if err := h.Update(c); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductHandler_Delete_Success(t *testing.T) {
	stub := &stubProductService{
		deleteFn: func(ctx context.Context, id, actorID string) error {
			if id != "p1" || actorID != "admin-1" {
				t.Fatalf("unexpected args: %s %s", id, actorID)
			}
			return nil
		},
	}
	h := NewProductHandler(stub)

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/products/p1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("p1")
	c.Set(middleware.ContextUserID, "admin-1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true || resp["message"] != "Product deleted" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
}

func TestProductHandler_Delete_NotFoundPropagates(t *testing.T) {
	stub := &stubProductService{
		deleteFn: func(ctx context.Context, id, actorID string) error {
			return domain.ErrProductNotFound
		},
	}
	h := NewProductHandler(stub)

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/products/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := h.Delete(c); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}
