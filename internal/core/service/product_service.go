package service

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/loknadh006/product-catalog/internal/core/domain"
	"github.com/loknadh006/product-catalog/internal/core/ports"
	"github.com/loknadh006/product-catalog/internal/pkg/sanitize"
)

// ProductService implements catalog CRUD. Every write goes through the
// sanitizer; the same field rules apply on create and on update.
type ProductService struct {
	repo   ports.ProductRepository
	audit  ports.AuditSink
	logger zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, audit ports.AuditSink, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, audit: audit, logger: logger}
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

// Create validates all fields and inserts the product.
func (s *ProductService) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	if input.Name == "" || input.Price == nil || input.Image == "" {
		return nil, domain.Validationf("please provide all fields (name, price, image)")
	}

	name, err := validProductName(input.Name)
	if err != nil {
		return nil, err
	}
	price, err := validProductPrice(input.Price)
	if err != nil {
		return nil, err
	}
	image, err := validProductImage(input.Image)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Product{
		Name:      name,
		Price:     price,
		Image:     image,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("product insert failed")
		return nil, err
	}

	s.logger.Info().Str("product_id", created.ID).Str("name", created.Name).Msg("product created")
	s.record(domain.AuditCreate, created.ID, created.Name, input.ActorID)
	return created, nil
}

// Update applies a partial-field replace: only supplied fields change, each
// independently re-validated with the create rules. The id's shape is checked
// by the repository before any document is touched.
func (s *ProductService) Update(ctx context.Context, id string, input ports.UpdateProductInput) (*domain.Product, error) {
	if input.Name == nil && input.Price == nil && input.Image == nil {
		return nil, domain.Validationf("please provide at least one field to update")
	}

	var update ports.ProductUpdate
	if input.Name != nil {
		name, err := validProductName(*input.Name)
		if err != nil {
			return nil, err
		}
		update.Name = &name
	}
	if input.Price != nil {
		price, err := validProductPrice(input.Price)
		if err != nil {
			return nil, err
		}
		update.Price = &price
	}
	if input.Image != nil {
		image, err := validProductImage(*input.Image)
		if err != nil {
			return nil, err
		}
		update.Image = &image
	}

	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", updated.ID).Msg("product updated")
	s.record(domain.AuditUpdate, updated.ID, updated.Name, input.ActorID)
	return updated, nil
}

// Delete removes a product by id. An unresolvable id reports not-found, not
// a server error.
func (s *ProductService) Delete(ctx context.Context, id string, actorID string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("product_id", id).Msg("product deleted")
	s.record(domain.AuditDelete, id, "", actorID)
	return nil
}

func (s *ProductService) record(action domain.AuditAction, productID, productName, actorID string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(domain.AuditEntry{
		Action:      action,
		ProductID:   productID,
		ProductName: productName,
		ActorID:     actorID,
		At:          time.Now().UTC(),
	})
}

func validProductName(raw string) (string, error) {
	name := sanitize.String(raw)
	// Length limits count characters, not bytes.
	if utf8.RuneCountInString(name) < domain.ProductNameMin {
		return "", domain.Validationf("product name must be at least %d characters long", domain.ProductNameMin)
	}
	if utf8.RuneCountInString(name) > domain.ProductNameMax {
		return "", domain.Validationf("product name must not exceed %d characters", domain.ProductNameMax)
	}
	// Guards against pasting an image link into the name field.
	if sanitize.IsURL(name) {
		return "", domain.Validationf("product name must not be a URL")
	}
	return name, nil
}

func validProductPrice(raw any) (float64, error) {
	price, ok := sanitize.Number(raw)
	if !ok {
		return 0, domain.Validationf("price must be a valid number")
	}
	if price <= 0 {
		return 0, domain.Validationf("price must be greater than 0")
	}
	if price > domain.ProductPriceMax {
		return 0, domain.Validationf("price exceeds maximum allowed value")
	}
	return price, nil
}

func validProductImage(raw string) (string, error) {
	image := sanitize.URL(raw)
	if image == "" {
		return "", domain.Validationf("image must be a valid URL")
	}
	return image, nil
}
