package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/loknadh006/product-catalog/internal/core/domain"
	"github.com/loknadh006/product-catalog/internal/core/ports"
)

// AuditTrail persists product mutation records. It runs behind the queue
// dispatcher, off the request path.
type AuditTrail struct {
	repo   ports.AuditRepository
	logger zerolog.Logger
}

func NewAuditTrail(repo ports.AuditRepository, logger zerolog.Logger) *AuditTrail {
	return &AuditTrail{repo: repo, logger: logger}
}

func (a *AuditTrail) Record(ctx context.Context, entry domain.AuditEntry) error {
	if entry.Action == "" || entry.ProductID == "" {
		return fmt.Errorf("audit entry missing action or product id")
	}
	if err := a.repo.Insert(ctx, &entry); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	a.logger.Debug().
		Str("action", string(entry.Action)).
		Str("product_id", entry.ProductID).
		Msg("audit entry recorded")
	return nil
}
