package ports

import (
	"context"

	"github.com/loknadh006/product-catalog/internal/core/domain"
)

// AuditRepository persists audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
}

// AuditService processes a single audit entry. Failures are logged by the
// dispatcher and never surfaced to the request that produced the entry.
type AuditService interface {
	Record(ctx context.Context, entry domain.AuditEntry) error
}

// AuditSink accepts audit entries for asynchronous processing. The product
// service enqueues through this interface so it never blocks on the store.
type AuditSink interface {
	Enqueue(entry domain.AuditEntry)
}
