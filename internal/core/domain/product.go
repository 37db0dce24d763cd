package domain

import "time"

// Product is a single catalog entry. Any admin may mutate any product; there
// is no per-admin ownership.
type Product struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Price     float64   `json:"price" bson:"price"`
	Image     string    `json:"image" bson:"image"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Product validation bounds, applied identically on create and update.
const (
	ProductNameMin  = 3
	ProductNameMax  = 100
	ProductPriceMax = 1_000_000
)

// AuditAction identifies a product mutation recorded in the audit trail.
type AuditAction string

const (
	AuditCreate AuditAction = "create"
	AuditUpdate AuditAction = "update"
	AuditDelete AuditAction = "delete"
)

// AuditEntry records a single product mutation performed by an admin.
type AuditEntry struct {
	Action      AuditAction `json:"action" bson:"action"`
	ProductID   string      `json:"product_id" bson:"product_id"`
	ProductName string      `json:"product_name,omitempty" bson:"product_name,omitempty"`
	ActorID     string      `json:"actor_id" bson:"actor_id"`
	At          time.Time   `json:"at" bson:"at"`
}
