package ports

import (
	"context"

	"deliveryhub/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Product is the catalog snapshot the checkout flow captures into line
// items. The catalog itself belongs to a collaborator service.
type Product struct {
	ID    kernel.UUID
	Name  string
	Price decimal.Decimal
}

// CatalogService resolves product snapshots at checkout time.
type CatalogService interface {
	// GetProducts retrieves the products with the given identifiers.
	// Returns an object-not-found error when any identifier is unknown.
	GetProducts(ctx context.Context, ids []kernel.UUID) ([]Product, error)
}
