// Package productrepo resolves catalog product snapshots for checkout.
// Product rows are owned by the catalog collaborator; this service only
// reads them.
package productrepo

import (
	"context"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/ports"
	"deliveryhub/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductDTO represents the database structure of catalog product rows.
type ProductDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string
	Price decimal.Decimal `gorm:"type:numeric(12,2)"`
}

func (ProductDTO) TableName() string {
	return "products"
}

// GormCatalogService implements CatalogService over the shared database.
type GormCatalogService struct {
	db *gorm.DB
}

// NewGormCatalogService creates a new GORM catalog service.
func NewGormCatalogService(db *gorm.DB) *GormCatalogService {
	return &GormCatalogService{db: db}
}

// GetProducts retrieves the products with the given identifiers.
// Returns an object-not-found error naming the first missing identifier.
func (s *GormCatalogService) GetProducts(ctx context.Context, ids []kernel.UUID) ([]ports.Product, error) {
	if len(ids) == 0 {
		return []ports.Product{}, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []ProductDTO
	if err := s.db.WithContext(ctx).Find(&dtos, "id IN ?", raw).Error; err != nil {
		return nil, err
	}

	found := make(map[kernel.UUID]ports.Product, len(dtos))
	products := make([]ports.Product, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}

		product := ports.Product{
			ID:    id,
			Name:  dto.Name,
			Price: dto.Price,
		}
		found[id] = product
		products = append(products, product)
	}

	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return nil, errs.NewObjectNotFoundError("product", id.String())
		}
	}

	return products, nil
}
