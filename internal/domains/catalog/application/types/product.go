package types

import (
	"io"

	"github.com/shopspring/decimal"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/domain"
	"github.com/Rajeshrr07/EiliyaBill/internal/shared/projection"
)

// ProductProjection carries a product plus its persistence timestamps.
type ProductProjection = projection.Projection[*domain.Product]

// NewProductProjection wraps a product with persistence metadata.
func NewProductProjection(product *domain.Product, meta projection.Metadata) *ProductProjection {
	if product == nil {
		return nil
	}
	return projection.New(product, meta.CreatedAt, meta.UpdatedAt)
}

// ProductInput carries the mutable product fields. Nil fields are left untouched on update.
type ProductInput struct {
	Name        *string
	Price       *decimal.Decimal
	Stock       *int
	Status      *string
	Category    *string
	Cost        *decimal.Decimal
	Description *string
	Image       *string
}

// UploadImageInput streams a product image to the configured image store.
type UploadImageInput struct {
	OwnerID     string
	ProductID   string
	Filename    string
	ContentType string
	Body        io.Reader
}
