package mapper

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	catalogapp "github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/application"
	catalogtypes "github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/application/types"
	catalogports "github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/ports"
	apierrors "github.com/Rajeshrr07/EiliyaBill/internal/shared/errors"
)

// ProductRequest is the create/update payload. Omitted fields are not changed on update.
type ProductRequest struct {
	Name        *string          `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	Status      *string          `json:"status"`
	Category    *string          `json:"category"`
	Cost        *decimal.Decimal `json:"cost"`
	Description *string          `json:"description"`
	Image       *string          `json:"image"`
}

// Product is the row shape the UI renders.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Status      string    `json:"status"`
	Category    string    `json:"category"`
	Cost        float64   `json:"cost"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToProductInput(req ProductRequest) catalogtypes.ProductInput {
	return catalogtypes.ProductInput{
		Name:        req.Name,
		Price:       req.Price,
		Stock:       req.Stock,
		Status:      req.Status,
		Category:    req.Category,
		Cost:        req.Cost,
		Description: req.Description,
		Image:       req.Image,
	}
}

func FromProjection(p *catalogtypes.ProductProjection) Product {
	if p == nil || p.Entity == nil {
		return Product{}
	}
	e := p.Entity
	return Product{
		ID:          e.ID,
		Name:        e.Name,
		Price:       e.Price.InexactFloat64(),
		Stock:       e.Stock,
		Status:      string(e.Status),
		Category:    e.Category,
		Cost:        e.Cost.InexactFloat64(),
		Description: e.Description,
		Image:       e.ImageURL,
		UserID:      e.OwnerID,
		CreatedAt:   p.Metadata.CreatedAt,
		UpdatedAt:   p.Metadata.UpdatedAt,
	}
}

func FromProjections(list []*catalogtypes.ProductProjection) []Product {
	result := make([]Product, 0, len(list))
	for _, p := range list {
		result = append(result, FromProjection(p))
	}
	return result
}

// ProblemFor maps catalog errors onto problem details.
func ProblemFor(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, catalogapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(apierrors.RootMessage(err)), true
	case errors.Is(err, catalogapp.ErrForbidden):
		return apierrors.ErrForbidden.WithDetail("You are not allowed to modify this product"), true
	case errors.Is(err, catalogports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail("Product not found"), true
	case errors.Is(err, catalogapp.ErrImageStorageDisabled):
		return apierrors.ErrUnprocessable.WithDetail("Image storage is not configured"), true
	}
	return apierrors.ProblemDetail{}, false
}
