package sources

import (
	"context"
	"errors"

	catalogports "github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/ports"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/reporting/ports"
)

var _ ports.CategoryLookup = (*CatalogCategories)(nil)

// CatalogCategories resolves product categories from the owner's catalog.
type CatalogCategories struct {
	repo catalogports.Repository
}

func NewCatalogCategories(repo catalogports.Repository) *CatalogCategories {
	return &CatalogCategories{repo: repo}
}

func (c *CatalogCategories) ProductCategories(ctx context.Context, ownerID string) (map[string]string, error) {
	if c == nil || c.repo == nil {
		return nil, errors.New("catalog category lookup not configured")
	}
	products, err := c.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	categories := make(map[string]string, len(products))
	for _, p := range products {
		if p == nil || p.Entity == nil {
			continue
		}
		categories[p.Entity.ID] = p.Entity.Category
	}
	return categories, nil
}
