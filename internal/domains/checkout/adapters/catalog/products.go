// Package catalog resolves cart products from the owner's catalog.
package catalog

import (
	"context"
	"errors"

	catalogapp "github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/application"
	catalogdomain "github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/domain"
	catalogports "github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/ports"
	checkoutapp "github.com/Rajeshrr07/EiliyaBill/internal/domains/checkout/application"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/checkout/domain"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/checkout/ports"
)

type Products struct {
	catalog catalogports.Service
}

func NewProducts(catalog catalogports.Service) *Products {
	return &Products{catalog: catalog}
}

// Product copies the current name and price. Products of other owners look missing.
func (p *Products) Product(ctx context.Context, ownerID, productID string) (domain.ProductSnapshot, error) {
	found, err := p.catalog.Get(ctx, ownerID, productID)
	switch {
	case errors.Is(err, catalogports.ErrNotFound), errors.Is(err, catalogapp.ErrForbidden):
		return domain.ProductSnapshot{}, ports.ErrProductNotFound
	case err != nil:
		return domain.ProductSnapshot{}, err
	}
	product := found.Entity
	if product.Status == catalogdomain.StatusInactive {
		return domain.ProductSnapshot{}, checkoutapp.ErrProductUnavailable
	}
	return domain.ProductSnapshot{ID: product.ID, Name: product.Name, Price: product.Price}, nil
}

var _ ports.ProductLookup = (*Products)(nil)
