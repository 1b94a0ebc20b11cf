// Package sources adapts the orders and catalog contexts into reporting inputs.
package sources

import (
	"context"
	"errors"
	"time"

	orderdomain "github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/domain"
	orderports "github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/ports"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/reporting/domain"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/reporting/ports"
)

var _ ports.SalesSource = (*OrderSales)(nil)

// OrderSales reads committed orders through the orders repository.
type OrderSales struct {
	repo orderports.Repository
}

func NewOrderSales(repo orderports.Repository) *OrderSales {
	return &OrderSales{repo: repo}
}

func (s *OrderSales) Sales(ctx context.Context, ownerID string, from, to time.Time) ([]domain.Sale, error) {
	if s == nil || s.repo == nil {
		return nil, errors.New("order sales source not configured")
	}
	orders, err := s.repo.List(ctx, orderports.ListFilter{OwnerID: ownerID, From: from, To: to})
	if err != nil {
		return nil, err
	}
	sales := make([]domain.Sale, 0, len(orders))
	for _, o := range orders {
		sales = append(sales, toSale(o))
	}
	return sales, nil
}

func toSale(o *orderdomain.Order) domain.Sale {
	lines := make([]domain.SaleLine, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, domain.SaleLine{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			Revenue:     l.LineTotal,
		})
	}
	return domain.Sale{
		OrderID:       o.ID,
		CreatedAt:     o.CreatedAt,
		Total:         o.Total,
		Status:        string(o.Status),
		PaymentMethod: string(o.PaymentMethod),
		Lines:         lines,
	}
}
