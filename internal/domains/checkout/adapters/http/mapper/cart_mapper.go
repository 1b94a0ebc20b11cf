package mapper

import (
	"errors"
	"time"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/checkout/application"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/checkout/application/types"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/checkout/domain"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/checkout/ports"
	apierrors "github.com/Rajeshrr07/EiliyaBill/internal/shared/errors"
)

type AddItemRequest struct {
	ProductID string `json:"productId"`
}

type UpdateItemRequest struct {
	Quantity      *int    `json:"quantity"`
	PaymentMethod *string `json:"paymentMethod"`
}

type CheckoutRequest struct {
	Status string `json:"status"`
}

type Product struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// CartItem mirrors the line shape accepted by POST /orders.
type CartItem struct {
	Product       Product `json:"product"`
	Quantity      int     `json:"quantity"`
	PaymentMethod string  `json:"paymentMethod"`
	LineTotal     float64 `json:"lineTotal"`
}

type Cart struct {
	Register   string     `json:"register"`
	Items      []CartItem `json:"items"`
	Total      float64    `json:"total"`
	ItemsCount int        `json:"itemsCount"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

type CheckoutResponse struct {
	Success  bool    `json:"success"`
	OrderID  string  `json:"orderId"`
	Total    float64 `json:"total"`
	Replayed bool    `json:"replayed,omitempty"`
}

func ToUpdateItemInput(req UpdateItemRequest) types.UpdateItemInput {
	return types.UpdateItemInput{Quantity: req.Quantity, PaymentMethod: req.PaymentMethod}
}

func ToCheckoutInput(req CheckoutRequest, idempotencyKey string) types.CheckoutInput {
	return types.CheckoutInput{Status: req.Status, IdempotencyKey: idempotencyKey}
}

func FromCart(c *domain.Cart) Cart {
	if c == nil {
		return Cart{Items: []CartItem{}}
	}
	lines := c.Lines()
	out := Cart{
		Register:   c.Register,
		Items:      make([]CartItem, 0, len(lines)),
		Total:      c.Total().Round(2).InexactFloat64(),
		ItemsCount: c.ItemCount(),
	}
	if !c.UpdatedAt.IsZero() {
		updated := c.UpdatedAt
		out.UpdatedAt = &updated
	}
	for _, line := range lines {
		out.Items = append(out.Items, CartItem{
			Product: Product{
				ID:    line.ProductID,
				Name:  line.ProductName,
				Price: line.UnitPrice.InexactFloat64(),
			},
			Quantity:      line.Quantity,
			PaymentMethod: line.PaymentMethod,
			LineTotal:     line.Total().Round(2).InexactFloat64(),
		})
	}
	return out
}

func FromCheckout(result *types.CheckoutResult) CheckoutResponse {
	return CheckoutResponse{
		Success:  true,
		OrderID:  result.OrderID,
		Total:    result.Total.Round(2).InexactFloat64(),
		Replayed: result.Replayed,
	}
}

// ProblemFor maps register errors onto problem details.
func ProblemFor(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, application.ErrEmptyCart):
		return apierrors.ErrValidation.WithDetail("No items to save"), true
	case errors.Is(err, application.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(apierrors.RootMessage(err)), true
	case errors.Is(err, application.ErrProductUnavailable):
		return apierrors.ErrValidation.WithDetail("Product is not available for sale"), true
	case errors.Is(err, ports.ErrProductNotFound):
		return apierrors.ErrNotFound.WithDetail("Product not found"), true
	case errors.Is(err, domain.ErrLineNotFound):
		return apierrors.ErrNotFound.WithDetail("Item is not in the cart"), true
	case errors.Is(err, ports.ErrConcurrentUpdate):
		return apierrors.ErrConflict.WithDetail("Cart changed while updating, please retry"), true
	}
	return apierrors.ProblemDetail{}, false
}
