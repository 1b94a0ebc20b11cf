package mapper

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	orderapp "github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/application"
	ordertypes "github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/application/types"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/domain"
	orderports "github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/ports"
	apierrors "github.com/Rajeshrr07/EiliyaBill/internal/shared/errors"
)

// CommitRequest is the checkout payload posted by the register.
type CommitRequest struct {
	Items  []CommitItem    `json:"items"`
	Total  decimal.Decimal `json:"total"`
	Status string          `json:"status,omitempty"`
}

type CommitItem struct {
	Product       CommitProduct `json:"product"`
	Quantity      int           `json:"quantity"`
	PaymentMethod string        `json:"paymentMethod"`
}

// CommitProduct is the product snapshot the client had on screen.
type CommitProduct struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type CommitResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
}

// PatchRequest accepts both paymentMethod and payment_method.
type PatchRequest struct {
	OrderID            string           `json:"orderId"`
	Total              *decimal.Decimal `json:"total"`
	Status             *string          `json:"status"`
	PaymentMethod      *string          `json:"paymentMethod"`
	PaymentMethodSnake *string          `json:"payment_method"`
}

type DeleteRequest struct {
	OrderID string `json:"orderId"`
}

// Order is the row shape of the orders table and receipts.
type Order struct {
	ID            string      `json:"id"`
	UserID        string      `json:"user_id"`
	Total         float64     `json:"total"`
	Status        string      `json:"status"`
	PaymentMethod string      `json:"payment_method"`
	CreatedAt     time.Time   `json:"created_at"`
	Date          string      `json:"date"`
	Receipt       string      `json:"receipt"`
	Items         []OrderItem `json:"items"`
	ItemsCount    int         `json:"itemsCount"`
}

type OrderItem struct {
	ID            string  `json:"id"`
	OrderID       string  `json:"order_id"`
	ProductID     string  `json:"product_id"`
	ProductName   string  `json:"product_name"`
	UnitPrice     float64 `json:"unit_price"`
	Quantity      int     `json:"quantity"`
	LineTotal     float64 `json:"line_total"`
	PaymentMethod string  `json:"payment_method"`
}

func ToCommitInput(ownerID, idempotencyKey string, req CommitRequest) ordertypes.CommitOrderInput {
	items := make([]ordertypes.LineInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, ordertypes.LineInput{
			ProductID:     item.Product.ID,
			ProductName:   item.Product.Name,
			UnitPrice:     item.Product.Price,
			Quantity:      item.Quantity,
			PaymentMethod: item.PaymentMethod,
		})
	}
	return ordertypes.CommitOrderInput{
		OwnerID:        ownerID,
		Items:          items,
		Total:          req.Total,
		Status:         req.Status,
		IdempotencyKey: idempotencyKey,
	}
}

func ToPatchInput(req PatchRequest) ordertypes.PatchOrderInput {
	method := req.PaymentMethod
	if method == nil {
		method = req.PaymentMethodSnake
	}
	return ordertypes.PatchOrderInput{
		Total:         req.Total,
		Status:        req.Status,
		PaymentMethod: method,
	}
}

// FromOrder renders an order; the date column uses loc.
func FromOrder(o *domain.Order, loc *time.Location) Order {
	if o == nil {
		return Order{}
	}
	if loc == nil {
		loc = time.UTC
	}
	items := make([]OrderItem, 0, len(o.Lines))
	count := 0
	for _, line := range o.Lines {
		items = append(items, OrderItem{
			ID:            line.ID,
			OrderID:       o.ID,
			ProductID:     line.ProductID,
			ProductName:   line.ProductName,
			UnitPrice:     line.UnitPrice.InexactFloat64(),
			Quantity:      line.Quantity,
			LineTotal:     line.LineTotal.InexactFloat64(),
			PaymentMethod: string(line.PaymentMethod),
		})
		count += line.Quantity
	}
	return Order{
		ID:            o.ID,
		UserID:        o.OwnerID,
		Total:         o.Total.InexactFloat64(),
		Status:        string(o.Status),
		PaymentMethod: string(o.PaymentMethod),
		CreatedAt:     o.CreatedAt,
		Date:          o.CreatedAt.In(loc).Format(time.DateOnly),
		Receipt:       o.Receipt(),
		Items:         items,
		ItemsCount:    count,
	}
}

func FromOrders(list []*domain.Order, loc *time.Location) []Order {
	result := make([]Order, 0, len(list))
	for _, o := range list {
		result = append(result, FromOrder(o, loc))
	}
	return result
}

// ProblemFor maps order errors onto problem details.
func ProblemFor(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, domain.ErrNoItems):
		return apierrors.ErrValidation.WithDetail("No items to save"), true
	case errors.Is(err, domain.ErrNothingToUpdate):
		return apierrors.ErrValidation.WithDetail("Nothing to update"), true
	case errors.Is(err, orderapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(apierrors.RootMessage(err)), true
	case errors.Is(err, orderports.ErrIdempotencyConflict):
		return apierrors.ErrConflict.WithDetail("Idempotency-Key was already used for a different order"), true
	case errors.Is(err, orderapp.ErrForbidden):
		return apierrors.ErrForbidden.WithDetail("You are not allowed to modify this order"), true
	case errors.Is(err, orderports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail("Order not found"), true
	}
	return apierrors.ProblemDetail{}, false
}
