package mapper

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/groceries/application"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/groceries/application/types"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/groceries/domain"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/groceries/ports"
	apierrors "github.com/Rajeshrr07/EiliyaBill/internal/shared/errors"
)

type Item struct {
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
}

// CreateRequest accepts a single entry or a batch under items.
type CreateRequest struct {
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
	Items       []Item          `json:"items"`
}

type UpdateRequest struct {
	ID          string           `json:"id"`
	ProductName *string          `json:"productName"`
	Price       *decimal.Decimal `json:"price"`
}

type DeleteRequest struct {
	ID string `json:"id"`
}

type Entry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	ProductName string    `json:"product_name"`
	Price       float64   `json:"price"`
	AddedDate   time.Time `json:"added_date"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type DayPoint struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

type Summary struct {
	From   string     `json:"from"`
	To     string     `json:"to"`
	Series []DayPoint `json:"series"`
	Total  float64    `json:"total"`
	Count  int        `json:"count"`
}

func ToCreateInputs(req CreateRequest) []types.CreateInput {
	if len(req.Items) == 0 {
		if strings.TrimSpace(req.ProductName) == "" && req.Price.IsZero() {
			return nil
		}
		return []types.CreateInput{{ProductName: req.ProductName, Price: req.Price}}
	}
	out := make([]types.CreateInput, 0, len(req.Items))
	for _, item := range req.Items {
		out = append(out, types.CreateInput{ProductName: item.ProductName, Price: item.Price})
	}
	return out
}

func ToUpdateInput(req UpdateRequest) types.UpdateInput {
	return types.UpdateInput{ProductName: req.ProductName, Price: req.Price}
}

func FromEntry(e *domain.Entry) Entry {
	return Entry{
		ID:          e.ID,
		UserID:      e.OwnerID,
		ProductName: e.ProductName,
		Price:       e.Price.InexactFloat64(),
		AddedDate:   e.AddedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func FromEntries(entries []*domain.Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, FromEntry(e))
	}
	return out
}

func FromSummary(s *types.Summary) Summary {
	out := Summary{From: s.From, To: s.To, Series: make([]DayPoint, 0, len(s.Series)), Count: s.Count}
	for _, p := range s.Series {
		out.Series = append(out.Series, DayPoint{Date: p.Date, Amount: p.Sales.Round(2).InexactFloat64()})
	}
	out.Total = s.Total.Round(2).InexactFloat64()
	return out
}

// ProblemFor maps grocery errors onto problem details.
func ProblemFor(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, application.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(apierrors.RootMessage(err)), true
	case errors.Is(err, application.ErrForbidden):
		return apierrors.ErrForbidden.WithDetail("You are not allowed to modify this entry"), true
	case errors.Is(err, ports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail("Grocery entry not found"), true
	}
	return apierrors.ProblemDetail{}, false
}
