package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status enumerates the settlement state shown to the shop owner.
type Status string

const (
	StatusPaid    Status = "paid"
	StatusPending Status = "pending"
)

// PaymentMethod tags how a line (or a whole order) was settled.
type PaymentMethod string

const (
	PaymentOffline PaymentMethod = "Offline"
	PaymentOnline  PaymentMethod = "Online"
	PaymentZomoto  PaymentMethod = "Zomoto"
	// PaymentMixed marks an order header whose lines were settled differently.
	PaymentMixed PaymentMethod = "Mixed"
)

// CommitState tracks the header+lines write: pending until every line is stored.
type CommitState string

const (
	CommitPending   CommitState = "pending"
	CommitCommitted CommitState = "committed"
	CommitFailed    CommitState = "failed"
)

var (
	ErrNoItems           = errors.New("no items to save")
	ErrEmptyOwner        = errors.New("order owner is required")
	ErrEmptyProductName  = errors.New("product name is required")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrNegativeAmount    = errors.New("amount must not be negative")
	ErrInvalidStatus     = errors.New("order status is invalid")
	ErrInvalidPayment    = errors.New("payment method is invalid")
	ErrTotalMismatch     = errors.New("order total does not match the sum of its items")
	ErrNothingToUpdate   = errors.New("nothing to update")
	ErrInvalidTransition = errors.New("invalid commit state transition")
)

// Line is an order line with name and price copied from the product at commit time.
type Line struct {
	ID            string
	OrderID       string
	ProductID     string
	ProductName   string
	UnitPrice     decimal.Decimal
	Quantity      int
	LineTotal     decimal.Decimal
	PaymentMethod PaymentMethod
}

// Order is the sales aggregate: a header plus its lines.
type Order struct {
	ID            string
	OwnerID       string
	Total         decimal.Decimal
	Status        Status
	PaymentMethod PaymentMethod
	State         CommitState
	CreatedAt     time.Time
	Lines         []Line
}

// NewLine snapshots a product into a line and computes its total.
func NewLine(id, productID, productName string, unitPrice decimal.Decimal, quantity int, method PaymentMethod) (Line, error) {
	productName = strings.TrimSpace(productName)
	if productName == "" {
		return Line{}, ErrEmptyProductName
	}
	if quantity < 1 {
		return Line{}, ErrInvalidQuantity
	}
	if unitPrice.IsNegative() {
		return Line{}, ErrNegativeAmount
	}
	if method == "" {
		method = PaymentOffline
	}
	if method == PaymentMixed || !method.Valid() {
		return Line{}, ErrInvalidPayment
	}
	return Line{
		ID:            id,
		ProductID:     productID,
		ProductName:   productName,
		UnitPrice:     unitPrice,
		Quantity:      quantity,
		LineTotal:     unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		PaymentMethod: method,
	}, nil
}

// NewOrder validates the lines against the claimed total and returns a Pending order.
// The claimed total must match the line sum to the cent; the stored total is the line sum.
func NewOrder(id, ownerID string, lines []Line, claimedTotal decimal.Decimal, status Status, createdAt time.Time) (*Order, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, ErrEmptyOwner
	}
	if len(lines) == 0 {
		return nil, ErrNoItems
	}
	parsed, err := ParseStatus(string(status))
	if err != nil {
		return nil, err
	}
	sum := SumLines(lines)
	if !claimedTotal.Round(2).Equal(sum.Round(2)) {
		return nil, fmt.Errorf("%w: got %s, items sum to %s", ErrTotalMismatch, claimedTotal.StringFixed(2), sum.StringFixed(2))
	}
	owned := make([]Line, len(lines))
	for i, line := range lines {
		line.OrderID = id
		owned[i] = line
	}
	return &Order{
		ID:            id,
		OwnerID:       ownerID,
		Total:         sum,
		Status:        parsed,
		PaymentMethod: RepresentativeMethod(lines),
		State:         CommitPending,
		CreatedAt:     createdAt,
		Lines:         owned,
	}, nil
}

// SumLines adds the line totals.
func SumLines(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range lines {
		sum = sum.Add(line.LineTotal)
	}
	return sum
}

// RepresentativeMethod is the common method of all lines, or Mixed when they differ.
func RepresentativeMethod(lines []Line) PaymentMethod {
	if len(lines) == 0 {
		return PaymentOffline
	}
	first := lines[0].PaymentMethod
	for _, line := range lines[1:] {
		if line.PaymentMethod != first {
			return PaymentMixed
		}
	}
	return first
}

// MarkCommitted moves a pending order to committed.
func (o *Order) MarkCommitted() error {
	if o.State != CommitPending && o.State != CommitCommitted {
		return ErrInvalidTransition
	}
	o.State = CommitCommitted
	return nil
}

// MarkFailed moves a pending order to failed.
func (o *Order) MarkFailed() error {
	if o.State != CommitPending && o.State != CommitFailed {
		return ErrInvalidTransition
	}
	o.State = CommitFailed
	return nil
}

// OwnedBy reports whether ownerID may read or mutate the order.
func (o *Order) OwnedBy(ownerID string) bool {
	return ownerID != "" && o.OwnerID == ownerID
}

// Receipt is the short label printed on bills, e.g. "#ORD-3F2A9C".
func (o *Order) Receipt() string {
	return Receipt(o.ID)
}

func Receipt(id string) string {
	short := id
	if len(short) > 6 {
		short = short[:6]
	}
	return "#ORD-" + strings.ToUpper(short)
}

// Clone deep-copies the order including its lines.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Lines = append([]Line(nil), o.Lines...)
	return &clone
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentOffline, PaymentOnline, PaymentZomoto, PaymentMixed:
		return true
	default:
		return false
	}
}

// ParsePaymentMethod matches known methods case-insensitively; empty means Offline.
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "offline", "cash":
		return PaymentOffline, nil
	case "online", "upi", "card":
		return PaymentOnline, nil
	case "zomoto", "zomato":
		return PaymentZomoto, nil
	case "mixed":
		return PaymentMixed, nil
	default:
		return "", ErrInvalidPayment
	}
}

// ParseStatus matches known statuses; empty means paid.
func ParseStatus(raw string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "paid":
		return StatusPaid, nil
	case "pending":
		return StatusPending, nil
	default:
		return "", ErrInvalidStatus
	}
}
