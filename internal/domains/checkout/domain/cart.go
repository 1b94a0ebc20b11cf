package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	MethodOffline = "Offline"
	MethodOnline  = "Online"
	MethodZomoto  = "Zomoto"

	// DefaultMethod tags lines added without an explicit payment method.
	DefaultMethod = MethodOffline
)

var lineMethods = []string{MethodOffline, MethodOnline, MethodZomoto}

var registerPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

var (
	ErrEmptyOwner           = errors.New("cart owner is required")
	ErrInvalidRegister      = errors.New("register must be 1-64 letters, digits, '-' or '_'")
	ErrInvalidProduct       = errors.New("product id is required")
	ErrNegativePrice        = errors.New("unit price must not be negative")
	ErrInvalidPaymentMethod = errors.New("payment method must be Offline, Online or Zomoto")
	ErrLineNotFound         = errors.New("item is not in the cart")
)

// ProductSnapshot is the catalog data copied into a cart line when it is added.
type ProductSnapshot struct {
	ID    string
	Name  string
	Price decimal.Decimal
}

type Line struct {
	ProductID     string
	ProductName   string
	UnitPrice     decimal.Decimal
	Quantity      int
	PaymentMethod string
}

func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the open ticket of one register. Lines keep insertion order and
// quantity is always at least one.
type Cart struct {
	ID        string
	OwnerID   string
	Register  string
	Revision  int
	UpdatedAt time.Time

	order []string
	lines map[string]*Line
	total decimal.Decimal
}

func NewCart(id, ownerID, register string) (*Cart, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, ErrEmptyOwner
	}
	if err := ValidateRegister(register); err != nil {
		return nil, err
	}
	return &Cart{
		ID:       id,
		OwnerID:  ownerID,
		Register: register,
		lines:    map[string]*Line{},
		total:    decimal.Zero,
	}, nil
}

func ValidateRegister(register string) error {
	if !registerPattern.MatchString(register) {
		return ErrInvalidRegister
	}
	return nil
}

// ParsePaymentMethod matches a line tag case-insensitively.
func ParsePaymentMethod(raw string) (string, error) {
	for _, m := range lineMethods {
		if strings.EqualFold(strings.TrimSpace(raw), m) {
			return m, nil
		}
	}
	return "", ErrInvalidPaymentMethod
}

// AddItem bumps the quantity of a known product or appends it with quantity one.
func (c *Cart) AddItem(p ProductSnapshot) error {
	if strings.TrimSpace(p.ID) == "" {
		return ErrInvalidProduct
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	if line, ok := c.lines[p.ID]; ok {
		line.Quantity++
	} else {
		c.lines[p.ID] = &Line{
			ProductID:     p.ID,
			ProductName:   p.Name,
			UnitPrice:     p.Price,
			Quantity:      1,
			PaymentMethod: DefaultMethod,
		}
		c.order = append(c.order, p.ID)
	}
	c.changed()
	return nil
}

// UpdateQuantity sets the quantity; zero or less removes the line.
func (c *Cart) UpdateQuantity(productID string, quantity int) error {
	line, ok := c.lines[productID]
	if !ok {
		return ErrLineNotFound
	}
	if quantity <= 0 {
		return c.RemoveItem(productID)
	}
	line.Quantity = quantity
	c.changed()
	return nil
}

func (c *Cart) UpdatePaymentMethod(productID, method string) error {
	line, ok := c.lines[productID]
	if !ok {
		return ErrLineNotFound
	}
	parsed, err := ParsePaymentMethod(method)
	if err != nil {
		return err
	}
	line.PaymentMethod = parsed
	c.Revision++
	return nil
}

func (c *Cart) RemoveItem(productID string) error {
	if _, ok := c.lines[productID]; !ok {
		return ErrLineNotFound
	}
	delete(c.lines, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.changed()
	return nil
}

func (c *Cart) Clear() {
	c.lines = map[string]*Line{}
	c.order = nil
	c.changed()
}

// Lines returns a copy of the lines in the order they were first added.
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.lines[id])
	}
	return out
}

func (c *Cart) Line(productID string) (Line, bool) {
	line, ok := c.lines[productID]
	if !ok {
		return Line{}, false
	}
	return *line, true
}

func (c *Cart) Total() decimal.Decimal { return c.total }

func (c *Cart) IsEmpty() bool { return len(c.order) == 0 }

// ItemCount sums the quantities of every line.
func (c *Cart) ItemCount() int {
	n := 0
	for _, line := range c.lines {
		n += line.Quantity
	}
	return n
}

func (c *Cart) changed() {
	c.Revision++
	c.total = SumLines(c.Lines())
}

// SumLines is the single source of a cart total.
func SumLines(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Total())
	}
	return total
}

// State is the persisted form of a cart.
type State struct {
	ID        string
	OwnerID   string
	Register  string
	Revision  int
	UpdatedAt time.Time
	Lines     []Line
}

func (c *Cart) State() State {
	return State{
		ID:        c.ID,
		OwnerID:   c.OwnerID,
		Register:  c.Register,
		Revision:  c.Revision,
		UpdatedAt: c.UpdatedAt,
		Lines:     c.Lines(),
	}
}

// Restore rebuilds a cart from its persisted state, dropping lines that break the quantity invariant.
func Restore(s State) (*Cart, error) {
	cart, err := NewCart(s.ID, s.OwnerID, s.Register)
	if err != nil {
		return nil, err
	}
	for _, line := range s.Lines {
		if line.Quantity < 1 || line.ProductID == "" {
			continue
		}
		if _, dup := cart.lines[line.ProductID]; dup {
			continue
		}
		l := line
		cart.lines[l.ProductID] = &l
		cart.order = append(cart.order, l.ProductID)
	}
	cart.total = SumLines(cart.Lines())
	cart.Revision = s.Revision
	cart.UpdatedAt = s.UpdatedAt
	return cart, nil
}
