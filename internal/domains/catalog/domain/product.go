package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Status enumerates product lifecycle states.
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
	StatusLowStock Status = "Low-stock"
)

var (
	ErrEmptyName     = errors.New("product name is required")
	ErrEmptyCategory = errors.New("product category is required")
	ErrEmptyOwner    = errors.New("product owner is required")
	ErrNegativePrice = errors.New("price must not be negative")
	ErrNegativeCost  = errors.New("cost must not be negative")
	ErrNegativeStock = errors.New("stock must not be negative")
	ErrInvalidStatus = errors.New("product status is invalid")
)

// Product is a catalog item owned by a single shop owner.
type Product struct {
	ID          string
	OwnerID     string
	Name        string
	Price       decimal.Decimal
	Stock       int
	Status      Status
	Category    string
	Cost        decimal.Decimal
	Description string
	ImageURL    string
}

// NewProduct validates the required fields and returns an Active product.
func NewProduct(id, ownerID, name, category string) (*Product, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, ErrEmptyOwner
	}
	p := &Product{ID: id, OwnerID: ownerID, Status: StatusActive}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	if err := p.Recategorize(category); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Product) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

func (p *Product) Recategorize(category string) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return ErrEmptyCategory
	}
	p.Category = category
	return nil
}

func (p *Product) Reprice(price decimal.Decimal) error {
	if price.IsNegative() {
		return ErrNegativePrice
	}
	p.Price = price
	return nil
}

func (p *Product) SetCost(cost decimal.Decimal) error {
	if cost.IsNegative() {
		return ErrNegativeCost
	}
	p.Cost = cost
	return nil
}

func (p *Product) SetStock(stock int) error {
	if stock < 0 {
		return ErrNegativeStock
	}
	p.Stock = stock
	return nil
}

// UpdateStatus accepts known states; empty defaults to Active.
func (p *Product) UpdateStatus(status Status) error {
	parsed, err := ParseStatus(string(status))
	if err != nil {
		return err
	}
	p.Status = parsed
	return nil
}

func (p *Product) Describe(description string) {
	p.Description = strings.TrimSpace(description)
}

func (p *Product) SetImage(url string) {
	p.ImageURL = strings.TrimSpace(url)
}

// OwnedBy reports whether ownerID may see and mutate the product.
func (p *Product) OwnedBy(ownerID string) bool {
	return ownerID != "" && p.OwnerID == ownerID
}

// ParseStatus normalizes the labels the UI sends ("Low stock", "low-stock").
func ParseStatus(raw string) (Status, error) {
	switch strings.ToLower(strings.Join(strings.Fields(strings.ReplaceAll(raw, "-", " ")), " ")) {
	case "", "active":
		return StatusActive, nil
	case "inactive":
		return StatusInactive, nil
	case "low stock":
		return StatusLowStock, nil
	default:
		return "", ErrInvalidStatus
	}
}
