package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyOwner       = errors.New("grocery owner is required")
	ErrEmptyProductName = errors.New("product name is required")
	ErrNonPositivePrice = errors.New("price must be greater than zero")
)

// Entry is one grocery purchase recorded as a shop expense.
type Entry struct {
	ID          string
	OwnerID     string
	ProductName string
	Price       decimal.Decimal
	AddedAt     time.Time
	UpdatedAt   time.Time
}

func NewEntry(id, ownerID, productName string, price decimal.Decimal, addedAt time.Time) (*Entry, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, ErrEmptyOwner
	}
	e := &Entry{ID: id, OwnerID: ownerID, AddedAt: addedAt, UpdatedAt: addedAt}
	if err := e.Rename(productName); err != nil {
		return nil, err
	}
	if err := e.Reprice(price); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Entry) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyProductName
	}
	e.ProductName = name
	return nil
}

func (e *Entry) Reprice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return ErrNonPositivePrice
	}
	e.Price = price.Round(2)
	return nil
}

func (e *Entry) OwnedBy(ownerID string) bool {
	return e.OwnerID == ownerID
}
