package domain

import "github.com/shopspring/decimal"

// Patch carries the header fields an owner may change after commit.
type Patch struct {
	Total         *decimal.Decimal
	Status        *Status
	PaymentMethod *PaymentMethod
}

func (p Patch) Empty() bool {
	return p.Total == nil && p.Status == nil && p.PaymentMethod == nil
}

// Validate checks every supplied field without touching an order.
func (p Patch) Validate() error {
	if p.Empty() {
		return ErrNothingToUpdate
	}
	if p.Total != nil && p.Total.IsNegative() {
		return ErrNegativeAmount
	}
	if p.Status != nil {
		if _, err := ParseStatus(string(*p.Status)); err != nil {
			return err
		}
	}
	if p.PaymentMethod != nil && !p.PaymentMethod.Valid() {
		return ErrInvalidPayment
	}
	return nil
}

// Apply overwrites only the supplied header fields.
func (o *Order) Apply(p Patch) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.Total != nil {
		o.Total = *p.Total
	}
	if p.Status != nil {
		status, _ := ParseStatus(string(*p.Status))
		o.Status = status
	}
	if p.PaymentMethod != nil {
		o.PaymentMethod = *p.PaymentMethod
	}
	return nil
}
