package application

import (
	"context"
	"fmt"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/checkout/application/types"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/checkout/domain"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/checkout/ports"
	ordertypes "github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/application/types"
	orderports "github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/ports"
	"github.com/Rajeshrr07/EiliyaBill/internal/shared/identity"
)

// Service runs the register use cases. Carts live in the store; checkout hands
// the lines to the order workflows.
type Service struct {
	store    ports.Store
	products ports.ProductLookup
	orders   orderports.WorkflowOrchestrator
}

func NewService(store ports.Store, products ports.ProductLookup, orders orderports.WorkflowOrchestrator) *Service {
	return &Service{store: store, products: products, orders: orders}
}

func (s *Service) Get(ctx context.Context, ownerID, register string) (*domain.Cart, error) {
	if err := s.guard(ownerID, register); err != nil {
		return nil, err
	}
	return s.store.Load(ctx, ownerID, register)
}

// AddItem snapshots the product's current name and price into the cart.
func (s *Service) AddItem(ctx context.Context, ownerID, register, productID string) (*domain.Cart, error) {
	if err := s.guard(ownerID, register); err != nil {
		return nil, err
	}
	if productID == "" {
		return nil, mapError(domain.ErrInvalidProduct)
	}
	snapshot, err := s.products.Product(ctx, ownerID, productID)
	if err != nil {
		return nil, err
	}
	cart, err := s.store.Update(ctx, ownerID, register, func(c *domain.Cart) error {
		return c.AddItem(snapshot)
	})
	return cart, mapError(err)
}

func (s *Service) UpdateItem(ctx context.Context, ownerID, register, productID string, input types.UpdateItemInput) (*domain.Cart, error) {
	if err := s.guard(ownerID, register); err != nil {
		return nil, err
	}
	if input.Quantity == nil && input.PaymentMethod == nil {
		return nil, mapError(ErrNothingToUpdate)
	}
	cart, err := s.store.Update(ctx, ownerID, register, func(c *domain.Cart) error {
		if input.PaymentMethod != nil {
			if err := c.UpdatePaymentMethod(productID, *input.PaymentMethod); err != nil {
				return err
			}
		}
		if input.Quantity != nil {
			return c.UpdateQuantity(productID, *input.Quantity)
		}
		return nil
	})
	return cart, mapError(err)
}

func (s *Service) RemoveItem(ctx context.Context, ownerID, register, productID string) (*domain.Cart, error) {
	if err := s.guard(ownerID, register); err != nil {
		return nil, err
	}
	cart, err := s.store.Update(ctx, ownerID, register, func(c *domain.Cart) error {
		return c.RemoveItem(productID)
	})
	return cart, mapError(err)
}

func (s *Service) Clear(ctx context.Context, ownerID, register string) error {
	if err := s.guard(ownerID, register); err != nil {
		return err
	}
	return s.store.Delete(ctx, ownerID, register)
}

// Checkout commits the register's cart as an order and empties the register.
// The default idempotency key is bound to the cart revision, so repeating a
// checkout whose clear step failed replays the same order.
func (s *Service) Checkout(ctx context.Context, ownerID, register string, input types.CheckoutInput) (*types.CheckoutResult, error) {
	if err := s.guard(ownerID, register); err != nil {
		return nil, err
	}
	cart, err := s.store.Load(ctx, ownerID, register)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	key := input.IdempotencyKey
	if key == "" {
		key = fmt.Sprintf("cart-%s-r%d", cart.ID, cart.Revision)
	}
	lines := cart.Lines()
	items := make([]ordertypes.LineInput, 0, len(lines))
	for _, line := range lines {
		items = append(items, ordertypes.LineInput{
			ProductID:     line.ProductID,
			ProductName:   line.ProductName,
			UnitPrice:     line.UnitPrice,
			Quantity:      line.Quantity,
			PaymentMethod: line.PaymentMethod,
		})
	}
	committed, err := s.orders.CommitOrder(ctx, ordertypes.CommitOrderInput{
		OwnerID:        ownerID,
		Items:          items,
		Total:          cart.Total(),
		Status:         input.Status,
		IdempotencyKey: key,
	})
	if err != nil {
		return nil, err
	}
	result := &types.CheckoutResult{OrderID: committed.OrderID, Total: committed.Total, Replayed: committed.Replayed}
	if err := s.store.Delete(ctx, ownerID, register); err != nil {
		return result, fmt.Errorf("order %s committed but register was not cleared: %w", committed.OrderID, err)
	}
	return result, nil
}

func (s *Service) guard(ownerID, register string) error {
	if err := identity.Require(ownerID); err != nil {
		return err
	}
	return mapError(domain.ValidateRegister(register))
}

var _ ports.Service = (*Service)(nil)
