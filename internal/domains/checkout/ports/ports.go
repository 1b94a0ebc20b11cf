package ports

import (
	"context"
	"errors"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/checkout/application/types"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/checkout/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
	// ErrConcurrentUpdate is returned when a register kept changing underneath an update.
	ErrConcurrentUpdate = errors.New("cart was modified concurrently")
)

// Store keeps one cart per (owner, register).
type Store interface {
	// Load returns the stored cart, or a new empty one when the register has none.
	Load(ctx context.Context, ownerID, register string) (*domain.Cart, error)
	// Update applies mutate to the current cart and saves it atomically.
	Update(ctx context.Context, ownerID, register string, mutate func(*domain.Cart) error) (*domain.Cart, error)
	Delete(ctx context.Context, ownerID, register string) error
}

// ProductLookup snapshots an owner's catalog product for a cart line.
type ProductLookup interface {
	Product(ctx context.Context, ownerID, productID string) (domain.ProductSnapshot, error)
}

// Service exposes register operations to adapters.
type Service interface {
	Get(ctx context.Context, ownerID, register string) (*domain.Cart, error)
	AddItem(ctx context.Context, ownerID, register, productID string) (*domain.Cart, error)
	UpdateItem(ctx context.Context, ownerID, register, productID string, input types.UpdateItemInput) (*domain.Cart, error)
	RemoveItem(ctx context.Context, ownerID, register, productID string) (*domain.Cart, error)
	Clear(ctx context.Context, ownerID, register string) error
	Checkout(ctx context.Context, ownerID, register string, input types.CheckoutInput) (*types.CheckoutResult, error)
}
