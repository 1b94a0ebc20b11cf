package application

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/application/types"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/domain"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/ports"
	"github.com/Rajeshrr07/EiliyaBill/internal/shared/identity"
)

// Service orchestrates the catalog bounded context use cases.
type Service struct {
	repo   ports.Repository
	images ports.ImageStore
	newID  func() string
}

type Option func(*Service)

// WithImageStore enables product image uploads.
func WithImageStore(store ports.ImageStore) Option {
	return func(s *Service) { s.images = store }
}

// WithIDGenerator overrides product id generation.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// NewService wires the catalog service with its dependencies.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, newID: uuid.NewString}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// List returns the owner's products newest-first; an owner without products gets an empty list.
func (s *Service) List(ctx context.Context, ownerID string) ([]*types.ProductProjection, error) {
	if err := identity.Require(ownerID); err != nil {
		return nil, err
	}
	result, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, mapError(err)
	}
	if result == nil {
		result = []*types.ProductProjection{}
	}
	return result, nil
}

// Get loads a single owned product.
func (s *Service) Get(ctx context.Context, ownerID, id string) (*types.ProductProjection, error) {
	if err := identity.Require(ownerID); err != nil {
		return nil, err
	}
	return s.loadOwned(ctx, ownerID, id)
}

// Create persists a new product for ownerID.
func (s *Service) Create(ctx context.Context, ownerID string, input types.ProductInput) (*types.ProductProjection, error) {
	if err := identity.Require(ownerID); err != nil {
		return nil, err
	}
	product, err := domain.NewProduct(s.newID(), ownerID, deref(input.Name), deref(input.Category))
	if err != nil {
		return nil, mapError(err)
	}
	if err := applyMutation(product, input); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Update overwrites the supplied fields of an owned product.
func (s *Service) Update(ctx context.Context, ownerID, id string, input types.ProductInput) (*types.ProductProjection, error) {
	if err := identity.Require(ownerID); err != nil {
		return nil, err
	}
	current, err := s.loadOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := applyMutation(current.Entity, input); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, current.Entity)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Delete removes an owned product.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if err := identity.Require(ownerID); err != nil {
		return err
	}
	if _, err := s.loadOwned(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapError(err)
	}
	return nil
}

// UploadImage stores the image and points the product at it.
func (s *Service) UploadImage(ctx context.Context, input types.UploadImageInput) (*types.ProductProjection, error) {
	if err := identity.Require(input.OwnerID); err != nil {
		return nil, err
	}
	if s.images == nil {
		return nil, ErrImageStorageDisabled
	}
	if !strings.HasPrefix(strings.ToLower(input.ContentType), "image/") || input.Body == nil {
		return nil, mapError(ErrInvalidImage)
	}
	current, err := s.loadOwned(ctx, input.OwnerID, input.ProductID)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("products/%s/%s%s", input.OwnerID, input.ProductID, strings.ToLower(path.Ext(input.Filename)))
	url, err := s.images.Put(ctx, key, input.ContentType, input.Body)
	if err != nil {
		return nil, fmt.Errorf("store product image: %w", err)
	}
	current.Entity.SetImage(url)
	saved, err := s.repo.Save(ctx, current.Entity)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

func (s *Service) loadOwned(ctx context.Context, ownerID, id string) (*types.ProductProjection, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	if !current.Entity.OwnedBy(ownerID) {
		return nil, ErrForbidden
	}
	return current, nil
}

func applyMutation(target *domain.Product, input types.ProductInput) error {
	if input.Name != nil {
		if err := target.Rename(*input.Name); err != nil {
			return err
		}
	}
	if input.Category != nil {
		if err := target.Recategorize(*input.Category); err != nil {
			return err
		}
	}
	if input.Price != nil {
		if err := target.Reprice(*input.Price); err != nil {
			return err
		}
	}
	if input.Cost != nil {
		if err := target.SetCost(*input.Cost); err != nil {
			return err
		}
	}
	if input.Stock != nil {
		if err := target.SetStock(*input.Stock); err != nil {
			return err
		}
	}
	if input.Status != nil {
		if err := target.UpdateStatus(domain.Status(*input.Status)); err != nil {
			return err
		}
	}
	if input.Description != nil {
		target.Describe(*input.Description)
	}
	if input.Image != nil {
		target.SetImage(*input.Image)
	}
	return nil
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

var _ ports.Service = (*Service)(nil)
