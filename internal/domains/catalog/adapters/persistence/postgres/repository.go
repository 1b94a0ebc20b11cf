package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/application/types"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/domain"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/ports"
	"github.com/Rajeshrr07/EiliyaBill/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists products using GORM. Caller manages DB lifecycle.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type productRecord struct {
	ID          string          `gorm:"primaryKey;column:id;size:36"`
	OwnerID     string          `gorm:"column:user_id;size:36;index:idx_products_owner_created"`
	Name        string          `gorm:"column:name"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	Stock       int             `gorm:"column:stock"`
	Status      string          `gorm:"column:status;type:varchar(16)"`
	Category    string          `gorm:"column:category;index"`
	Cost        decimal.Decimal `gorm:"column:cost;type:numeric(12,2)"`
	Description string          `gorm:"column:description"`
	ImageURL    string          `gorm:"column:image"`
	CreatedAt   time.Time       `gorm:"column:created_at;index:idx_products_owner_created"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Migrate creates the products table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&productRecord{})
}

// Save upserts the product; created_at is preserved on update.
func (r *Repository) Save(ctx context.Context, product *domain.Product) (*types.ProductProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	record := toRecord(product)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "price", "stock", "status", "category", "cost", "description", "image", "updated_at",
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*types.ProductProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toProjection(), nil
}

func (r *Repository) ListByOwner(ctx context.Context, ownerID string) ([]*types.ProductProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []productRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	result := make([]*types.ProductProjection, 0, len(records))
	for i := range records {
		result = append(result, records[i].toProjection())
	}
	return result, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&productRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres product repository not configured")
	}
	return nil
}

func toRecord(p *domain.Product) productRecord {
	return productRecord{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Price:       p.Price,
		Stock:       p.Stock,
		Status:      string(p.Status),
		Category:    p.Category,
		Cost:        p.Cost,
		Description: p.Description,
		ImageURL:    p.ImageURL,
	}
}

func (r productRecord) toProjection() *types.ProductProjection {
	product := &domain.Product{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Name:        r.Name,
		Price:       r.Price,
		Stock:       r.Stock,
		Status:      domain.Status(r.Status),
		Category:    r.Category,
		Cost:        r.Cost,
		Description: r.Description,
		ImageURL:    r.ImageURL,
	}
	return types.NewProductProjection(product, projection.Metadata{CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt})
}
