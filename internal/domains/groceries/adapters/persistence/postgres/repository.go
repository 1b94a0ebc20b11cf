package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/groceries/domain"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/groceries/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists grocery entries using GORM. Caller manages DB lifecycle.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type entryRecord struct {
	ID          string          `gorm:"primaryKey;column:id;size:36"`
	OwnerID     string          `gorm:"column:user_id;size:36;not null;index:idx_groceries_owner_added"`
	ProductName string          `gorm:"column:product_name;not null"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	AddedAt     time.Time       `gorm:"column:added_date;index:idx_groceries_owner_added"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (entryRecord) TableName() string { return "groceries" }

// Migrate creates the groceries table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&entryRecord{})
}

func (r *Repository) Insert(ctx context.Context, entries ...*domain.Entry) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	records := make([]entryRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, toRecord(e))
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&records).Error
	})
}

func (r *Repository) Update(ctx context.Context, entry *domain.Entry) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&entryRecord{}).
		Where("id = ?", entry.ID).
		Updates(map[string]any{
			"product_name": entry.ProductName,
			"price":        entry.Price,
			"updated_at":   entry.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record entryRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ListByOwner(ctx context.Context, ownerID string, from, to time.Time) ([]*domain.Entry, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Where("user_id = ?", ownerID)
	if !from.IsZero() {
		query = query.Where("added_date >= ?", from.UTC())
	}
	if !to.IsZero() {
		query = query.Where("added_date < ?", to.UTC())
	}
	var records []entryRecord
	if err := query.Order("added_date DESC").Order("id DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	result := make([]*domain.Entry, 0, len(records))
	for i := range records {
		result = append(result, records[i].toDomain())
	}
	return result, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&entryRecord{}, "id = ?", id)
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
		return errors.New("postgres grocery repository not configured")
	}
	return nil
}

func toRecord(e *domain.Entry) entryRecord {
	return entryRecord{
		ID:          e.ID,
		OwnerID:     e.OwnerID,
		ProductName: e.ProductName,
		Price:       e.Price,
		AddedAt:     e.AddedAt.UTC(),
		UpdatedAt:   e.UpdatedAt.UTC(),
	}
}

func (r entryRecord) toDomain() *domain.Entry {
	return &domain.Entry{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		ProductName: r.ProductName,
		Price:       r.Price,
		AddedAt:     r.AddedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}
