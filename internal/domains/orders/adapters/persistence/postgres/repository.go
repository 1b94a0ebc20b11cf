package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/domain"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists order headers and lines using GORM. Caller manages DB lifecycle.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type orderRecord struct {
	ID            string          `gorm:"primaryKey;column:id;size:36"`
	OwnerID       string          `gorm:"column:user_id;size:36;index:idx_orders_owner_created"`
	Total         decimal.Decimal `gorm:"column:total;type:numeric(12,2)"`
	Status        string          `gorm:"column:status;type:varchar(16)"`
	PaymentMethod string          `gorm:"column:payment_method;type:varchar(16)"`
	State         string          `gorm:"column:commit_state;type:varchar(16);index"`
	CreatedAt     time.Time       `gorm:"column:created_at;index:idx_orders_owner_created"`
	UpdatedAt     time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type lineRecord struct {
	ID            string          `gorm:"primaryKey;column:id;size:36"`
	OrderID       string          `gorm:"column:order_id;size:36;index"`
	ProductID     string          `gorm:"column:product_id;size:36"`
	ProductName   string          `gorm:"column:product_name"`
	UnitPrice     decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	Quantity      int             `gorm:"column:quantity"`
	LineTotal     decimal.Decimal `gorm:"column:line_total;type:numeric(12,2)"`
	PaymentMethod string          `gorm:"column:payment_method;type:varchar(16)"`
	Position      int             `gorm:"column:position"`
}

func (lineRecord) TableName() string { return "order_items" }

// Migrate creates the orders, order_items and order_idempotency_keys tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&orderRecord{}, &lineRecord{}, &idempotencyRecord{})
}

// Commit stages the header, writes every line and flips the header to committed in one transaction.
func (r *Repository) Commit(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	header := toOrderRecord(order)
	header.State = string(domain.CommitPending)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&header).Error; err != nil {
			return err
		}
		if err := insertLines(tx, order.ID, order.Lines); err != nil {
			return err
		}
		return tx.Model(&orderRecord{}).
			Where("id = ?", order.ID).
			Update("commit_state", string(domain.CommitCommitted)).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, order.ID)
}

func (r *Repository) StageHeader(ctx context.Context, order *domain.Order) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if order == nil {
		return errors.New("order is nil")
	}
	header := toOrderRecord(order)
	header.State = string(domain.CommitPending)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&header).Error
}

func (r *Repository) AppendLines(ctx context.Context, orderID string, lines []domain.Line) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&orderRecord{}).Where("id = ?", orderID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ports.ErrNotFound
		}
		if err := tx.Where("order_id = ?", orderID).Delete(&lineRecord{}).Error; err != nil {
			return err
		}
		return insertLines(tx, orderID, lines)
	})
}

func (r *Repository) SetState(ctx context.Context, orderID string, state domain.CommitState) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&orderRecord{}).
		Where("id = ?", orderID).
		Update("commit_state", string(state))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var header orderRecord
	if err := r.db.WithContext(ctx).First(&header, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	lines, err := r.loadLines(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	return header.toDomain(lines[id]), nil
}

func (r *Repository) UpdateHeader(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	result := r.db.WithContext(ctx).Model(&orderRecord{}).
		Where("id = ? AND user_id = ?", order.ID, order.OwnerID).
		Updates(map[string]any{
			"total":          order.Total,
			"status":         string(order.Status),
			"payment_method": string(order.PaymentMethod),
			"updated_at":     time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, order.ID)
}

// Delete removes lines and then the header inside one transaction.
// Orders owned by someone else are reported as not found.
func (r *Repository) Delete(ctx context.Context, ownerID, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&orderRecord{}).Select("id").Where("id = ? AND user_id = ?", id, ownerID)
		if err := tx.Where("order_id IN (?)", owned).Delete(&lineRecord{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&orderRecord{}, "id = ? AND user_id = ?", id, ownerID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ports.ErrNotFound
		}
		return nil
	})
}

func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).
		Where("user_id = ? AND commit_state = ?", filter.OwnerID, string(domain.CommitCommitted))
	if !filter.From.IsZero() {
		query = query.Where("created_at >= ?", filter.From.UTC())
	}
	if !filter.To.IsZero() {
		query = query.Where("created_at < ?", filter.To.UTC())
	}
	var headers []orderRecord
	if err := query.Order("created_at DESC").Order("id DESC").Find(&headers).Error; err != nil {
		return nil, err
	}
	if len(headers) == 0 {
		return []*domain.Order{}, nil
	}
	ids := make([]string, 0, len(headers))
	for _, h := range headers {
		ids = append(ids, h.ID)
	}
	lines, err := r.loadLines(ctx, ids)
	if err != nil {
		return nil, err
	}
	result := make([]*domain.Order, 0, len(headers))
	for i := range headers {
		result = append(result, headers[i].toDomain(lines[headers[i].ID]))
	}
	return result, nil
}

func (r *Repository) loadLines(ctx context.Context, orderIDs []string) (map[string][]lineRecord, error) {
	var records []lineRecord
	if err := r.db.WithContext(ctx).
		Where("order_id IN ?", orderIDs).
		Order("order_id").Order("position").
		Find(&records).Error; err != nil {
		return nil, err
	}
	byOrder := make(map[string][]lineRecord, len(orderIDs))
	for _, rec := range records {
		byOrder[rec.OrderID] = append(byOrder[rec.OrderID], rec)
	}
	return byOrder, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func insertLines(tx *gorm.DB, orderID string, lines []domain.Line) error {
	if len(lines) == 0 {
		return nil
	}
	records := make([]lineRecord, 0, len(lines))
	for i, line := range lines {
		records = append(records, lineRecord{
			ID:            line.ID,
			OrderID:       orderID,
			ProductID:     line.ProductID,
			ProductName:   line.ProductName,
			UnitPrice:     line.UnitPrice,
			Quantity:      line.Quantity,
			LineTotal:     line.LineTotal,
			PaymentMethod: string(line.PaymentMethod),
			Position:      i,
		})
	}
	return tx.Create(&records).Error
}

func toOrderRecord(o *domain.Order) orderRecord {
	return orderRecord{
		ID:            o.ID,
		OwnerID:       o.OwnerID,
		Total:         o.Total,
		Status:        string(o.Status),
		PaymentMethod: string(o.PaymentMethod),
		State:         string(o.State),
		CreatedAt:     o.CreatedAt.UTC(),
	}
}

func (r orderRecord) toDomain(lines []lineRecord) *domain.Order {
	order := &domain.Order{
		ID:            r.ID,
		OwnerID:       r.OwnerID,
		Total:         r.Total,
		Status:        domain.Status(r.Status),
		PaymentMethod: domain.PaymentMethod(r.PaymentMethod),
		State:         domain.CommitState(r.State),
		CreatedAt:     r.CreatedAt.UTC(),
		Lines:         make([]domain.Line, 0, len(lines)),
	}
	for _, rec := range lines {
		order.Lines = append(order.Lines, domain.Line{
			ID:            rec.ID,
			OrderID:       rec.OrderID,
			ProductID:     rec.ProductID,
			ProductName:   rec.ProductName,
			UnitPrice:     rec.UnitPrice,
			Quantity:      rec.Quantity,
			LineTotal:     rec.LineTotal,
			PaymentMethod: domain.PaymentMethod(rec.PaymentMethod),
		})
	}
	return order
}
