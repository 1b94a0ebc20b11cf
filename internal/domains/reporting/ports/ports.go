package ports

import (
	"context"
	"time"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/reporting/application/types"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/reporting/domain"
)

// SalesSource reads the owner's committed sales created in [from, to); zero bounds are open.
type SalesSource interface {
	Sales(ctx context.Context, ownerID string, from, to time.Time) ([]domain.Sale, error)
}

// CategoryLookup maps the owner's product ids to their current category.
type CategoryLookup interface {
	ProductCategories(ctx context.Context, ownerID string) (map[string]string, error)
}

// Service exposes the dashboard and report aggregations.
type Service interface {
	Daily(ctx context.Context, ownerID string, query types.DailyQuery) ([]domain.DayPoint, error)
	TopProducts(ctx context.Context, ownerID string, query types.TopProductsQuery) ([]domain.ProductRank, error)
	Summary(ctx context.Context, ownerID string, query types.RangeQuery) (*domain.Summary, error)
	Hourly(ctx context.Context, ownerID string, query types.DayQuery) ([]domain.HourBucket, error)
	Categories(ctx context.Context, ownerID string, query types.RangeQuery) ([]domain.CategoryRevenue, error)
}
