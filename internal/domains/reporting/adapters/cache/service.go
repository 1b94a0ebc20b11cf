// Package cache memoizes report aggregations in Redis.
//
// Every owner has a version counter that is part of each key. Order changes bump
// the counter, which orphans the owner's cached reports until their TTL expires.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/reporting/application/types"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/reporting/domain"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/reporting/ports"
)

const keyPrefix = "reports"

// DefaultTTL applies when no TTL option is given.
const DefaultTTL = 5 * time.Minute

// Service is a read-through cache in front of a reporting service.
type Service struct {
	inner   ports.Service
	rdb     redis.UniversalClient
	ttl     time.Duration
	loc     *time.Location
	now     func() time.Time
	lookups *prometheus.CounterVec
}

type Option func(*Service)

func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithLocation sets the zone used to resolve an omitted report year.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRegisterer exports hit, miss and error counters.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(s *Service) {
		if reg == nil {
			return
		}
		if err := reg.Register(s.lookups); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
					s.lookups = existing
				}
			}
		}
	}
}

func New(inner ports.Service, rdb redis.UniversalClient, opts ...Option) *Service {
	s := &Service{
		inner: inner,
		rdb:   rdb,
		ttl:   DefaultTTL,
		loc:   time.UTC,
		now:   time.Now,
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eiliyabill_report_cache_lookups_total",
			Help: "Report cache lookups by report and result.",
		}, []string{"report", "result"}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) Daily(ctx context.Context, ownerID string, query types.DailyQuery) ([]domain.DayPoint, error) {
	return cached(ctx, s, ownerID, "daily", query, func() ([]domain.DayPoint, error) {
		return s.inner.Daily(ctx, ownerID, query)
	})
}

// TopProducts pins a month-only query to the current year so the key names a concrete month.
func (s *Service) TopProducts(ctx context.Context, ownerID string, query types.TopProductsQuery) ([]domain.ProductRank, error) {
	if query.Month >= 1 && query.Month <= 12 && query.Year == 0 {
		query.Year = s.now().In(s.loc).Year()
	}
	return cached(ctx, s, ownerID, "top_products", query, func() ([]domain.ProductRank, error) {
		return s.inner.TopProducts(ctx, ownerID, query)
	})
}

func (s *Service) Summary(ctx context.Context, ownerID string, query types.RangeQuery) (*domain.Summary, error) {
	return cached(ctx, s, ownerID, "summary", query, func() (*domain.Summary, error) {
		return s.inner.Summary(ctx, ownerID, query)
	})
}

// Hourly defaults to today, so an unset date is not cached.
func (s *Service) Hourly(ctx context.Context, ownerID string, query types.DayQuery) ([]domain.HourBucket, error) {
	if query.Date == nil {
		return s.inner.Hourly(ctx, ownerID, query)
	}
	return cached(ctx, s, ownerID, "hourly", query, func() ([]domain.HourBucket, error) {
		return s.inner.Hourly(ctx, ownerID, query)
	})
}

// Categories depend on the catalog as well, so they are always computed.
func (s *Service) Categories(ctx context.Context, ownerID string, query types.RangeQuery) ([]domain.CategoryRevenue, error) {
	return s.inner.Categories(ctx, ownerID, query)
}

// OrdersChanged invalidates every cached report of the owner.
func (s *Service) OrdersChanged(ctx context.Context, ownerID string) {
	if s.rdb == nil || ownerID == "" {
		return
	}
	if err := s.rdb.Incr(ctx, versionKey(ownerID)).Err(); err != nil {
		s.lookups.WithLabelValues("invalidate", "error").Inc()
	}
}

func cached[T any](ctx context.Context, s *Service, ownerID, report string, query any, load func() (T, error)) (T, error) {
	if s.rdb == nil || ownerID == "" {
		return load()
	}
	key, err := s.key(ctx, ownerID, report, query)
	if err != nil {
		s.lookups.WithLabelValues(report, "error").Inc()
		return load()
	}
	if raw, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
		var value T
		if err := json.Unmarshal(raw, &value); err == nil {
			s.lookups.WithLabelValues(report, "hit").Inc()
			return value, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		s.lookups.WithLabelValues(report, "error").Inc()
	}
	s.lookups.WithLabelValues(report, "miss").Inc()

	value, err := load()
	if err != nil {
		return value, err
	}
	if payload, err := json.Marshal(value); err == nil {
		if err := s.rdb.Set(ctx, key, payload, s.ttl).Err(); err != nil {
			s.lookups.WithLabelValues(report, "error").Inc()
		}
	}
	return value, nil
}

func (s *Service) key(ctx context.Context, ownerID, report string, query any) (string, error) {
	version, err := s.rdb.Get(ctx, versionKey(ownerID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	encoded, err := json.Marshal(query)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(encoded)
	return fmt.Sprintf("%s:%s:v%d:%s:%s", keyPrefix, ownerID, version, report, hex.EncodeToString(sum[:8])), nil
}

func versionKey(ownerID string) string {
	return fmt.Sprintf("%s:%s:version", keyPrefix, ownerID)
}

var _ ports.Service = (*Service)(nil)
