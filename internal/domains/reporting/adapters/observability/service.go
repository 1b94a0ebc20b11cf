package observability

import (
	"context"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/reporting/application/types"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/reporting/domain"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/reporting/ports"
)

const tracerName = "github.com/Rajeshrr07/EiliyaBill/internal/domains/reporting/adapters/observability/service"

// Service decorates the reporting service with tracing, logging, and metrics.
type Service struct {
	inner    ports.Service
	tracer   trace.Tracer
	logger   *slog.Logger
	queries  metric.Int64Counter
	duration metric.Float64Histogram
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		if m == nil {
			return
		}
		s.queries, _ = m.Int64Counter("reporting.service.queries", metric.WithDescription("Report queries by report and outcome"))
		s.duration, _ = m.Float64Histogram("reporting.service.duration", metric.WithDescription("Report aggregation latency"), metric.WithUnit("ms"))
	}
}

func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:  inner,
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

func (s *Service) Daily(ctx context.Context, ownerID string, query types.DailyQuery) ([]domain.DayPoint, error) {
	return observe(ctx, s, "Daily", ownerID, func(ctx context.Context) ([]domain.DayPoint, error) {
		return s.inner.Daily(ctx, ownerID, query)
	})
}

func (s *Service) TopProducts(ctx context.Context, ownerID string, query types.TopProductsQuery) ([]domain.ProductRank, error) {
	return observe(ctx, s, "TopProducts", ownerID, func(ctx context.Context) ([]domain.ProductRank, error) {
		return s.inner.TopProducts(ctx, ownerID, query)
	}, attribute.Int("report.month", query.Month), attribute.Int("report.year", query.Year), attribute.Int("report.limit", query.Limit))
}

func (s *Service) Summary(ctx context.Context, ownerID string, query types.RangeQuery) (*domain.Summary, error) {
	return observe(ctx, s, "Summary", ownerID, func(ctx context.Context) (*domain.Summary, error) {
		return s.inner.Summary(ctx, ownerID, query)
	})
}

func (s *Service) Hourly(ctx context.Context, ownerID string, query types.DayQuery) ([]domain.HourBucket, error) {
	return observe(ctx, s, "Hourly", ownerID, func(ctx context.Context) ([]domain.HourBucket, error) {
		return s.inner.Hourly(ctx, ownerID, query)
	})
}

func (s *Service) Categories(ctx context.Context, ownerID string, query types.RangeQuery) ([]domain.CategoryRevenue, error) {
	return observe(ctx, s, "Categories", ownerID, func(ctx context.Context) ([]domain.CategoryRevenue, error) {
		return s.inner.Categories(ctx, ownerID, query)
	})
}

func observe[T any](ctx context.Context, s *Service, report, ownerID string, run func(context.Context) (T, error), attrs ...attribute.KeyValue) (T, error) {
	attrs = append(attrs, attribute.String("owner.id", ownerID))
	ctx, span := s.tracer.Start(ctx, "ReportingService."+report, trace.WithAttributes(attrs...))
	defer span.End()

	started := time.Now()
	result, err := run(ctx)
	elapsed := float64(time.Since(started).Microseconds()) / 1000

	outcome := "ok"
	if err != nil {
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.LogAttrs(ctx, slog.LevelError, "report failed",
			slog.String("report", report),
			slog.String("owner.id", ownerID),
			slog.String("error", err.Error()))
	} else {
		s.logger.LogAttrs(ctx, slog.LevelDebug, "report computed",
			slog.String("report", report),
			slog.Float64("elapsed_ms", elapsed))
	}
	labels := metric.WithAttributes(attribute.String("report", report), attribute.String("outcome", outcome))
	if s.queries != nil {
		s.queries.Add(ctx, 1, labels)
	}
	if s.duration != nil {
		s.duration.Record(ctx, elapsed, labels)
	}
	return result, err
}

var _ ports.Service = (*Service)(nil)
