package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/groceries/application/types"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/groceries/domain"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/groceries/ports"
)

const tracerName = "github.com/Rajeshrr07/EiliyaBill/internal/domains/groceries/adapters/observability/service"

// Service decorates the groceries service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	entries metric.Int64Counter
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
		if m != nil {
			s.entries, _ = m.Int64Counter("groceries.service.entries", metric.WithDescription("Grocery entries changed by operation"))
		}
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

func (s *Service) List(ctx context.Context, ownerID string, input types.ListInput) ([]*domain.Entry, error) {
	ctx, span := s.tracer.Start(ctx, "GroceriesService.List", trace.WithAttributes(
		attribute.String("owner.id", ownerID),
		attribute.String("groceries.month", input.Month),
	))
	defer span.End()

	result, err := s.inner.List(ctx, ownerID, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list groceries", slog.String("owner.id", ownerID))
	}
	span.SetAttributes(attribute.Int("groceries.count", len(result)))
	return result, nil
}

func (s *Service) Create(ctx context.Context, ownerID string, inputs []types.CreateInput) ([]*domain.Entry, error) {
	ctx, span := s.tracer.Start(ctx, "GroceriesService.Create", trace.WithAttributes(
		attribute.String("owner.id", ownerID),
		attribute.Int("groceries.batch", len(inputs)),
	))
	defer span.End()

	result, err := s.inner.Create(ctx, ownerID, inputs)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add groceries", slog.String("owner.id", ownerID))
	}
	s.record(ctx, "create", len(result))
	s.logger.LogAttrs(ctx, slog.LevelInfo, "groceries added", slog.String("owner.id", ownerID), slog.Int("count", len(result)))
	return result, nil
}

func (s *Service) Update(ctx context.Context, ownerID, id string, input types.UpdateInput) (*domain.Entry, error) {
	ctx, span := s.tracer.Start(ctx, "GroceriesService.Update", trace.WithAttributes(attribute.String("grocery.id", id)))
	defer span.End()

	result, err := s.inner.Update(ctx, ownerID, id, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update grocery", slog.String("grocery.id", id))
	}
	s.record(ctx, "update", 1)
	return result, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	ctx, span := s.tracer.Start(ctx, "GroceriesService.Delete", trace.WithAttributes(attribute.String("grocery.id", id)))
	defer span.End()

	if err := s.inner.Delete(ctx, ownerID, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete grocery", slog.String("grocery.id", id))
	}
	s.record(ctx, "delete", 1)
	return nil
}

func (s *Service) Summary(ctx context.Context, ownerID string, query types.SummaryQuery) (*types.Summary, error) {
	ctx, span := s.tracer.Start(ctx, "GroceriesService.Summary", trace.WithAttributes(
		attribute.String("owner.id", ownerID),
		attribute.String("groceries.month", query.Month),
		attribute.Int("groceries.days", query.Days),
	))
	defer span.End()

	result, err := s.inner.Summary(ctx, ownerID, query)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to summarize groceries", slog.String("owner.id", ownerID))
	}
	return result, nil
}

func (s *Service) record(ctx context.Context, op string, n int) {
	if s.entries != nil {
		s.entries.Add(ctx, int64(n), metric.WithAttributes(attribute.String("operation", op)))
	}
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.logger.LogAttrs(ctx, slog.LevelError, msg, append(attrs, slog.String("error", err.Error()))...)
	return err
}

var _ ports.Service = (*Service)(nil)
