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

	ordertypes "github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/application/types"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/domain"
	orderports "github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/ports"
)

const tracerName = "github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
type Service struct {
	inner   orderports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

// New wraps the core orders service.
func New(inner orderports.Service, opts ...Option) orderports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) Commit(ctx context.Context, input ordertypes.CommitOrderInput) (*ordertypes.CommitResult, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.Commit", trace.WithAttributes(
		attribute.String("owner.id", input.OwnerID),
		attribute.Int("order.lines", len(input.Items)),
		attribute.Bool("idempotency.key_present", input.IdempotencyKey != ""),
	))
	defer span.End()

	s.logInfo(ctx, "committing order", slog.String("owner.id", input.OwnerID), slog.Int("lines", len(input.Items)))
	result, err := s.inner.Commit(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to commit order", slog.String("owner.id", input.OwnerID))
	}
	span.SetAttributes(attribute.String("order.id", result.OrderID), attribute.Bool("order.replayed", result.Replayed))
	if result.Replayed {
		s.metrics.recordReplay(ctx)
	} else {
		s.metrics.recordCommit(ctx, len(input.Items))
	}
	s.logInfo(ctx, "order committed",
		slog.String("order.id", result.OrderID),
		slog.String("total", result.Total.StringFixed(2)),
		slog.Bool("replayed", result.Replayed))
	return result, nil
}

func (s *Service) Patch(ctx context.Context, ownerID, orderID string, input ordertypes.PatchOrderInput) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.Patch", trace.WithAttributes(attribute.String("order.id", orderID)))
	defer span.End()

	s.logInfo(ctx, "patching order", slog.String("order.id", orderID))
	result, err := s.inner.Patch(ctx, ownerID, orderID, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to patch order", slog.String("order.id", orderID))
	}
	s.metrics.recordMutation(ctx, "patch")
	s.logInfo(ctx, "order patched", slog.String("order.id", orderID), slog.String("status", string(result.Status)))
	return result, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, orderID string) error {
	ctx, span := s.tracer.Start(ctx, "OrdersService.Delete", trace.WithAttributes(attribute.String("order.id", orderID)))
	defer span.End()

	s.logInfo(ctx, "deleting order", slog.String("order.id", orderID))
	if err := s.inner.Delete(ctx, ownerID, orderID); err != nil {
		return s.handleError(ctx, span, err, "failed to delete order", slog.String("order.id", orderID))
	}
	s.metrics.recordMutation(ctx, "delete")
	s.logInfo(ctx, "order deleted", slog.String("order.id", orderID))
	return nil
}

func (s *Service) List(ctx context.Context, ownerID string, input ordertypes.ListOrdersInput) ([]*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.List", trace.WithAttributes(attribute.String("owner.id", ownerID)))
	defer span.End()

	result, err := s.inner.List(ctx, ownerID, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders", slog.String("owner.id", ownerID))
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	commits   metric.Int64Counter
	lines     metric.Int64Counter
	replays   metric.Int64Counter
	mutations metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	commits, _ := m.Int64Counter("orders.service.commits", metric.WithDescription("Number of committed orders"))
	lines, _ := m.Int64Counter("orders.service.lines", metric.WithDescription("Number of committed order lines"))
	replays, _ := m.Int64Counter("orders.service.idempotent_replays", metric.WithDescription("Checkouts answered from an idempotency key"))
	mutations, _ := m.Int64Counter("orders.service.mutations", metric.WithDescription("Number of order patches and deletes"))
	return serviceMetrics{commits: commits, lines: lines, replays: replays, mutations: mutations}
}

func (m serviceMetrics) recordCommit(ctx context.Context, lines int) {
	if m.commits != nil {
		m.commits.Add(ctx, 1)
	}
	if m.lines != nil {
		m.lines.Add(ctx, int64(lines))
	}
}

func (m serviceMetrics) recordReplay(ctx context.Context) {
	if m.replays != nil {
		m.replays.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordMutation(ctx context.Context, op string) {
	if m.mutations != nil {
		m.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", op)))
	}
}

var _ orderports.Service = (*Service)(nil)
