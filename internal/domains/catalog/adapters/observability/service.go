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

	catalogtypes "github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/application/types"
	catalogports "github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/ports"
)

const tracerName = "github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog service with tracing, logging, and metrics.
type Service struct {
	inner   catalogports.Service
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

// New wraps the core catalog service.
func New(inner catalogports.Service, opts ...Option) catalogports.Service {
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

func (s *Service) List(ctx context.Context, ownerID string) ([]*catalogtypes.ProductProjection, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.List", trace.WithAttributes(attribute.String("owner.id", ownerID)))
	defer span.End()

	result, err := s.inner.List(ctx, ownerID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list products", slog.String("owner.id", ownerID))
	}
	span.SetAttributes(attribute.Int("products.count", len(result)))
	return result, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id string) (*catalogtypes.ProductProjection, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Get", trace.WithAttributes(attribute.String("product.id", id)))
	defer span.End()

	result, err := s.inner.Get(ctx, ownerID, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load product", slog.String("product.id", id))
	}
	return result, nil
}

func (s *Service) Create(ctx context.Context, ownerID string, input catalogtypes.ProductInput) (*catalogtypes.ProductProjection, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Create", trace.WithAttributes(attribute.String("owner.id", ownerID)))
	defer span.End()

	s.logInfo(ctx, "creating product", slog.String("owner.id", ownerID))
	result, err := s.inner.Create(ctx, ownerID, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create product", slog.String("owner.id", ownerID))
	}
	span.SetAttributes(attribute.String("product.id", result.Entity.ID))
	s.metrics.recordMutation(ctx, "create")
	s.logInfo(ctx, "product created", slog.String("product.id", result.Entity.ID), slog.String("category", result.Entity.Category))
	return result, nil
}

func (s *Service) Update(ctx context.Context, ownerID, id string, input catalogtypes.ProductInput) (*catalogtypes.ProductProjection, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Update", trace.WithAttributes(attribute.String("product.id", id)))
	defer span.End()

	s.logInfo(ctx, "updating product", slog.String("product.id", id))
	result, err := s.inner.Update(ctx, ownerID, id, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update product", slog.String("product.id", id))
	}
	s.metrics.recordMutation(ctx, "update")
	s.logInfo(ctx, "product updated", slog.String("product.id", id))
	return result, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Delete", trace.WithAttributes(attribute.String("product.id", id)))
	defer span.End()

	s.logInfo(ctx, "deleting product", slog.String("product.id", id))
	if err := s.inner.Delete(ctx, ownerID, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete product", slog.String("product.id", id))
	}
	s.metrics.recordMutation(ctx, "delete")
	s.logInfo(ctx, "product deleted", slog.String("product.id", id))
	return nil
}

func (s *Service) UploadImage(ctx context.Context, input catalogtypes.UploadImageInput) (*catalogtypes.ProductProjection, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.UploadImage",
		trace.WithAttributes(attribute.String("product.id", input.ProductID), attribute.String("content_type", input.ContentType)))
	defer span.End()

	s.logInfo(ctx, "uploading product image", slog.String("product.id", input.ProductID), slog.String("filename", input.Filename))
	result, err := s.inner.UploadImage(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to upload product image", slog.String("product.id", input.ProductID))
	}
	s.metrics.recordMutation(ctx, "image")
	s.logInfo(ctx, "product image stored", slog.String("product.id", input.ProductID), slog.String("image", result.Entity.ImageURL))
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
	mutations metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	mutations, _ := m.Int64Counter("catalog.service.mutations", metric.WithDescription("Number of catalog mutations"))
	return serviceMetrics{mutations: mutations}
}

func (m serviceMetrics) recordMutation(ctx context.Context, op string) {
	if m.mutations != nil {
		m.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", op)))
	}
}

var _ catalogports.Service = (*Service)(nil)
