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

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/checkout/application/types"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/checkout/domain"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/checkout/ports"
)

const tracerName = "github.com/Rajeshrr07/EiliyaBill/internal/domains/checkout/adapters/observability/service"

// Service decorates the register service with tracing, logging, and metrics.
type Service struct {
	inner     ports.Service
	tracer    trace.Tracer
	logger    *slog.Logger
	mutations metric.Int64Counter
	checkouts metric.Int64Counter
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
		s.mutations, _ = m.Int64Counter("checkout.service.cart_mutations", metric.WithDescription("Cart changes by operation"))
		s.checkouts, _ = m.Int64Counter("checkout.service.checkouts", metric.WithDescription("Registers checked out"))
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

func (s *Service) Get(ctx context.Context, ownerID, register string) (*domain.Cart, error) {
	ctx, span := s.start(ctx, "CheckoutService.Get", ownerID, register)
	defer span.End()

	cart, err := s.inner.Get(ctx, ownerID, register)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load cart", slog.String("register", register))
	}
	return cart, nil
}

func (s *Service) AddItem(ctx context.Context, ownerID, register, productID string) (*domain.Cart, error) {
	ctx, span := s.start(ctx, "CheckoutService.AddItem", ownerID, register, attribute.String("product.id", productID))
	defer span.End()

	cart, err := s.inner.AddItem(ctx, ownerID, register, productID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add cart item", slog.String("register", register), slog.String("product.id", productID))
	}
	s.recordMutation(ctx, "add")
	s.traceCart(span, cart)
	return cart, nil
}

func (s *Service) UpdateItem(ctx context.Context, ownerID, register, productID string, input types.UpdateItemInput) (*domain.Cart, error) {
	ctx, span := s.start(ctx, "CheckoutService.UpdateItem", ownerID, register, attribute.String("product.id", productID))
	defer span.End()

	cart, err := s.inner.UpdateItem(ctx, ownerID, register, productID, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update cart item", slog.String("register", register), slog.String("product.id", productID))
	}
	s.recordMutation(ctx, "update")
	s.traceCart(span, cart)
	return cart, nil
}

func (s *Service) RemoveItem(ctx context.Context, ownerID, register, productID string) (*domain.Cart, error) {
	ctx, span := s.start(ctx, "CheckoutService.RemoveItem", ownerID, register, attribute.String("product.id", productID))
	defer span.End()

	cart, err := s.inner.RemoveItem(ctx, ownerID, register, productID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to remove cart item", slog.String("register", register), slog.String("product.id", productID))
	}
	s.recordMutation(ctx, "remove")
	s.traceCart(span, cart)
	return cart, nil
}

func (s *Service) Clear(ctx context.Context, ownerID, register string) error {
	ctx, span := s.start(ctx, "CheckoutService.Clear", ownerID, register)
	defer span.End()

	if err := s.inner.Clear(ctx, ownerID, register); err != nil {
		return s.handleError(ctx, span, err, "failed to clear cart", slog.String("register", register))
	}
	s.recordMutation(ctx, "clear")
	return nil
}

func (s *Service) Checkout(ctx context.Context, ownerID, register string, input types.CheckoutInput) (*types.CheckoutResult, error) {
	ctx, span := s.start(ctx, "CheckoutService.Checkout", ownerID, register)
	defer span.End()

	s.logger.LogAttrs(ctx, slog.LevelInfo, "checking out register", slog.String("owner.id", ownerID), slog.String("register", register))
	result, err := s.inner.Checkout(ctx, ownerID, register, input)
	if err != nil {
		// result is set when the order was committed but the register was not cleared.
		return result, s.handleError(ctx, span, err, "checkout failed", slog.String("register", register))
	}
	span.SetAttributes(attribute.String("order.id", result.OrderID), attribute.Bool("order.replayed", result.Replayed))
	if s.checkouts != nil {
		s.checkouts.Add(ctx, 1)
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "register checked out",
		slog.String("register", register),
		slog.String("order.id", result.OrderID),
		slog.String("total", result.Total.StringFixed(2)))
	return result, nil
}

func (s *Service) start(ctx context.Context, name, ownerID, register string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String("owner.id", ownerID), attribute.String("cart.register", register))
	return s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) traceCart(span trace.Span, cart *domain.Cart) {
	if cart == nil {
		return
	}
	span.SetAttributes(
		attribute.Int("cart.items", cart.ItemCount()),
		attribute.String("cart.total", cart.Total().StringFixed(2)),
	)
}

func (s *Service) recordMutation(ctx context.Context, op string) {
	if s.mutations != nil {
		s.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", op)))
	}
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	return err
}

var _ ports.Service = (*Service)(nil)
