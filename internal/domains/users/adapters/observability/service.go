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

	userdomain "github.com/Rajeshrr07/EiliyaBill/internal/domains/users/domain"
	userports "github.com/Rajeshrr07/EiliyaBill/internal/domains/users/ports"
)

const tracerName = "github.com/Rajeshrr07/EiliyaBill/internal/domains/users/adapters/observability/service"

// Service decorates the identity service with tracing, logging, and metrics.
type Service struct {
	inner   userports.Service
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

// New wraps the core identity service.
func New(inner userports.Service, opts ...Option) userports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
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
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

func (s *Service) Signup(ctx context.Context, input userports.SignupInput) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Signup")
	defer span.End()
	s.logInfo(ctx, "registering user", slog.String("store", input.StoreName))
	result, err := s.inner.Signup(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to register user")
	}
	span.SetAttributes(attribute.String("user.id", result.ID))
	s.metrics.recordSignup(ctx)
	s.logInfo(ctx, "user registered", slog.String("user.id", result.ID))
	return result, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*userports.LoginResult, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Login")
	defer span.End()
	result, err := s.inner.Login(ctx, email, password)
	if err != nil {
		s.metrics.recordLogin(ctx, false)
		return nil, s.handleError(ctx, span, err, "login failed")
	}
	s.metrics.recordLogin(ctx, true)
	span.SetAttributes(attribute.String("user.id", result.User.ID), attribute.String("session.id", result.Session.ID))
	s.logInfo(ctx, "user logged in", slog.String("user.id", result.User.ID), slog.String("session.id", result.Session.ID))
	return result, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	ctx, span := s.tracer.Start(ctx, "UserService.Logout")
	defer span.End()
	if err := s.inner.Logout(ctx, token); err != nil {
		return s.handleError(ctx, span, err, "logout failed")
	}
	return nil
}

func (s *Service) Profile(ctx context.Context, userID string) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Profile", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()
	result, err := s.inner.Profile(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load profile", slog.String("user.id", userID))
	}
	return result, nil
}

func (s *Service) ResetPassword(ctx context.Context, email, newPassword string) error {
	ctx, span := s.tracer.Start(ctx, "UserService.ResetPassword")
	defer span.End()
	if err := s.inner.ResetPassword(ctx, email, newPassword); err != nil {
		return s.handleError(ctx, span, err, "password reset failed")
	}
	s.metrics.recordReset(ctx)
	s.logInfo(ctx, "password reset")
	return nil
}

// Resolve runs on every scoped request, so failures are traced but not logged.
func (s *Service) Resolve(ctx context.Context, token string) (userports.TokenClaims, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Resolve")
	defer span.End()
	claims, err := s.inner.Resolve(ctx, token)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return userports.TokenClaims{}, err
	}
	span.SetAttributes(attribute.String("user.id", claims.UserID))
	return claims, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
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

type serviceMetrics struct {
	signups metric.Int64Counter
	logins  metric.Int64Counter
	resets  metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	signups, _ := m.Int64Counter("users.service.signups", metric.WithDescription("Number of registered users"))
	logins, _ := m.Int64Counter("users.service.logins", metric.WithDescription("Number of login attempts"))
	resets, _ := m.Int64Counter("users.service.password_resets", metric.WithDescription("Number of password resets"))
	return serviceMetrics{signups: signups, logins: logins, resets: resets}
}

func (m serviceMetrics) recordSignup(ctx context.Context) {
	if m.signups != nil {
		m.signups.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordLogin(ctx context.Context, ok bool) {
	if m.logins != nil {
		m.logins.Add(ctx, 1, metric.WithAttributes(attribute.Bool("login.success", ok)))
	}
}

func (m serviceMetrics) recordReset(ctx context.Context) {
	if m.resets != nil {
		m.resets.Add(ctx, 1)
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ userports.Service = (*Service)(nil)
