package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	ordertypes "github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/application/types"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/domain"
)

type stubService struct {
	commitErr error
}

func (s stubService) Commit(_ context.Context, input ordertypes.CommitOrderInput) (*ordertypes.CommitResult, error) {
	if s.commitErr != nil {
		return nil, s.commitErr
	}
	return &ordertypes.CommitResult{OrderID: "o-1", Total: input.Total, State: domain.CommitCommitted}, nil
}

func (stubService) Patch(context.Context, string, string, ordertypes.PatchOrderInput) (*domain.Order, error) {
	return &domain.Order{ID: "o-1", Status: domain.StatusPaid}, nil
}

func (stubService) Delete(context.Context, string, string) error { return nil }

func (stubService) List(context.Context, string, ordertypes.ListOrdersInput) ([]*domain.Order, error) {
	return []*domain.Order{{ID: "o-1"}}, nil
}

func TestService_CommitRecordsSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	svc := New(stubService{}, WithTracer(provider.Tracer("test")))

	result, err := svc.Commit(context.Background(), ordertypes.CommitOrderInput{OwnerID: "owner-1", Total: decimal.NewFromInt(280)})
	require.NoError(t, err)
	assert.Equal(t, "o-1", result.OrderID)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "OrdersService.Commit", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
}

func TestService_CommitFailureMarksSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	boom := errors.New("datastore unavailable")
	svc := New(stubService{commitErr: boom}, WithTracer(provider.Tracer("test")))

	_, err := svc.Commit(context.Background(), ordertypes.CommitOrderInput{OwnerID: "owner-1"})
	require.ErrorIs(t, err, boom)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "datastore unavailable", spans[0].Status().Description)
}
