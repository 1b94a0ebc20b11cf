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

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/checkout/application/types"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/checkout/domain"
)

type stubService struct {
	checkoutErr error
}

func (stubService) Get(context.Context, string, string) (*domain.Cart, error) {
	return domain.NewCart("c-1", "owner-1", "front")
}

func (stubService) AddItem(_ context.Context, ownerID, register, productID string) (*domain.Cart, error) {
	c, err := domain.NewCart("c-1", ownerID, register)
	if err != nil {
		return nil, err
	}
	return c, c.AddItem(domain.ProductSnapshot{ID: productID, Name: "Tea", Price: decimal.NewFromInt(80)})
}

func (s stubService) UpdateItem(context.Context, string, string, string, types.UpdateItemInput) (*domain.Cart, error) {
	return nil, domain.ErrLineNotFound
}

func (stubService) RemoveItem(context.Context, string, string, string) (*domain.Cart, error) {
	return domain.NewCart("c-1", "owner-1", "front")
}

func (stubService) Clear(context.Context, string, string) error { return nil }

func (s stubService) Checkout(context.Context, string, string, types.CheckoutInput) (*types.CheckoutResult, error) {
	if s.checkoutErr != nil {
		return &types.CheckoutResult{OrderID: "o-1"}, s.checkoutErr
	}
	return &types.CheckoutResult{OrderID: "o-1", Total: decimal.NewFromInt(80)}, nil
}

func TestService_AddItemRecordsCartAttributes(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	svc := New(stubService{}, WithTracer(provider.Tracer("test")))

	_, err := svc.AddItem(context.Background(), "owner-1", "front", "tea")
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "CheckoutService.AddItem", spans[0].Name())
	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "front", attrs["cart.register"])
	assert.Equal(t, "80.00", attrs["cart.total"])
	assert.Equal(t, "1", attrs["cart.items"])
}

func TestService_UpdateFailureMarksSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	svc := New(stubService{}, WithTracer(provider.Tracer("test")))

	_, err := svc.UpdateItem(context.Background(), "owner-1", "front", "tea", types.UpdateItemInput{})
	require.ErrorIs(t, err, domain.ErrLineNotFound)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestService_CheckoutKeepsPartialResult(t *testing.T) {
	svc := New(stubService{checkoutErr: errors.New("register was not cleared")})

	result, err := svc.Checkout(context.Background(), "owner-1", "front", types.CheckoutInput{})
	require.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "o-1", result.OrderID)
}
