package billingserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	orderhttpmapper "github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/adapters/http/mapper"
	ordertypes "github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/application/types"
	orderports "github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/ports"
)

// IdempotencyKeyHeader lets the register retry a checkout safely.
const IdempotencyKeyHeader = "Idempotency-Key"

// OrderAPI wires HTTP transport with the orders service and commit workflows.
type OrderAPI struct {
	service   orderports.Service
	workflows orderports.WorkflowOrchestrator
	loc       *time.Location
}

// NewOrderAPI creates an OrderAPI. Dates in listings are rendered in loc.
func NewOrderAPI(service orderports.Service, workflows orderports.WorkflowOrchestrator, loc *time.Location) OrderAPI {
	if loc == nil {
		loc = time.UTC
	}
	return OrderAPI{service: service, workflows: workflows, loc: loc}
}

// Get /orders
// Lists orders newest first, optionally for a single ?date=YYYY-MM-DD
func (api *OrderAPI) ListOrders(c *gin.Context) {
	day, err := queryDate(c, "date")
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	var input ordertypes.ListOrdersInput
	if day != nil {
		input.From = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, api.loc)
		input.To = input.From.AddDate(0, 0, 1)
	}
	orders, err := api.service.List(c.Request.Context(), ownerID(c), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromOrders(orders, api.loc))
}

// Post /orders
// Commits the submitted cart as one order
func (api *OrderAPI) CommitOrder(c *gin.Context) {
	var payload orderhttpmapper.CommitRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
	result, err := api.commit(c.Request.Context(), orderhttpmapper.ToCommitInput(ownerID(c), key, payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if result.Replayed {
		c.Header("Idempotent-Replayed", "true")
	}
	c.JSON(http.StatusCreated, orderhttpmapper.CommitResponse{Success: true, OrderID: result.OrderID})
}

func (api *OrderAPI) commit(ctx context.Context, input ordertypes.CommitOrderInput) (*ordertypes.CommitResult, error) {
	if api.workflows != nil {
		return api.workflows.CommitOrder(ctx, input)
	}
	return api.service.Commit(ctx, input)
}

// Patch /orders
func (api *OrderAPI) PatchOrder(c *gin.Context) {
	var payload orderhttpmapper.PatchRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if payload.OrderID == "" {
		respondBadRequest(c, "orderId is required")
		return
	}
	updated, err := api.service.Patch(c.Request.Context(), ownerID(c), payload.OrderID, orderhttpmapper.ToPatchInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": orderhttpmapper.FromOrder(updated, api.loc)})
}

// Delete /orders
// Removes the order lines and then the header
func (api *OrderAPI) DeleteOrder(c *gin.Context) {
	var payload orderhttpmapper.DeleteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if payload.OrderID == "" {
		respondBadRequest(c, "orderId is required")
		return
	}
	if err := api.service.Delete(c.Request.Context(), ownerID(c), payload.OrderID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
