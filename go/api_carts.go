package billingserver

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	checkouthttpmapper "github.com/Rajeshrr07/EiliyaBill/internal/domains/checkout/adapters/http/mapper"
	checkoutports "github.com/Rajeshrr07/EiliyaBill/internal/domains/checkout/ports"
)

// CartAPI serves the server-side registers.
type CartAPI struct {
	service checkoutports.Service
}

func NewCartAPI(service checkoutports.Service) CartAPI {
	return CartAPI{service: service}
}

// Get /carts/:register
func (api *CartAPI) GetCart(c *gin.Context) {
	cart, err := api.service.Get(c.Request.Context(), ownerID(c), c.Param("register"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, checkouthttpmapper.FromCart(cart))
}

// Post /carts/:register/items
// Adds one unit of a catalog product
func (api *CartAPI) AddItem(c *gin.Context) {
	var payload checkouthttpmapper.AddItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if payload.ProductID == "" {
		respondBadRequest(c, "productId is required")
		return
	}
	cart, err := api.service.AddItem(c.Request.Context(), ownerID(c), c.Param("register"), payload.ProductID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, checkouthttpmapper.FromCart(cart))
}

// Patch /carts/:register/items/:productId
func (api *CartAPI) UpdateItem(c *gin.Context) {
	var payload checkouthttpmapper.UpdateItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	cart, err := api.service.UpdateItem(c.Request.Context(), ownerID(c), c.Param("register"), c.Param("productId"),
		checkouthttpmapper.ToUpdateItemInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, checkouthttpmapper.FromCart(cart))
}

// Delete /carts/:register/items/:productId
func (api *CartAPI) RemoveItem(c *gin.Context) {
	cart, err := api.service.RemoveItem(c.Request.Context(), ownerID(c), c.Param("register"), c.Param("productId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, checkouthttpmapper.FromCart(cart))
}

// Delete /carts/:register
func (api *CartAPI) ClearCart(c *gin.Context) {
	if err := api.service.Clear(c.Request.Context(), ownerID(c), c.Param("register")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Post /carts/:register/checkout
// Commits the register as an order and clears it
func (api *CartAPI) Checkout(c *gin.Context) {
	var payload checkouthttpmapper.CheckoutRequest
	if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
	result, err := api.service.Checkout(c.Request.Context(), ownerID(c), c.Param("register"),
		checkouthttpmapper.ToCheckoutInput(payload, key))
	if err != nil {
		if result == nil {
			respondServiceError(c, err)
			return
		}
		// The order is committed; only clearing the register failed.
		_ = c.Error(err)
	}
	c.JSON(http.StatusCreated, checkouthttpmapper.FromCheckout(result))
}
