package billingserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	groceryhttpmapper "github.com/Rajeshrr07/EiliyaBill/internal/domains/groceries/adapters/http/mapper"
	grocerytypes "github.com/Rajeshrr07/EiliyaBill/internal/domains/groceries/application/types"
	groceryports "github.com/Rajeshrr07/EiliyaBill/internal/domains/groceries/ports"
)

// GroceryAPI serves the owner's grocery expense log.
type GroceryAPI struct {
	service groceryports.Service
}

func NewGroceryAPI(service groceryports.Service) GroceryAPI {
	return GroceryAPI{service: service}
}

// Get /groceries
// Optional ?month=YYYY-MM
func (api *GroceryAPI) ListGroceries(c *gin.Context) {
	month, err := queryString(c, "month")
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	entries, err := api.service.List(c.Request.Context(), ownerID(c), grocerytypes.ListInput{Month: month})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": groceryhttpmapper.FromEntries(entries)})
}

// Post /groceries
// Accepts one entry or a batch under items
func (api *GroceryAPI) AddGroceries(c *gin.Context) {
	var payload groceryhttpmapper.CreateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	created, err := api.service.Create(c.Request.Context(), ownerID(c), groceryhttpmapper.ToCreateInputs(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": groceryhttpmapper.FromEntries(created)})
}

// Patch /groceries
func (api *GroceryAPI) UpdateGrocery(c *gin.Context) {
	var payload groceryhttpmapper.UpdateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if payload.ID == "" {
		respondBadRequest(c, "id is required")
		return
	}
	updated, err := api.service.Update(c.Request.Context(), ownerID(c), payload.ID, groceryhttpmapper.ToUpdateInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": groceryhttpmapper.FromEntry(updated)})
}

// Delete /groceries
func (api *GroceryAPI) DeleteGrocery(c *gin.Context) {
	var payload groceryhttpmapper.DeleteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if payload.ID == "" {
		respondBadRequest(c, "id is required")
		return
	}
	if err := api.service.Delete(c.Request.Context(), ownerID(c), payload.ID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Get /groceries/summary
// ?month=YYYY-MM or ?days=N; defaults to the current month
func (api *GroceryAPI) GrocerySummary(c *gin.Context) {
	month, err := queryString(c, "month")
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	days, err := queryInt(c, "days")
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	summary, err := api.service.Summary(c.Request.Context(), ownerID(c), grocerytypes.SummaryQuery{Month: month, Days: days})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, groceryhttpmapper.FromSummary(summary))
}
