package billingserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	reporthttpmapper "github.com/Rajeshrr07/EiliyaBill/internal/domains/reporting/adapters/http/mapper"
	reporttypes "github.com/Rajeshrr07/EiliyaBill/internal/domains/reporting/application/types"
	reportports "github.com/Rajeshrr07/EiliyaBill/internal/domains/reporting/ports"
)

// ReportAPI serves the dashboard aggregations.
type ReportAPI struct {
	service reportports.Service
}

func NewReportAPI(service reportports.Service) ReportAPI {
	return ReportAPI{service: service}
}

// Get /orders/daily
// Daily sales series, zero-filled when both from and to are given
func (api *ReportAPI) DailySales(c *gin.Context) {
	query, ok := bindRange(c)
	if !ok {
		return
	}
	points, err := api.service.Daily(c.Request.Context(), ownerID(c), reporttypes.DailyQuery{From: query.From, To: query.To})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reporthttpmapper.FromDaily(points))
}

// Get /orders/top-products
func (api *ReportAPI) TopProducts(c *gin.Context) {
	var query reporttypes.TopProductsQuery
	var err error
	if query.Month, err = queryInt(c, "month"); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if query.Year, err = queryInt(c, "year"); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if query.Limit, err = queryInt(c, "limit"); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	ranks, err := api.service.TopProducts(c.Request.Context(), ownerID(c), query)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reporthttpmapper.FromTopProducts(ranks))
}

// Get /orders/hourly
func (api *ReportAPI) HourlySales(c *gin.Context) {
	day, err := queryDate(c, "date")
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	buckets, err := api.service.Hourly(c.Request.Context(), ownerID(c), reporttypes.DayQuery{Date: day})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reporthttpmapper.FromHourly(buckets))
}

// Get /orders/summary
func (api *ReportAPI) SalesSummary(c *gin.Context) {
	query, ok := bindRange(c)
	if !ok {
		return
	}
	summary, err := api.service.Summary(c.Request.Context(), ownerID(c), query)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reporthttpmapper.FromSummary(summary))
}

// Get /reports/categories
func (api *ReportAPI) CategoryRevenue(c *gin.Context) {
	query, ok := bindRange(c)
	if !ok {
		return
	}
	rows, err := api.service.Categories(c.Request.Context(), ownerID(c), query)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reporthttpmapper.FromCategories(rows))
}

func bindRange(c *gin.Context) (reporttypes.RangeQuery, bool) {
	from, err := queryDate(c, "from")
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return reporttypes.RangeQuery{}, false
	}
	to, err := queryDate(c, "to")
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return reporttypes.RangeQuery{}, false
	}
	return reporttypes.RangeQuery{From: from, To: to}, true
}
