package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "ramadanwatch/internal/errors"
	"ramadanwatch/internal/pagination"
	"ramadanwatch/internal/services"
)

// DashboardHandler handles the price dashboard endpoints
type DashboardHandler struct {
	dashboardService services.DashboardServicer
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDataset handles dataset metadata retrieval
// @Summary     Dataset metadata
// @Description Source, available weeks and the sample-data flag of the dataset being served
// @Tags        dashboard
// @Produce     json
// @Success     200 {object} services.DatasetInfo
// @Router      /dataset [get]
func (h *DashboardHandler) GetDataset(c *gin.Context) {
	c.JSON(http.StatusOK, h.dashboardService.Info())
}

// ListProducts handles the evaluated product list
// @Summary     List products
// @Description Products evaluated at a week, filtered by category, in display order
// @Tags        dashboard
// @Produce     json
// @Param       week      query int    false "Week number (default: latest)"
// @Param       category  query string false "all, increase, decrease or stable"
// @Param       page      query int    false "Page number"
// @Param       page_size query int    false "Items per page"
// @Success     200 {object} pagination.PageResponse[pricing.PriceChange]
// @Failure     400 {object} ErrorResponse "Invalid week, category or page"
// @Router      /products [get]
func (h *DashboardHandler) ListProducts(c *gin.Context) {
	week, err := parseWeek(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	category, _, err := bindViewQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.dashboardService.ListProducts(week, category, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetProduct handles a single product evaluation
// @Summary     Get a product
// @Description One product evaluated at a week, including the week-over-week change
// @Tags        dashboard
// @Produce     json
// @Param       id   path  string true  "Product ID"
// @Param       week query int    false "Week number (default: latest)"
// @Success     200 {object} pricing.PriceChange
// @Failure     400 {object} ErrorResponse "Invalid week"
// @Failure     404 {object} ErrorResponse "Product not found"
// @Router      /products/{id} [get]
func (h *DashboardHandler) GetProduct(c *gin.Context) {
	week, err := parseWeek(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	product, err := h.dashboardService.GetProduct(c.Param("id"), week)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// GetSummary handles the KPI summary
// @Summary     KPI summary
// @Description Direction counts, largest moves and reference adherence at a week
// @Tags        dashboard
// @Produce     json
// @Param       week     query int    false "Week number (default: latest)"
// @Param       category query string false "all, increase, decrease or stable"
// @Success     200 {object} services.SummaryView
// @Failure     400 {object} ErrorResponse "Invalid week or category"
// @Router      /summary [get]
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	week, err := parseWeek(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	category, _, err := bindViewQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.dashboardService.Summary(week, category)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetTicker handles the price ticker
// @Summary     Price ticker
// @Description Latest observed price of every product up to a week
// @Tags        dashboard
// @Produce     json
// @Param       week query int false "Week number (default: latest)"
// @Success     200 {array}  pricing.TickerEntry
// @Failure     400 {object} ErrorResponse "Invalid week"
// @Router      /ticker [get]
func (h *DashboardHandler) GetTicker(c *gin.Context) {
	week, err := parseWeek(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entries, err := h.dashboardService.Ticker(week)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ticker": entries})
}

// GetChart handles the weekly chart series
// @Summary     Chart series
// @Description One series per product over weeks 1 through the requested week
// @Tags        dashboard
// @Produce     json
// @Param       week query int false "Last week to include (default: latest)"
// @Success     200 {array}  pricing.Series
// @Failure     400 {object} ErrorResponse "Invalid week"
// @Router      /chart [get]
func (h *DashboardHandler) GetChart(c *gin.Context) {
	week, err := parseWeek(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	series, err := h.dashboardService.Chart(week)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"series": series})
}

// Export handles the spreadsheet download
// @Summary     Export prices
// @Description Download the filtered products at a week as XLSX or CSV
// @Tags        dashboard
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce     text/csv
// @Param       week     query int    false "Week number (default: latest)"
// @Param       category query string false "all, increase, decrease or stable"
// @Param       format   query string false "xlsx (default) or csv"
// @Success     200 {file}   file
// @Failure     400 {object} ErrorResponse "Invalid week, category or format"
// @Failure     500 {object} ErrorResponse "Export failed"
// @Router      /export [get]
func (h *DashboardHandler) Export(c *gin.Context) {
	week, err := parseWeek(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	category, format, err := bindViewQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	file, err := h.dashboardService.Export(week, category, format)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.FileName))
	c.Data(http.StatusOK, file.ContentType, file.Body)
}

// Reload handles a manual dataset refresh
// @Summary     Reload dataset
// @Description Reload the dataset from its source; falls back to sample data on failure
// @Tags        dashboard
// @Produce     json
// @Security    ApiKeyAuth
// @Success     200 {object} services.DatasetInfo
// @Failure     401 {object} ErrorResponse "Invalid or missing API key"
// @Failure     503 {object} ErrorResponse "Reload not configured"
// @Router      /reload [post]
func (h *DashboardHandler) Reload(c *gin.Context) {
	info, err := h.dashboardService.Reload(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dataset": info})
}

// RegisterRoutes mounts the dashboard endpoints on rg. reloadAuth guards the
// reload endpoint.
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup, reloadAuth gin.HandlerFunc) {
	rg.GET("/dataset", h.GetDataset)
	rg.GET("/products", h.ListProducts)
	rg.GET("/products/:id", h.GetProduct)
	rg.GET("/summary", h.GetSummary)
	rg.GET("/ticker", h.GetTicker)
	rg.GET("/chart", h.GetChart)
	rg.GET("/export", h.Export)
	rg.POST("/reload", reloadAuth, h.Reload)
}
