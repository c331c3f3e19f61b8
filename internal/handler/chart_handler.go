package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/solarmap-backend-go/internal/models"
	"github.com/jengzang/solarmap-backend-go/internal/render"
	"github.com/jengzang/solarmap-backend-go/internal/service"
	"github.com/jengzang/solarmap-backend-go/pkg/response"
)

// ChartHandler handles PNG chart exports
type ChartHandler struct {
	service *service.DashboardService
}

// NewChartHandler creates a new chart handler
func NewChartHandler(service *service.DashboardService) *ChartHandler {
	return &ChartHandler{service: service}
}

// GetChart handles GET /api/v1/charts/:file where file is <kind>.png
func (h *ChartHandler) GetChart(c *gin.Context) {
	kind, ok := strings.CutSuffix(c.Param("file"), ".png")
	if !ok {
		response.NotFound(c, "Chart not found")
		return
	}

	var q models.ChartQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	data, err := h.service.ChartPNG(kind, q)
	switch {
	case errors.Is(err, service.ErrUnknownChart):
		response.NotFound(c, "Chart not found")
		return
	case errors.Is(err, render.ErrEmptyChart):
		response.Error(c, http.StatusUnprocessableEntity, "No data for this chart", err)
		return
	case err != nil:
		response.InternalError(c, "Failed to render chart", err)
		return
	}

	c.Data(http.StatusOK, "image/png", data)
}
