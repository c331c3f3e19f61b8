package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/solarmap-backend-go/internal/models"
	"github.com/jengzang/solarmap-backend-go/internal/service"
	"github.com/jengzang/solarmap-backend-go/internal/web"
	"github.com/jengzang/solarmap-backend-go/pkg/response"
)

// DashboardHandler handles HTTP requests for the dashboard page and its updates
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Index handles GET /
func (h *DashboardHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, web.IndexTemplate, h.service.Layout())
}

// GetLayout handles GET /api/v1/dashboard/layout
func (h *DashboardHandler) GetLayout(c *gin.Context) {
	response.Success(c, h.service.Layout())
}

// Update handles POST /api/v1/dashboard/update
func (h *DashboardHandler) Update(c *gin.Context) {
	var req models.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid update request", err)
		return
	}

	response.Success(c, h.service.Update(req))
}
