package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/solarmap-backend-go/internal/service"
	"github.com/jengzang/solarmap-backend-go/pkg/response"
)

// GeoJSONContentType is the media type of the boundary document
const GeoJSONContentType = "application/geo+json"

// ParcelHandler handles HTTP requests for parcel data
type ParcelHandler struct {
	service *service.DashboardService
}

// NewParcelHandler creates a new parcel handler
func NewParcelHandler(service *service.DashboardService) *ParcelHandler {
	return &ParcelHandler{service: service}
}

// GetGeoJSON handles GET /api/v1/parcels/geojson
func (h *ParcelHandler) GetGeoJSON(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, GeoJSONContentType, h.service.GeoJSON())
}

// GetParcel handles GET /api/v1/parcels/:id
func (h *ParcelHandler) GetParcel(c *gin.Context) {
	detail, err := h.service.Parcel(c.Param("id"))
	if errors.Is(err, service.ErrParcelNotFound) {
		response.NotFound(c, "Parcel not found")
		return
	}
	if err != nil {
		response.InternalError(c, "Failed to get parcel", err)
		return
	}

	response.Success(c, detail)
}
