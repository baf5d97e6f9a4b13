package poi

import (
	"net/http"

	"traseu_backend/internal/models"
	"traseu_backend/platform/geo"
	"traseu_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// POIsRequest carries the polyline of a computed route.
type POIsRequest struct {
	Coordinates []geo.Point `json:"coordinates" binding:"required,min=2"`
}

// POIsResponse lists the aggregated stops, closest to the start first.
type POIsResponse struct {
	POIs          []models.RoutePOI `json:"pois"`
	FailedSamples int               `json:"failedSamples"`
}

// Handler exposes the POI enrichment endpoint.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// POIs handles POST /api/v1/travel/pois.
func (h *Handler) POIs(c *gin.Context) {
	var req POIsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "a polyline with at least 2 coordinates is required", nil)
		return
	}

	pois, failed := h.svc.FindPOIs(c.Request.Context(), req.Coordinates)
	httpkit.OK(c, POIsResponse{POIs: pois, FailedSamples: failed})
}
