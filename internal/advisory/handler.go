package advisory

import (
	"net/http"

	"traseu_backend/internal/models"
	"traseu_backend/platform/geo"
	"traseu_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// AdvisoriesRequest carries the detected countries and the route polyline.
type AdvisoriesRequest struct {
	Countries   []string    `json:"countries" binding:"required"`
	Coordinates []geo.Point `json:"coordinates"`
}

// AdvisoriesResponse lists the generated alerts, highest priority first.
type AdvisoriesResponse struct {
	Advisories []models.TravelAlert `json:"advisories"`
}

// Handler exposes the advisory generation endpoint.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Advisories handles POST /api/v1/travel/advisories.
func (h *Handler) Advisories(c *gin.Context) {
	var req AdvisoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "a country list is required", nil)
		return
	}

	alerts := h.svc.BuildAdvisories(req.Countries, req.Coordinates)
	httpkit.OK(c, AdvisoriesResponse{Advisories: alerts})
}
