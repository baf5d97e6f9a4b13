package borders

import (
	"net/http"

	"traseu_backend/platform/geo"
	"traseu_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// CountriesRequest carries the polyline of a computed route.
type CountriesRequest struct {
	Coordinates []geo.Point `json:"coordinates" binding:"required,min=1"`
}

// CountriesResponse lists traversed countries in travel order.
type CountriesResponse struct {
	Countries     []string `json:"countries"`
	FailedLookups int      `json:"failedLookups"`
}

// Handler exposes the country detection endpoint.
type Handler struct {
	detector *Detector
}

func NewHandler(detector *Detector) *Handler {
	return &Handler{detector: detector}
}

// Countries handles POST /api/v1/travel/countries.
func (h *Handler) Countries(c *gin.Context) {
	var req CountriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "a polyline with at least 1 coordinate is required", nil)
		return
	}

	countries, failed := h.detector.DetectCountries(c.Request.Context(), req.Coordinates)
	httpkit.OK(c, CountriesResponse{Countries: countries, FailedLookups: failed})
}
