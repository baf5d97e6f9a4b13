package geocode

import (
	"net/http"

	"traseu_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler exposes the location search endpoint.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Search handles GET /api/v1/geocode?q=...
func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "query 'q' is required (min 2 chars)", nil)
		return
	}

	results := h.svc.Resolve(c.Request.Context(), req.Query)
	httpkit.OK(c, SearchResponse{Results: results})
}
