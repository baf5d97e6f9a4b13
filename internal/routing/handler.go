package routing

import (
	"net/http"
	"strconv"

	"traseu_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler exposes the route planning endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Plan handles POST /api/v1/routes/plan.
func (h *Handler) Plan(c *gin.Context) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "both endpoints with coordinates are required", nil)
		return
	}

	result, err := h.svc.ComputeRoute(c.Request.Context(), req.From, req.To)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// Recent handles GET /api/v1/routes/recent?n=...
func (h *Handler) Recent(c *gin.Context) {
	n, err := strconv.Atoi(c.DefaultQuery("n", "10"))
	if err != nil || n < 1 {
		n = 10
	}

	httpkit.OK(c, gin.H{"routes": h.svc.RecentRoutes(n)})
}

// Summarize handles POST /api/v1/routes/summary.
func (h *Handler) Summarize(c *gin.Context) {
	var req SummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "a polyline with at least 2 coordinates is required", nil)
		return
	}

	httpkit.OK(c, h.svc.Summarize(c.Request.Context(), req.Coordinates))
}

// CacheStats handles GET /api/v1/admin/cache/stats.
func (h *Handler) CacheStats(c *gin.Context) {
	httpkit.OK(c, h.svc.CacheStats())
}

// FlushCache handles DELETE /api/v1/admin/cache/routes.
func (h *Handler) FlushCache(c *gin.Context) {
	h.svc.FlushRouteCache()
	httpkit.OK(c, gin.H{"status": "flushed"})
}
