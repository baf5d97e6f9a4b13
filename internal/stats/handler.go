package stats

import (
	"strconv"

	"traseu_backend/platform/apperr"
	"traseu_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler exposes the route statistics admin endpoint.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// TopRoutes handles GET /api/v1/admin/routes/top?n=...
func (h *Handler) TopRoutes(c *gin.Context) {
	n, err := strconv.Atoi(c.DefaultQuery("n", "10"))
	if err != nil || n < 1 {
		n = 10
	}

	pairs, err := h.svc.TopRoutes(c.Request.Context(), n)
	if err != nil {
		httpkit.HandleError(c, apperr.Wrap(apperr.KindInternal, "failed to load route statistics", err))
		return
	}

	httpkit.OK(c, gin.H{"routes": pairs})
}
