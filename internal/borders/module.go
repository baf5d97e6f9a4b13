package borders

import (
	apphttp "traseu_backend/internal/http"
	"traseu_backend/platform/config"
	"traseu_backend/platform/logger"
	"traseu_backend/platform/ratelimit"
)

// Module wires the country-crossing detection HTTP routes.
type Module struct {
	handler  *Handler
	detector *Detector
}

func NewModule(cfg config.ReverseGeocodeConfig, log *logger.Logger) *Module {
	client := NewReverseClient(cfg, log)
	limiter := ratelimit.NewIntervalLimiter(cfg.GetReverseGeocodeInterval())
	detector := NewDetector(client, limiter, log)
	return &Module{handler: NewHandler(detector), detector: detector}
}

func (m *Module) Name() string {
	return "borders"
}

// Detector exposes the detection stage for the route summary fan-out.
func (m *Module) Detector() *Detector {
	return m.detector
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/travel/countries", m.handler.Countries)
}

var _ apphttp.Module = (*Module)(nil)
