package poi

import (
	apphttp "traseu_backend/internal/http"
	"traseu_backend/platform/config"
	"traseu_backend/platform/logger"
	"traseu_backend/platform/ratelimit"
)

// Module wires the POI enrichment HTTP routes.
type Module struct {
	handler *Handler
	service *Service
}

func NewModule(cfg config.OverpassConfig, log *logger.Logger) *Module {
	client := NewOverpassClient(cfg, log)
	limiter := ratelimit.NewIntervalLimiter(cfg.GetOverpassInterval())
	svc := NewService(client, limiter, log)
	return &Module{handler: NewHandler(svc), service: svc}
}

func (m *Module) Name() string {
	return "poi"
}

// Service exposes the enrichment stage for the route summary fan-out.
func (m *Module) Service() *Service {
	return m.service
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/travel/pois", m.handler.POIs)
}

var _ apphttp.Module = (*Module)(nil)
