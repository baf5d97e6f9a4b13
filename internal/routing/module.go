package routing

import (
	"traseu_backend/internal/events"
	apphttp "traseu_backend/internal/http"
	"traseu_backend/platform/config"
	"traseu_backend/platform/logger"
	"traseu_backend/platform/validator"
)

// Module wires the route computation HTTP routes.
type Module struct {
	handler *Handler
	service *Service
}

func NewModule(cache RouteCache, bus events.Bus, cfg config.RoutingConfig, val *validator.Validator, log *logger.Logger) *Module {
	client := NewOSRMClient(cfg, log)
	svc := NewService(cache, client, bus, cfg, val, log)
	return &Module{handler: NewHandler(svc), service: svc}
}

func (m *Module) Name() string {
	return "routing"
}

// Service exposes the engine so enrichment stages can be attached and the
// warmup worker can recompute routes.
func (m *Module) Service() *Service {
	return m.service
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/routes")
	group.POST("/plan", m.handler.Plan)
	group.GET("/recent", m.handler.Recent)
	group.POST("/summary", m.handler.Summarize)

	cache := ctx.Admin.Group("/cache")
	cache.GET("/stats", m.handler.CacheStats)
	cache.DELETE("/routes", m.handler.FlushCache)
}

var _ apphttp.Module = (*Module)(nil)
