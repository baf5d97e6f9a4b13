package stats

import (
	"traseu_backend/internal/events"
	apphttp "traseu_backend/internal/http"
	"traseu_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module wires the route statistics: the RouteComputed subscription plus
// the admin top-routes endpoint.
type Module struct {
	handler *Handler
	service *Service
}

func NewModule(pool *pgxpool.Pool, bus events.Bus, log *logger.Logger) *Module {
	repo := NewPostgresRepository(pool)
	svc := NewService(repo, log)

	bus.Subscribe(events.RouteComputed{}.EventName(), events.HandlerFunc(svc.HandleRouteComputed))

	return &Module{handler: NewHandler(svc), service: svc}
}

func (m *Module) Name() string {
	return "stats"
}

// Service exposes the aggregates for the warmup scheduler.
func (m *Module) Service() *Service {
	return m.service
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Admin.GET("/routes/top", m.handler.TopRoutes)
}

var _ apphttp.Module = (*Module)(nil)
