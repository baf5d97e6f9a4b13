package geocode

import (
	apphttp "traseu_backend/internal/http"
	"traseu_backend/platform/config"
	"traseu_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module wires the geocode resolver HTTP routes.
type Module struct {
	handler *Handler
	service *Service
}

func NewModule(pool *pgxpool.Pool, cache SearchCache, cfg config.GeocodeConfig, log *logger.Logger) *Module {
	repo := NewPostgresRepository(pool)
	client := NewNominatimClient(cfg, log)
	svc := NewService(repo, client, cache, log)
	return &Module{handler: NewHandler(svc), service: svc}
}

func (m *Module) Name() string {
	return "geocode"
}

// Service exposes the resolver for other modules (route warmup needs it).
func (m *Module) Service() *Service {
	return m.service
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/geocode", m.handler.Search)
}

var _ apphttp.Module = (*Module)(nil)
