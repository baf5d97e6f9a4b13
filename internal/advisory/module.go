package advisory

import (
	apphttp "traseu_backend/internal/http"
)

// Module wires the travel advisory HTTP routes.
type Module struct {
	handler *Handler
	service *Service
}

func NewModule() (*Module, error) {
	svc, err := NewService()
	if err != nil {
		return nil, err
	}
	return &Module{handler: NewHandler(svc), service: svc}, nil
}

func (m *Module) Name() string {
	return "advisory"
}

// Service exposes the generator for the route summary fan-out.
func (m *Module) Service() *Service {
	return m.service
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/travel/advisories", m.handler.Advisories)
}

var _ apphttp.Module = (*Module)(nil)
