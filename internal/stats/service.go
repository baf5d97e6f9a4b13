// Package stats tracks which routes get computed, feeding the admin top
// list and the cache warmup scheduler.
package stats

import (
	"context"
	"fmt"

	"traseu_backend/internal/events"
	"traseu_backend/platform/logger"
)

// Service aggregates route view statistics.
type Service struct {
	repo Repository
	log  *logger.Logger
}

func NewService(repo Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// HandleRouteComputed records a view for each freshly computed route.
func (s *Service) HandleRouteComputed(ctx context.Context, event events.Event) error {
	computed, ok := event.(events.RouteComputed)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	if err := s.repo.RecordView(ctx, computed.FromName, computed.ToName, computed.DistanceKm, computed.DurationMin, computed.FuelCost); err != nil {
		// Statistics are best-effort; the route was already served.
		s.log.DatabaseError("record route view", err)
	}
	return nil
}

// TopRoutes returns the most viewed endpoint pairs.
func (s *Service) TopRoutes(ctx context.Context, limit int) ([]RoutePair, error) {
	if limit < 1 {
		limit = 10
	}
	return s.repo.TopRoutes(ctx, limit)
}
