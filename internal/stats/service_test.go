package stats

import (
	"context"
	"errors"
	"testing"

	"traseu_backend/internal/events"
	"traseu_backend/platform/logger"
)

type mockStatsRepo struct {
	recorded []string
	lastFuel float64
	err      error
}

func (m *mockStatsRepo) RecordView(_ context.Context, fromName, toName string, _, _ int, fuelCost float64) error {
	m.recorded = append(m.recorded, fromName+"|"+toName)
	m.lastFuel = fuelCost
	return m.err
}

func (m *mockStatsRepo) TopRoutes(_ context.Context, _ int) ([]RoutePair, error) {
	return nil, m.err
}

func TestHandleRouteComputedRecordsView(t *testing.T) {
	repo := &mockStatsRepo{}
	svc := NewService(repo, logger.New("development"))

	event := events.RouteComputed{
		BaseEvent: events.NewBaseEvent(),
		FromName:  "Cluj-Napoca",
		ToName:    "Oradea",
		FuelCost:  77.14,
	}

	if err := svc.HandleRouteComputed(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.recorded) != 1 || repo.recorded[0] != "Cluj-Napoca|Oradea" {
		t.Errorf("unexpected recordings: %v", repo.recorded)
	}
	if repo.lastFuel != 77.14 {
		t.Errorf("the fuel estimate must be recorded with the view, got %v", repo.lastFuel)
	}
}

func TestHandleRouteComputedSwallowsRepositoryErrors(t *testing.T) {
	repo := &mockStatsRepo{err: errors.New("db down")}
	svc := NewService(repo, logger.New("development"))

	event := events.RouteComputed{BaseEvent: events.NewBaseEvent(), FromName: "A", ToName: "B"}

	if err := svc.HandleRouteComputed(context.Background(), event); err != nil {
		t.Errorf("statistics failures must not propagate, got %v", err)
	}
}

type unrelatedEvent struct{ events.BaseEvent }

func (unrelatedEvent) EventName() string { return "test.unrelated" }

func TestHandleRouteComputedRejectsForeignEvents(t *testing.T) {
	svc := NewService(&mockStatsRepo{}, logger.New("development"))

	if err := svc.HandleRouteComputed(context.Background(), unrelatedEvent{}); err == nil {
		t.Error("expected an error for a mismatched event type")
	}
}
