// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"traseu_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Routing Domain Events
// =============================================================================

// RouteComputed is published after the routing engine computes and caches a
// fresh route. Cache hits do not publish it.
type RouteComputed struct {
	BaseEvent
	FromName    string  `json:"fromName"`
	ToName      string  `json:"toName"`
	DistanceKm  int     `json:"distanceKm"`
	DurationMin int     `json:"durationMin"`
	FuelCost    float64 `json:"fuelCost"`
}

func (e RouteComputed) EventName() string { return "routing.route.computed" }
