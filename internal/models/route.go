package models

import (
	"time"

	"traseu_backend/platform/geo"
)

// Maneuver types recognized by the step parser. Anything else maps to
// ManeuverOther.
const (
	ManeuverDepart     = "depart"
	ManeuverArrive     = "arrive"
	ManeuverTurn       = "turn"
	ManeuverNewName    = "new-name"
	ManeuverMerge      = "merge"
	ManeuverOnRamp     = "on-ramp"
	ManeuverOffRamp    = "off-ramp"
	ManeuverFork       = "fork"
	ManeuverRoundabout = "roundabout"
	ManeuverOther      = "other"
)

// RouteStep is one human-readable maneuver instruction.
type RouteStep struct {
	Instruction  string  `json:"instruction"`
	DistanceKm   float64 `json:"distanceKm"`
	DurationMin  float64 `json:"durationMin"`
	RoadName     string  `json:"roadName,omitempty"`
	ManeuverType string  `json:"maneuverType"`
}

// RouteResult is one computed route. Coordinates are in (lat, lon) order,
// route-traversal order.
type RouteResult struct {
	DistanceKm  int         `json:"distanceKm"`
	DurationMin int         `json:"durationMin"`
	Coordinates []geo.Point `json:"coordinates"`
	Steps       []RouteStep `json:"steps"`
	FuelCost    float64     `json:"fuelCost"`
	// TollCost is always zero for now; per-segment toll pricing is not
	// integrated yet.
	TollCost float64 `json:"tollCost"`
}

// Savings is the primary-minus-alternative delta; positive values mean the
// alternative is better.
type Savings struct {
	TimeMin    int     `json:"timeMin"`
	DistanceKm int     `json:"distanceKm"`
	FuelCost   float64 `json:"fuelCost"`
}

// AlternativeRoute is a candidate route ranked against the primary.
type AlternativeRoute struct {
	RouteResult
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Savings     Savings `json:"savings"`
}

// CachedRoute is a route plus its alternatives as stored in the route cache.
type CachedRoute struct {
	From         string             `json:"from"`
	To           string             `json:"to"`
	Route        RouteResult        `json:"route"`
	Alternatives []AlternativeRoute `json:"alternatives"`
	CachedAt     time.Time          `json:"cachedAt"`
}

// RecentRoute is a summary entry in the most-recently-cached list.
type RecentRoute struct {
	From        string    `json:"from"`
	To          string    `json:"to"`
	DistanceKm  int       `json:"distanceKm"`
	DurationMin int       `json:"durationMin"`
	CachedAt    time.Time `json:"cachedAt"`
}
