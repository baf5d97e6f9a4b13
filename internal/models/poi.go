package models

import "traseu_backend/platform/geo"

// POI categories captured along a route.
const (
	POIFuel     = "fuel"
	POIFood     = "food"
	POIRest     = "rest"
	POIHospital = "hospital"
)

// RoutePOI is one point of interest discovered near the route, labeled with
// its approximate distance from the route start.
type RoutePOI struct {
	Type                string    `json:"type"`
	Name                string    `json:"name"`
	DistanceFromStartKm float64   `json:"distanceFromStartKm"`
	Coordinates         geo.Point `json:"coordinates"`
}
