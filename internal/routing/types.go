package routing

import "traseu_backend/internal/models"

// PlanEndpoint is one resolved endpoint as the frontend sends it back.
// Coordinates carry range checks only; zero is a valid latitude and
// longitude, so "required" would reject legitimate positions.
type PlanEndpoint struct {
	Name      string  `json:"name" binding:"required" validate:"required"`
	Latitude  float64 `json:"latitude" binding:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" binding:"longitude" validate:"longitude"`
}

// PlanRequest carries the two endpoints of a route to compute.
type PlanRequest struct {
	From PlanEndpoint `json:"from" binding:"required"`
	To   PlanEndpoint `json:"to" binding:"required"`
}

// PlanResponse is the computed (or cached) route with its alternatives.
type PlanResponse struct {
	Route        models.RouteResult        `json:"route"`
	Alternatives []models.AlternativeRoute `json:"alternatives"`
	Cached       bool                      `json:"cached"`
}

// osrmResponse mirrors the relevant parts of the routing service payload.
type osrmResponse struct {
	Code   string      `json:"code"`
	Routes []osrmRoute `json:"routes"`
}

type osrmRoute struct {
	Distance float64      `json:"distance"` // meters
	Duration float64      `json:"duration"` // seconds
	Geometry osrmGeometry `json:"geometry"`
	Legs     []osrmLeg    `json:"legs"`
}

// osrmGeometry is a GeoJSON LineString: coordinates in (lon, lat) order.
type osrmGeometry struct {
	Coordinates [][]float64 `json:"coordinates"`
}

type osrmLeg struct {
	Steps []osrmStep `json:"steps"`
}

type osrmStep struct {
	Distance float64      `json:"distance"` // meters
	Duration float64      `json:"duration"` // seconds
	Name     string       `json:"name"`
	Maneuver osrmManeuver `json:"maneuver"`
}

type osrmManeuver struct {
	Type     string `json:"type"`
	Modifier string `json:"modifier"`
	Exit     int    `json:"exit"`
}
