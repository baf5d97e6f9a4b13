// Package models holds the shared domain types exchanged between the
// geocoding, routing, border-detection, advisory and POI modules.
package models

// GeoLocation is one resolved place candidate. Candidates without
// coordinates are discarded before they reach callers or the cache.
type GeoLocation struct {
	Name       string  `json:"name"`
	County     string  `json:"county,omitempty"`
	Country    string  `json:"country,omitempty"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Type       string  `json:"type,omitempty"`
	Population *int64  `json:"population,omitempty"`
	IsLocal    bool    `json:"isLocal"`
}
