package geocode

import "traseu_backend/internal/models"

// SearchRequest represents the query parameters from the frontend.
type SearchRequest struct {
	Query string `form:"q" binding:"required,min=2"`
}

// SearchResponse wraps the resolved candidate list.
type SearchResponse struct {
	Results []models.GeoLocation `json:"results"`
}

type nominatimAddress struct {
	City         string `json:"city"`
	Town         string `json:"town"`
	Village      string `json:"village"`
	Municipality string `json:"municipality"`
	Hamlet       string `json:"hamlet"`
	County       string `json:"county"`
	Country      string `json:"country"`
	CountryCode  string `json:"country_code"`
}

// nominatimResult mirrors the relevant parts of the OSM search payload.
type nominatimResult struct {
	DisplayName string           `json:"display_name"`
	Lat         string           `json:"lat"`
	Lon         string           `json:"lon"`
	Type        string           `json:"type"`
	Class       string           `json:"class"`
	Address     nominatimAddress `json:"address"`
}
