package models

// Alert types, ordered roughly by the severity they are rendered with.
const (
	AlertVignette   = "vignette"
	AlertToll       = "toll"
	AlertFerry      = "ferry"
	AlertSpeedLimit = "speed_limit"
	AlertBorder     = "border"
	AlertWarning    = "warning"
)

// TravelAlert is one advisory item. Lower priority sorts first.
type TravelAlert struct {
	Type        string `json:"type"`
	CountryCode string `json:"countryCode"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link,omitempty"`
	Priority    int    `json:"priority"`
}
