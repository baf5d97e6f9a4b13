package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"traseu_backend/internal/models"
	"traseu_backend/platform/config"
	"traseu_backend/platform/logger"
)

// NominatimClient is the global geocoding fallback used when the local
// gazetteer comes up short.
type NominatimClient struct {
	searchURL string
	userAgent string
	client    *http.Client
	log       *logger.Logger
}

func NewNominatimClient(cfg config.GeocodeConfig, log *logger.Logger) *NominatimClient {
	return &NominatimClient{
		searchURL: cfg.GetNominatimSearchURL(),
		userAgent: cfg.GetUserAgent(),
		client:    &http.Client{Timeout: 5 * time.Second},
		log:       log,
	}
}

// allowedPlaceTypes restricts fallback results to populated places; street
// addresses and amenities are useless as route endpoints.
var allowedPlaceTypes = map[string]bool{
	"city":           true,
	"town":           true,
	"village":        true,
	"municipality":   true,
	"administrative": true,
	"hamlet":         true,
}

// Search queries Nominatim and converts the payload to location candidates.
func (c *NominatimClient) Search(ctx context.Context, query string, limit int) ([]models.GeoLocation, error) {
	params := url.Values{}
	params.Add("q", query)
	params.Add("format", "json")
	params.Add("addressdetails", "1")
	params.Add("accept-language", "ro")
	params.Add("limit", strconv.Itoa(limit))

	reqURL := fmt.Sprintf("%s?%s", c.searchURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.ExternalCallFailed("nominatim-search", err)
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		c.log.Error("nominatim upstream error", "status", resp.StatusCode)
		return nil, fmt.Errorf("upstream api error: %d", resp.StatusCode)
	}

	var rawResults []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&rawResults); err != nil {
		c.log.Error("failed to decode nominatim payload", "error", err)
		return nil, err
	}

	candidates := make([]models.GeoLocation, 0, len(rawResults))
	for _, raw := range rawResults {
		candidate, ok := buildCandidate(raw)
		if !ok {
			continue
		}
		candidates = append(candidates, candidate)
	}

	return candidates, nil
}

func buildCandidate(raw nominatimResult) (models.GeoLocation, bool) {
	if raw.Class != "place" && raw.Class != "boundary" {
		return models.GeoLocation{}, false
	}
	if !allowedPlaceTypes[raw.Type] {
		return models.GeoLocation{}, false
	}

	lat, err := strconv.ParseFloat(raw.Lat, 64)
	if err != nil {
		return models.GeoLocation{}, false
	}
	lon, err := strconv.ParseFloat(raw.Lon, 64)
	if err != nil {
		return models.GeoLocation{}, false
	}

	name := pickPlaceName(raw.Address)
	if name == "" {
		name = firstSegment(raw.DisplayName)
	}
	if name == "" {
		return models.GeoLocation{}, false
	}

	return models.GeoLocation{
		Name:      name,
		County:    raw.Address.County,
		Country:   raw.Address.Country,
		Latitude:  lat,
		Longitude: lon,
		Type:      raw.Type,
		IsLocal:   false,
	}, true
}

func pickPlaceName(address nominatimAddress) string {
	if address.City != "" {
		return address.City
	}
	if address.Town != "" {
		return address.Town
	}
	if address.Village != "" {
		return address.Village
	}
	if address.Municipality != "" {
		return address.Municipality
	}
	return address.Hamlet
}

func firstSegment(displayName string) string {
	segment, _, _ := strings.Cut(displayName, ",")
	return strings.TrimSpace(segment)
}
