package poi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"traseu_backend/platform/config"
	"traseu_backend/platform/geo"
	"traseu_backend/platform/logger"
)

const (
	fuelFoodRadiusMeters = 5000
	restRadiusMeters     = 10000
)

type overpassTags struct {
	Amenity string `json:"amenity"`
	Highway string `json:"highway"`
	Name    string `json:"name"`
}

type overpassElement struct {
	Lat  float64      `json:"lat"`
	Lon  float64      `json:"lon"`
	Tags overpassTags `json:"tags"`
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

// OverpassClient queries the OSM POI service for amenities near a point.
type OverpassClient struct {
	endpoint  string
	userAgent string
	client    *http.Client
	log       *logger.Logger
}

func NewOverpassClient(cfg config.OverpassConfig, log *logger.Logger) *OverpassClient {
	return &OverpassClient{
		endpoint:  cfg.GetOverpassURL(),
		userAgent: cfg.GetUserAgent(),
		client:    &http.Client{Timeout: 10 * time.Second},
		log:       log,
	}
}

// Nearby returns fuel, food and rest amenities around the point. Fuel and
// food use a tight radius; highway rest areas a wider one, since they are
// sparse and worth a detour.
func (c *OverpassClient) Nearby(ctx context.Context, point geo.Point) ([]overpassElement, error) {
	query := buildQuery(point)

	form := url.Values{}
	form.Set("data", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.ExternalCallFailed("overpass", err)
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream api error: %d", resp.StatusCode)
	}

	var payload overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.log.Error("failed to decode overpass payload", "error", err)
		return nil, err
	}

	return payload.Elements, nil
}

func buildQuery(point geo.Point) string {
	return fmt.Sprintf(`[out:json][timeout:10];
(
  node["amenity"="fuel"](around:%d,%f,%f);
  node["amenity"="restaurant"](around:%d,%f,%f);
  node["amenity"="fast_food"](around:%d,%f,%f);
  node["highway"="rest_area"](around:%d,%f,%f);
  node["highway"="services"](around:%d,%f,%f);
);
out body 40;`,
		fuelFoodRadiusMeters, point.Lat, point.Lon,
		fuelFoodRadiusMeters, point.Lat, point.Lon,
		fuelFoodRadiusMeters, point.Lat, point.Lon,
		restRadiusMeters, point.Lat, point.Lon,
		restRadiusMeters, point.Lat, point.Lon,
	)
}
