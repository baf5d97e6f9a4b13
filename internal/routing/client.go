package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"traseu_backend/platform/config"
	"traseu_backend/platform/geo"
	"traseu_backend/platform/logger"
)

// ErrNoRoute signals that the routing service could not produce any route
// between the requested endpoints.
var ErrNoRoute = errors.New("no route between endpoints")

// OSRMClient calls the external routing service.
type OSRMClient struct {
	baseURL   string
	userAgent string
	client    *http.Client
	log       *logger.Logger
}

func NewOSRMClient(cfg config.RoutingConfig, log *logger.Logger) *OSRMClient {
	return &OSRMClient{
		baseURL:   cfg.GetOSRMBaseURL(),
		userAgent: cfg.GetUserAgent(),
		client:    &http.Client{Timeout: 15 * time.Second},
		log:       log,
	}
}

// Route requests a driving route with alternatives and turn-by-turn steps.
// The service expects (longitude, latitude) ordering in the path.
func (c *OSRMClient) Route(ctx context.Context, from, to geo.Point) ([]osrmRoute, error) {
	reqURL := fmt.Sprintf(
		"%s/route/v1/driving/%f,%f;%f,%f?overview=full&geometries=geojson&steps=true&alternatives=true",
		c.baseURL, from.Lon, from.Lat, to.Lon, to.Lat,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.ExternalCallFailed("osrm", err)
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		c.log.Error("osrm upstream error", "status", resp.StatusCode)
		return nil, fmt.Errorf("upstream api error: %d", resp.StatusCode)
	}

	var payload osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.log.Error("failed to decode osrm payload", "error", err)
		return nil, err
	}

	if payload.Code != "Ok" || len(payload.Routes) == 0 {
		return nil, ErrNoRoute
	}

	return payload.Routes, nil
}
