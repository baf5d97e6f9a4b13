package borders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"traseu_backend/platform/config"
	"traseu_backend/platform/geo"
	"traseu_backend/platform/logger"
)

// errNoCountry signals a reverse lookup that resolved to no country, e.g. a
// point over open water.
var errNoCountry = errors.New("no country at point")

type reverseResponse struct {
	Address struct {
		CountryCode string `json:"country_code"`
	} `json:"address"`
}

// ReverseClient resolves a coordinate to an ISO country code via the
// reverse geocoding service, at coarse zoom so only the country is loaded.
type ReverseClient struct {
	reverseURL string
	userAgent  string
	client     *http.Client
	log        *logger.Logger
}

func NewReverseClient(cfg config.ReverseGeocodeConfig, log *logger.Logger) *ReverseClient {
	return &ReverseClient{
		reverseURL: cfg.GetNominatimReverseURL(),
		userAgent:  cfg.GetUserAgent(),
		client:     &http.Client{Timeout: 5 * time.Second},
		log:        log,
	}
}

// CountryCode returns the lowercase ISO 3166-1 alpha-2 code at the point.
func (c *ReverseClient) CountryCode(ctx context.Context, point geo.Point) (string, error) {
	params := url.Values{}
	params.Add("lat", strconv.FormatFloat(point.Lat, 'f', -1, 64))
	params.Add("lon", strconv.FormatFloat(point.Lon, 'f', -1, 64))
	params.Add("format", "json")
	params.Add("zoom", "3")

	reqURL := fmt.Sprintf("%s?%s", c.reverseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.ExternalCallFailed("nominatim-reverse", err)
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upstream api error: %d", resp.StatusCode)
	}

	var payload reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}

	if payload.Address.CountryCode == "" {
		return "", errNoCountry
	}

	return payload.Address.CountryCode, nil
}
