package advisory

import (
	_ "embed"
	"fmt"

	"traseu_backend/platform/geo"

	"gopkg.in/yaml.v3"
)

//go:embed countries.yaml
var countriesYAML []byte

type bridgeRule struct {
	Name   string  `yaml:"name"`
	MinLat float64 `yaml:"min_lat"`
	MaxLat float64 `yaml:"max_lat"`
	MinLon float64 `yaml:"min_lon"`
	MaxLon float64 `yaml:"max_lon"`
	Link   string  `yaml:"link"`
}

func (b bridgeRule) boundingBox() geo.BoundingBox {
	return geo.BoundingBox{MinLat: b.MinLat, MaxLat: b.MaxLat, MinLon: b.MinLon, MaxLon: b.MaxLon}
}

type vignetteRule struct {
	Name string `yaml:"name"`
	Link string `yaml:"link"`
}

type tollRule struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Link        string `yaml:"link"`
}

type speedLimitRule struct {
	Name    string `yaml:"name"`
	Urban   int    `yaml:"urban"`
	Rural   int    `yaml:"rural"`
	Highway int    `yaml:"highway"`
}

// countryTables holds the static per-country advisory rules.
type countryTables struct {
	HomeCountry string                    `yaml:"home_country"`
	Bridge      bridgeRule                `yaml:"bridge"`
	Vignettes   map[string]vignetteRule   `yaml:"vignettes"`
	Tolls       map[string]tollRule       `yaml:"tolls"`
	SpeedLimits map[string]speedLimitRule `yaml:"speed_limits"`
}

func loadTables() (*countryTables, error) {
	var tables countryTables
	if err := yaml.Unmarshal(countriesYAML, &tables); err != nil {
		return nil, fmt.Errorf("parse country tables: %w", err)
	}
	if tables.HomeCountry == "" {
		return nil, fmt.Errorf("country tables missing home_country")
	}
	return &tables, nil
}
