// Package advisory turns a detected country sequence into prioritized
// travel alerts. The generator is a pure function over static per-country
// tables; it performs no I/O at request time.
package advisory

import (
	"fmt"
	"sort"

	"traseu_backend/internal/models"
	"traseu_backend/platform/geo"
)

const (
	priorityVignette   = 1
	priorityBridgeToll = 2
	prioritySpeedLimit = 3
)

// Service generates travel alerts from the country sequence of a route.
type Service struct {
	tables *countryTables
}

func NewService() (*Service, error) {
	tables, err := loadTables()
	if err != nil {
		return nil, err
	}
	return &Service{tables: tables}, nil
}

// BuildAdvisories maps the ordered country list plus the route polyline to a
// priority-sorted alert list. Identical inputs always yield identical output.
func (s *Service) BuildAdvisories(countries []string, polyline []geo.Point) []models.TravelAlert {
	alerts := []models.TravelAlert{}

	for _, code := range countries {
		if rule, ok := s.tables.Vignettes[code]; ok {
			alerts = append(alerts, vignetteAlert(code, rule))
			continue
		}
		if rule, ok := s.tables.Tolls[code]; ok {
			alerts = append(alerts, tollAlert(code, rule))
		}
	}

	// Warn about the bridge toll only for domestic departures whose route
	// actually crosses the bridge area; every other domestic route would
	// otherwise get a false alarm.
	if len(countries) > 0 && countries[0] == s.tables.HomeCountry &&
		s.tables.Bridge.boundingBox().Intersects(polyline) {
		alerts = append(alerts, s.bridgeAlert())
	}

	for _, code := range countries {
		if rule, ok := s.tables.SpeedLimits[code]; ok {
			alerts = append(alerts, speedLimitAlert(code, rule))
		}
	}

	// Ties keep country first-appearance order.
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Priority < alerts[j].Priority
	})

	return alerts
}

func vignetteAlert(code string, rule vignetteRule) models.TravelAlert {
	title := fmt.Sprintf("Vinietă obligatorie în %s", rule.Name)
	description := fmt.Sprintf("Pentru drumurile naționale și autostrăzile din %s este necesară o vinietă valabilă.", rule.Name)
	if code == "ro" {
		title = "Rovinietă obligatorie"
		description = "Pentru drumurile naționale din România este necesară o rovinietă valabilă."
	}

	return models.TravelAlert{
		Type:        models.AlertVignette,
		CountryCode: code,
		Title:       title,
		Description: description,
		Link:        rule.Link,
		Priority:    priorityVignette,
	}
}

func tollAlert(code string, rule tollRule) models.TravelAlert {
	return models.TravelAlert{
		Type:        models.AlertToll,
		CountryCode: code,
		Title:       fmt.Sprintf("Taxe de drum în %s", rule.Name),
		Description: rule.Description,
		Link:        rule.Link,
		Priority:    priorityVignette,
	}
}

func (s *Service) bridgeAlert() models.TravelAlert {
	return models.TravelAlert{
		Type:        models.AlertToll,
		CountryCode: s.tables.HomeCountry,
		Title:       fmt.Sprintf("Taxă de pod: %s", s.tables.Bridge.Name),
		Description: "Traseul traversează podul peste Dunăre; taxa de pod se plătește separat de rovinietă.",
		Link:        s.tables.Bridge.Link,
		Priority:    priorityBridgeToll,
	}
}

func speedLimitAlert(code string, rule speedLimitRule) models.TravelAlert {
	highway := fmt.Sprintf("%d km/h", rule.Highway)
	if rule.Highway == 0 {
		highway = "fără limită"
	}

	return models.TravelAlert{
		Type:        models.AlertSpeedLimit,
		CountryCode: code,
		Title:       fmt.Sprintf("Limite de viteză în %s", rule.Name),
		Description: fmt.Sprintf("În localitate: %d km/h, în afara localității: %d km/h, pe autostradă: %s.", rule.Urban, rule.Rural, highway),
		Priority:    prioritySpeedLimit,
	}
}
