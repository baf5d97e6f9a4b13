package advisory

import (
	"reflect"
	"testing"

	"traseu_backend/internal/models"
	"traseu_backend/platform/geo"
)

func newTestAdvisoryService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService()
	if err != nil {
		t.Fatalf("failed to load country tables: %v", err)
	}
	return svc
}

// bridgePolyline passes through the tolled Danube bridge bounding box.
func bridgePolyline() []geo.Point {
	return []geo.Point{
		{Lat: 44.44, Lon: 26.10}, // București
		{Lat: 44.34, Lon: 27.95}, // on the bridge
		{Lat: 44.17, Lon: 28.63}, // Constanța
	}
}

func TestBuildAdvisoriesVignetteFirst(t *testing.T) {
	svc := newTestAdvisoryService(t)

	alerts := svc.BuildAdvisories([]string{"ro", "hu", "at"}, nil)

	if len(alerts) == 0 {
		t.Fatal("expected alerts")
	}
	for i := 0; i < 3; i++ {
		if alerts[i].Type != models.AlertVignette || alerts[i].Priority != 1 {
			t.Errorf("alert %d should be a priority-1 vignette: %+v", i, alerts[i])
		}
	}
	if alerts[0].CountryCode != "ro" || alerts[1].CountryCode != "hu" || alerts[2].CountryCode != "at" {
		t.Errorf("vignette alerts must keep travel order: %+v", alerts[:3])
	}
}

func TestBuildAdvisoriesBridgeTollOnlyWhenCrossed(t *testing.T) {
	svc := newTestAdvisoryService(t)

	withBridge := svc.BuildAdvisories([]string{"ro"}, bridgePolyline())
	if !hasBridgeToll(withBridge) {
		t.Error("a domestic route through the bridge box must carry the bridge toll alert")
	}

	// Domestic route nowhere near the bridge.
	inland := []geo.Point{{Lat: 46.77, Lon: 23.59}, {Lat: 47.05, Lon: 21.93}}
	withoutBridge := svc.BuildAdvisories([]string{"ro"}, inland)
	if hasBridgeToll(withoutBridge) {
		t.Error("routes that avoid the bridge box must not warn about the bridge toll")
	}

	// Same polyline but the route does not start in the home country.
	foreignStart := svc.BuildAdvisories([]string{"bg", "ro"}, bridgePolyline())
	if hasBridgeToll(foreignStart) {
		t.Error("the bridge alert applies only to routes starting in the home country")
	}
}

func TestBuildAdvisoriesSpeedLimits(t *testing.T) {
	svc := newTestAdvisoryService(t)

	alerts := svc.BuildAdvisories([]string{"de"}, nil)

	var speed *models.TravelAlert
	for i := range alerts {
		if alerts[i].Type == models.AlertSpeedLimit {
			speed = &alerts[i]
			break
		}
	}
	if speed == nil {
		t.Fatal("expected a speed limit alert")
	}
	if speed.Priority != 3 {
		t.Errorf("speed limit alerts carry priority 3, got %d", speed.Priority)
	}
	if want := "În localitate: 50 km/h, în afara localității: 100 km/h, pe autostradă: fără limită."; speed.Description != want {
		t.Errorf("a zero highway limit must render as unrestricted, got %q", speed.Description)
	}
}

func TestBuildAdvisoriesSortedByPriorityStable(t *testing.T) {
	svc := newTestAdvisoryService(t)

	alerts := svc.BuildAdvisories([]string{"ro", "hu"}, bridgePolyline())

	for i := 1; i < len(alerts); i++ {
		if alerts[i].Priority < alerts[i-1].Priority {
			t.Fatalf("alerts out of priority order: %+v", alerts)
		}
	}

	var speedCodes []string
	for _, alert := range alerts {
		if alert.Type == models.AlertSpeedLimit {
			speedCodes = append(speedCodes, alert.CountryCode)
		}
	}
	if !reflect.DeepEqual(speedCodes, []string{"ro", "hu"}) {
		t.Errorf("equal-priority alerts must keep first-appearance order, got %v", speedCodes)
	}
}

func TestBuildAdvisoriesIsDeterministic(t *testing.T) {
	svc := newTestAdvisoryService(t)
	countries := []string{"ro", "hu", "at", "de"}

	first := svc.BuildAdvisories(countries, bridgePolyline())
	second := svc.BuildAdvisories(countries, bridgePolyline())

	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs must produce identical output")
	}
}

func TestBuildAdvisoriesEmptyCountries(t *testing.T) {
	svc := newTestAdvisoryService(t)

	alerts := svc.BuildAdvisories(nil, bridgePolyline())

	if len(alerts) != 0 {
		t.Errorf("no countries means no alerts, got %+v", alerts)
	}
}

func hasBridgeToll(alerts []models.TravelAlert) bool {
	for _, alert := range alerts {
		if alert.Type == models.AlertToll && alert.Priority == 2 {
			return true
		}
	}
	return false
}
