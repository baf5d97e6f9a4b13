package routing

import (
	"fmt"
	"math"

	"traseu_backend/internal/models"
)

// minStepMeters suppresses micro-maneuvers; anything at or under this
// distance is navigation noise.
const minStepMeters = 50.0

// maneuverTypes maps raw maneuver types onto the retained enumeration.
var maneuverTypes = map[string]string{
	"depart":     models.ManeuverDepart,
	"arrive":     models.ManeuverArrive,
	"turn":       models.ManeuverTurn,
	"new name":   models.ManeuverNewName,
	"merge":      models.ManeuverMerge,
	"on ramp":    models.ManeuverOnRamp,
	"off ramp":   models.ManeuverOffRamp,
	"fork":       models.ManeuverFork,
	"roundabout": models.ManeuverRoundabout,
	"rotary":     models.ManeuverRoundabout,
}

// directions translates maneuver modifiers for instruction text.
var directions = map[string]string{
	"left":         "la stânga",
	"right":        "la dreapta",
	"slight left":  "ușor la stânga",
	"slight right": "ușor la dreapta",
	"sharp left":   "brusc la stânga",
	"sharp right":  "brusc la dreapta",
	"straight":     "înainte",
	"uturn":        "în sens opus",
}

// parseSteps flattens the route legs into readable maneuver instructions,
// dropping steps at or under the minimum distance.
func parseSteps(legs []osrmLeg) []models.RouteStep {
	var steps []models.RouteStep
	for _, leg := range legs {
		for _, raw := range leg.Steps {
			if raw.Distance <= minStepMeters {
				continue
			}

			maneuverType := maneuverTypes[raw.Maneuver.Type]
			if maneuverType == "" {
				maneuverType = models.ManeuverOther
			}

			steps = append(steps, models.RouteStep{
				Instruction:  buildInstruction(maneuverType, raw),
				DistanceKm:   math.Round(raw.Distance/100) / 10,
				DurationMin:  math.Round(raw.Duration/6) / 10,
				RoadName:     raw.Name,
				ManeuverType: maneuverType,
			})
		}
	}
	return steps
}

func buildInstruction(maneuverType string, raw osrmStep) string {
	road := raw.Name

	switch maneuverType {
	case models.ManeuverDepart:
		if road == "" {
			return "Porniți la drum"
		}
		return fmt.Sprintf("Porniți pe %s", road)
	case models.ManeuverArrive:
		return "Ați ajuns la destinație"
	case models.ManeuverTurn:
		direction := directions[raw.Maneuver.Modifier]
		if direction == "" {
			direction = "înainte"
		}
		if road == "" {
			return fmt.Sprintf("Virați %s", direction)
		}
		return fmt.Sprintf("Virați %s pe %s", direction, road)
	case models.ManeuverNewName:
		return fmt.Sprintf("Continuați pe %s", road)
	case models.ManeuverMerge:
		if road == "" {
			return "Înscrieți-vă în trafic"
		}
		return fmt.Sprintf("Înscrieți-vă pe %s", road)
	case models.ManeuverOnRamp:
		if road == "" {
			return "Intrați pe bretea"
		}
		return fmt.Sprintf("Intrați pe %s", road)
	case models.ManeuverOffRamp:
		if road == "" {
			return "Ieșiți de pe drum"
		}
		return fmt.Sprintf("Ieșiți spre %s", road)
	case models.ManeuverFork:
		direction := directions[raw.Maneuver.Modifier]
		if direction == "" {
			direction = "înainte"
		}
		return fmt.Sprintf("La bifurcație țineți %s", direction)
	case models.ManeuverRoundabout:
		exit := raw.Maneuver.Exit
		if exit <= 0 {
			return "Intrați în sensul giratoriu"
		}
		return fmt.Sprintf("În sensul giratoriu, luați ieșirea %d", exit)
	default:
		if road == "" {
			return "Continuați"
		}
		return fmt.Sprintf("Continuați pe %s", road)
	}
}
