package borders

import (
	"context"
	"math"

	"traseu_backend/platform/geo"
	"traseu_backend/platform/logger"
	"traseu_backend/platform/ratelimit"
)

const (
	minSamples = 10
	maxSamples = 25
)

// CountryResolver resolves one coordinate to an ISO country code.
type CountryResolver interface {
	CountryCode(ctx context.Context, point geo.Point) (string, error)
}

// Detector reduces a route polyline to the ordered sequence of countries
// it traverses. Lookups run sequentially under a shared rate limit.
type Detector struct {
	resolver CountryResolver
	limiter  ratelimit.Limiter
	log      *logger.Logger
}

func NewDetector(resolver CountryResolver, limiter ratelimit.Limiter, log *logger.Logger) *Detector {
	return &Detector{resolver: resolver, limiter: limiter, log: log}
}

// DetectCountries samples the polyline, reverse-geocodes each sample and
// returns countries in first-appearance order plus the count of failed
// lookups. A failed point is skipped, never reported as a country.
func (d *Detector) DetectCountries(ctx context.Context, polyline []geo.Point) ([]string, int) {
	if len(polyline) == 0 {
		return []string{}, 0
	}

	indices := geo.SampleIndices(len(polyline), sampleSize(len(polyline)))

	countries := []string{}
	seen := make(map[string]bool)
	failed := 0

	for _, idx := range indices {
		if err := d.limiter.Wait(ctx); err != nil {
			// Caller went away; report what was gathered so far.
			return countries, failed + unresolved(indices, idx)
		}

		code, err := d.resolver.CountryCode(ctx, polyline[idx])
		if err != nil {
			failed++
			continue
		}

		if !seen[code] {
			seen[code] = true
			countries = append(countries, code)
		}
	}

	return countries, failed
}

// sampleSize bounds the lookup count: one sample per 20 polyline points,
// clamped to [10, 25].
func sampleSize(pointCount int) int {
	size := int(math.Ceil(float64(pointCount) / 20))
	if size < minSamples {
		return minSamples
	}
	if size > maxSamples {
		return maxSamples
	}
	return size
}

func unresolved(indices []int, current int) int {
	remaining := 0
	for _, idx := range indices {
		if idx >= current {
			remaining++
		}
	}
	return remaining
}
