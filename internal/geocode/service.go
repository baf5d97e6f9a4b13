package geocode

import (
	"context"

	"traseu_backend/internal/models"
	"traseu_backend/platform/logger"
	"traseu_backend/platform/textnorm"
)

const (
	localCountryName = "România"

	minQueryLength  = 2
	maxResults      = 10
	localPrimaryCap = 8
	localASCIICap   = 5
	// localSufficient is the local-result count below which the global
	// fallback is consulted.
	localSufficient = 3
)

// SearchCache stores resolved candidate lists keyed by normalized query.
type SearchCache interface {
	GetSearchResults(ctx context.Context, normalizedQuery string) ([]models.GeoLocation, bool)
	PutSearchResults(ctx context.Context, normalizedQuery string, results []models.GeoLocation)
}

// Fallback is the global geocoding service consulted when the local
// gazetteer yields too few candidates.
type Fallback interface {
	Search(ctx context.Context, query string, limit int) ([]models.GeoLocation, error)
}

// Service resolves free-text queries to ranked location candidates.
type Service struct {
	repo     Repository
	fallback Fallback
	cache    SearchCache
	log      *logger.Logger
}

func NewService(repo Repository, fallback Fallback, cache SearchCache, log *logger.Logger) *Service {
	return &Service{repo: repo, fallback: fallback, cache: cache, log: log}
}

// Resolve returns up to 10 candidates for a query. It never fails: a broken
// source contributes nothing and the remaining sources still answer.
func (s *Service) Resolve(ctx context.Context, query string) []models.GeoLocation {
	if len([]rune(query)) < minQueryLength {
		return []models.GeoLocation{}
	}

	normalized := textnorm.Fold(query)
	if cached, ok := s.cache.GetSearchResults(ctx, normalized); ok {
		return cached
	}

	merged := s.searchLocal(ctx, query, normalized)

	if len(merged) < localSufficient {
		merged = s.mergeFallback(ctx, query, merged)
	}

	if len(merged) > maxResults {
		merged = merged[:maxResults]
	}
	if len(merged) > 0 {
		s.cache.PutSearchResults(ctx, normalized, merged)
	}
	return merged
}

// searchLocal runs the two gazetteer queries and deduplicates them by
// folded name. The diacritic-sensitive table ranks first.
func (s *Service) searchLocal(ctx context.Context, query, normalized string) []models.GeoLocation {
	primary, err := s.repo.SearchLocalities(ctx, query, localPrimaryCap)
	if err != nil {
		s.log.DatabaseError("search localities", err)
	}

	secondary, err := s.repo.SearchASCIILocalities(ctx, normalized, localASCIICap)
	if err != nil {
		s.log.DatabaseError("search ascii localities", err)
	}

	seen := make(map[string]bool, len(primary)+len(secondary))
	merged := make([]models.GeoLocation, 0, len(primary)+len(secondary))
	for _, loc := range append(primary, secondary...) {
		key := textnorm.Fold(loc.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, loc)
	}
	return merged
}

// mergeFallback appends global candidates that do not duplicate a local one.
// A duplicate shares the folded name and refers to the same country.
func (s *Service) mergeFallback(ctx context.Context, query string, local []models.GeoLocation) []models.GeoLocation {
	remote, err := s.fallback.Search(ctx, query, maxResults)
	if err != nil {
		s.log.ExternalCallFailed("nominatim-search", err)
		return local
	}

	merged := local
	for _, candidate := range remote {
		if isDuplicate(candidate, merged) {
			continue
		}
		merged = append(merged, candidate)
	}
	return merged
}

func isDuplicate(candidate models.GeoLocation, existing []models.GeoLocation) bool {
	name := textnorm.Fold(candidate.Name)
	for _, loc := range existing {
		if textnorm.Fold(loc.Name) == name && sameCountry(candidate.Country, loc.Country) {
			return true
		}
	}
	return false
}

// countryAliases maps short forms onto the folded country name so that the
// local label and its international equivalent compare equal.
var countryAliases = map[string]string{
	"ro": "romania",
}

func sameCountry(a, b string) bool {
	if a == "" || b == "" {
		return true
	}
	return canonicalCountry(a) == canonicalCountry(b)
}

func canonicalCountry(country string) string {
	folded := textnorm.Fold(country)
	if alias, ok := countryAliases[folded]; ok {
		return alias
	}
	return folded
}
