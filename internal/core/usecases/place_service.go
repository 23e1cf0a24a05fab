package usecases

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/2270330995/VRP-Carpool/internal/core/domain"
	"github.com/2270330995/VRP-Carpool/internal/core/ports"
)

// PlaceService proxies place lookups with read-through caching. Address
// entry retries the same prefixes constantly, so suggestions are cached
// briefly and resolved details for a full day.
type PlaceService struct {
	places ports.PlaceDirectory
	cache  ports.CacheService
}

// NewPlaceService creates a new PlaceService. cache may be nil.
func NewPlaceService(places ports.PlaceDirectory, cache ports.CacheService) *PlaceService {
	return &PlaceService{places: places, cache: cache}
}

// Autocomplete returns place suggestions for a partial address.
func (s *PlaceService) Autocomplete(ctx context.Context, input string) ([]domain.PlaceSuggestion, error) {
	if input == "" {
		return nil, fmt.Errorf("autocomplete input must not be empty")
	}

	cacheKey := "places:ac:" + input
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var suggestions []domain.PlaceSuggestion
			if err := json.Unmarshal(data, &suggestions); err == nil {
				return suggestions, nil
			}
		}
	}

	suggestions, err := s.places.Autocomplete(ctx, input)
	if err != nil {
		return nil, err
	}

	// 5 minutes: predictions shift as the upstream index changes
	if s.cache != nil {
		if data, err := json.Marshal(suggestions); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 300)
		}
	}

	return suggestions, nil
}

// Details resolves a place id to its address and coordinates.
func (s *PlaceService) Details(ctx context.Context, placeID string) (*domain.PlaceDetails, error) {
	if placeID == "" {
		return nil, fmt.Errorf("place id must not be empty")
	}

	cacheKey := "places:detail:" + placeID
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var details domain.PlaceDetails
			if err := json.Unmarshal(data, &details); err == nil {
				return &details, nil
			}
		}
	}

	details, err := s.places.Details(ctx, placeID)
	if err != nil {
		return nil, err
	}

	// 24 hours: a place id keeps pointing at the same address
	if s.cache != nil {
		if data, err := json.Marshal(details); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 86400)
		}
	}

	return details, nil
}
