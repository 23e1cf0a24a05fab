package ports

import (
	"context"

	"github.com/2270330995/VRP-Carpool/internal/core/domain"
)

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishAssignmentRun(ctx context.Context, run *domain.RunSummary) error
	PublishOptimizeOutcome(ctx context.Context, outcome *domain.OptimizeOutcome) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}

// PlaceDirectory looks up addresses in an external places service.
type PlaceDirectory interface {
	Autocomplete(ctx context.Context, input string) ([]domain.PlaceSuggestion, error)
	Details(ctx context.Context, placeID string) (*domain.PlaceDetails, error)
}
