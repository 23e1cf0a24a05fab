package usecases_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/2270330995/VRP-Carpool/internal/core/domain"
	"github.com/2270330995/VRP-Carpool/internal/core/usecases"
)

type mockPlaceDirectory struct {
	autocompleteCalls int
	detailsCalls      int
	autocompleteFn    func(input string) ([]domain.PlaceSuggestion, error)
	detailsFn         func(placeID string) (*domain.PlaceDetails, error)
}

func (m *mockPlaceDirectory) Autocomplete(ctx context.Context, input string) ([]domain.PlaceSuggestion, error) {
	m.autocompleteCalls++
	return m.autocompleteFn(input)
}

func (m *mockPlaceDirectory) Details(ctx context.Context, placeID string) (*domain.PlaceDetails, error) {
	m.detailsCalls++
	return m.detailsFn(placeID)
}

type cacheEntry struct {
	value []byte
	ttl   int
}

type mockCache struct {
	entries map[string]cacheEntry
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string]cacheEntry)}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	e, ok := m.entries[key]
	if !ok {
		return nil, errors.New("cache miss")
	}
	return e.value, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	m.entries[key] = cacheEntry{value: value, ttl: ttlSeconds}
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	delete(m.entries, key)
	return nil
}

func TestAutocomplete_CacheMissPopulates(t *testing.T) {
	dir := &mockPlaceDirectory{
		autocompleteFn: func(input string) ([]domain.PlaceSuggestion, error) {
			return []domain.PlaceSuggestion{{Description: "123 Main St", PlaceID: "pid-1"}}, nil
		},
	}
	cache := newMockCache()
	svc := usecases.NewPlaceService(dir, cache)

	got, err := svc.Autocomplete(context.Background(), "123 Main")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].PlaceID != "pid-1" {
		t.Fatalf("suggestions = %+v", got)
	}

	entry, ok := cache.entries["places:ac:123 Main"]
	if !ok {
		t.Fatal("suggestions were not cached")
	}
	if entry.ttl != 300 {
		t.Errorf("suggestion ttl = %d, want 300", entry.ttl)
	}
}

func TestAutocomplete_CacheHitSkipsDirectory(t *testing.T) {
	dir := &mockPlaceDirectory{
		autocompleteFn: func(string) ([]domain.PlaceSuggestion, error) {
			return nil, errors.New("directory must not be called on a cache hit")
		},
	}
	cache := newMockCache()
	cached, _ := json.Marshal([]domain.PlaceSuggestion{{Description: "cached", PlaceID: "pid-2"}})
	cache.entries["places:ac:Elm"] = cacheEntry{value: cached}

	svc := usecases.NewPlaceService(dir, cache)
	got, err := svc.Autocomplete(context.Background(), "Elm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].PlaceID != "pid-2" {
		t.Fatalf("suggestions = %+v", got)
	}
	if dir.autocompleteCalls != 0 {
		t.Errorf("directory called %d times on a cache hit", dir.autocompleteCalls)
	}
}

func TestAutocomplete_CorruptCacheEntryFallsThrough(t *testing.T) {
	dir := &mockPlaceDirectory{
		autocompleteFn: func(string) ([]domain.PlaceSuggestion, error) {
			return []domain.PlaceSuggestion{{PlaceID: "fresh"}}, nil
		},
	}
	cache := newMockCache()
	cache.entries["places:ac:Oak"] = cacheEntry{value: []byte("{not json")}

	svc := usecases.NewPlaceService(dir, cache)
	got, err := svc.Autocomplete(context.Background(), "Oak")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].PlaceID != "fresh" {
		t.Fatalf("suggestions = %+v", got)
	}
	if dir.autocompleteCalls != 1 {
		t.Errorf("directory calls = %d, want 1", dir.autocompleteCalls)
	}
}

func TestAutocomplete_EmptyInputRejected(t *testing.T) {
	svc := usecases.NewPlaceService(&mockPlaceDirectory{}, nil)
	if _, err := svc.Autocomplete(context.Background(), ""); err == nil {
		t.Error("expected an error for empty input")
	}
}

func TestDetails_CachedForADay(t *testing.T) {
	dir := &mockPlaceDirectory{
		detailsFn: func(placeID string) (*domain.PlaceDetails, error) {
			return &domain.PlaceDetails{Address: "500 State St", Lat: 43.07, Lng: -89.39}, nil
		},
	}
	cache := newMockCache()
	svc := usecases.NewPlaceService(dir, cache)

	got, err := svc.Details(context.Background(), "pid-9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Address != "500 State St" {
		t.Fatalf("details = %+v", got)
	}

	entry, ok := cache.entries["places:detail:pid-9"]
	if !ok {
		t.Fatal("details were not cached")
	}
	if entry.ttl != 86400 {
		t.Errorf("details ttl = %d, want 86400", entry.ttl)
	}

	// Second call is served from cache.
	if _, err := svc.Details(context.Background(), "pid-9"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir.detailsCalls != 1 {
		t.Errorf("directory calls = %d, want 1", dir.detailsCalls)
	}
}

func TestDetails_NoCacheStillResolves(t *testing.T) {
	dir := &mockPlaceDirectory{
		detailsFn: func(string) (*domain.PlaceDetails, error) {
			return &domain.PlaceDetails{Address: "A"}, nil
		},
	}
	svc := usecases.NewPlaceService(dir, nil)

	got, err := svc.Details(context.Background(), "pid-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Address != "A" {
		t.Errorf("details = %+v", got)
	}
}

func TestDetails_UpstreamErrorPropagates(t *testing.T) {
	dir := &mockPlaceDirectory{
		detailsFn: func(string) (*domain.PlaceDetails, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := usecases.NewPlaceService(dir, newMockCache())

	_, err := svc.Details(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
