package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/2270330995/VRP-Carpool/internal/core/domain"
	"github.com/2270330995/VRP-Carpool/internal/pkg/config"
)

// Client implements ports.PlaceDirectory against a Places-style web API.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

func New(cfg config.PlacesConfig) *Client {
	return &Client{
		http:    &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
	}
}

func (c *Client) Autocomplete(ctx context.Context, input string) ([]domain.PlaceSuggestion, error) {
	q := url.Values{}
	q.Set("input", input)
	q.Set("key", c.apiKey)

	var payload struct {
		Status      string `json:"status"`
		Predictions []struct {
			Description string `json:"description"`
			PlaceID     string `json:"place_id"`
		} `json:"predictions"`
	}
	if err := c.getJSON(ctx, "/autocomplete/json", q, &payload); err != nil {
		return nil, err
	}
	if payload.Status != "OK" && payload.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("places autocomplete status %s", payload.Status)
	}

	suggestions := make([]domain.PlaceSuggestion, 0, len(payload.Predictions))
	for _, p := range payload.Predictions {
		suggestions = append(suggestions, domain.PlaceSuggestion{
			Description: p.Description,
			PlaceID:     p.PlaceID,
		})
	}
	return suggestions, nil
}

func (c *Client) Details(ctx context.Context, placeID string) (*domain.PlaceDetails, error) {
	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("fields", "formatted_address,geometry")
	q.Set("key", c.apiKey)

	var payload struct {
		Status string `json:"status"`
		Result struct {
			FormattedAddress string `json:"formatted_address"`
			Geometry         struct {
				Location struct {
					Lat float64 `json:"lat"`
					Lng float64 `json:"lng"`
				} `json:"location"`
			} `json:"geometry"`
		} `json:"result"`
	}
	if err := c.getJSON(ctx, "/details/json", q, &payload); err != nil {
		return nil, err
	}
	if payload.Status == "NOT_FOUND" || payload.Status == "ZERO_RESULTS" {
		return nil, domain.ErrNotFound
	}
	if payload.Status != "OK" {
		return nil, fmt.Errorf("places details status %s", payload.Status)
	}

	return &domain.PlaceDetails{
		Address: payload.Result.FormattedAddress,
		Lat:     payload.Result.Geometry.Location.Lat,
		Lng:     payload.Result.Geometry.Location.Lng,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create places request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("places request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("places returned %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode places response: %w", err)
	}
	return nil
}
