package fleetrouting

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/2270330995/VRP-Carpool/internal/pkg/metrics"
)

// refreshSkew refreshes tokens this long before they expire so an
// in-flight solver call never carries a token about to lapse.
const refreshSkew = 60 * time.Second

type accessToken struct {
	Value     string
	ExpiresAt time.Time
}

func (t *accessToken) fresh() bool {
	return t.ExpiresAt.After(time.Now().Add(refreshSkew))
}

// tokenSource fetches bearer tokens from the token endpoint and caches
// them until shortly before expiry. Reads go through an atomic pointer
// so concurrent solver calls never contend on a lock; the mutex only
// serializes the refresh itself. Callers arriving while a refresh is in
// flight reuse the previous token as long as it has not actually
// expired, which the skew window guarantees covers the fetch.
type tokenSource struct {
	client   *http.Client
	tokenURL string

	current atomic.Pointer[accessToken]
	mu      sync.Mutex
}

func newTokenSource(client *http.Client, tokenURL string) *tokenSource {
	return &tokenSource{client: client, tokenURL: tokenURL}
}

// Token returns a valid access token, reusing the cached one while it
// has more than refreshSkew of life left.
func (ts *tokenSource) Token(ctx context.Context) (string, error) {
	if tok := ts.current.Load(); tok != nil && tok.fresh() {
		return tok.Value, nil
	}

	if !ts.mu.TryLock() {
		// Another call holds the lock and is refreshing. Serve the
		// aging token if it is still within its real lifetime.
		if tok := ts.current.Load(); tok != nil && tok.ExpiresAt.After(time.Now()) {
			return tok.Value, nil
		}
		ts.mu.Lock()
	}
	defer ts.mu.Unlock()

	// The refresh we waited behind may have installed a fresh token.
	if tok := ts.current.Load(); tok != nil && tok.fresh() {
		return tok.Value, nil
	}

	token, err := ts.fetch(ctx)
	if err != nil {
		metrics.TokenRefreshes.WithLabelValues("error").Inc()
		return "", err
	}
	metrics.TokenRefreshes.WithLabelValues("ok").Inc()

	ts.current.Store(token)
	return token.Value, nil
}

func (ts *tokenSource) fetch(ctx context.Context) (*accessToken, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ts.tokenURL,
		strings.NewReader("grant_type=client_credentials&scope=https://www.googleapis.com/auth/cloud-platform"))
	if err != nil {
		return nil, fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := ts.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("token endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	if payload.AccessToken == "" {
		return nil, fmt.Errorf("token endpoint returned empty access_token")
	}

	return &accessToken{
		Value:     payload.AccessToken,
		ExpiresAt: time.Now().Add(time.Duration(payload.ExpiresIn) * time.Second),
	}, nil
}
