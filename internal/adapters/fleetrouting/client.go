package fleetrouting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/2270330995/VRP-Carpool/internal/core/domain"
	"github.com/2270330995/VRP-Carpool/internal/core/ports"
	"github.com/2270330995/VRP-Carpool/internal/pkg/config"
	"github.com/2270330995/VRP-Carpool/internal/pkg/metrics"
)

var tracer = otel.Tracer("fleetrouting")

// Client calls the fleet-routing optimizeTours endpoint. It implements
// ports.RouteSolver: one request per call, no retries, and any transport
// or non-success failure wraps domain.ErrSolverUnavailable so callers can
// translate it uniformly.
type Client struct {
	http    *http.Client
	baseURL string
	project string
	tokens  *tokenSource
}

func New(cfg config.SolverConfig) *Client {
	httpClient := &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		project: cfg.Project,
		tokens:  newTokenSource(httpClient, cfg.TokenURL),
	}
}

func (c *Client) Solve(ctx context.Context, drivers []domain.Driver, students []domain.Student, event domain.LatLng, window domain.TimeWindow) (*ports.SolverResponse, error) {
	body, err := buildOptimizeBody(drivers, students, event, window)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal solver request: %w", err)
	}

	scope := "global"
	if len(drivers) == 1 {
		scope = "per_vehicle"
	}

	ctx, span := tracer.Start(ctx, "solver.optimizeTours", trace.WithAttributes(
		attribute.String("solver.scope", scope),
		attribute.Int("solver.vehicles", len(drivers)),
		attribute.Int("solver.shipments", len(students)),
	))
	defer span.End()
	fail := func(err error) error {
		span.RecordError(err)
		span.SetStatus(codes.Error, "solve failed")
		return err
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fail(fmt.Errorf("%w: %w", domain.ErrSolverUnavailable, err))
	}

	url := fmt.Sprintf("%s/v1/projects/%s:optimizeTours", c.baseURL, c.project)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create solver request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	slog.Debug("calling route solver",
		"vehicles", len(drivers),
		"shipments", len(students),
		"scope", scope,
	)

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.SolverCallDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SolverCalls.WithLabelValues(scope, "error").Inc()
		return nil, fail(fmt.Errorf("%w: %w", domain.ErrSolverUnavailable, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.SolverCalls.WithLabelValues(scope, "error").Inc()
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
		return nil, fail(fmt.Errorf("%w: solver returned %d: %s",
			domain.ErrSolverUnavailable, resp.StatusCode, strings.TrimSpace(string(b))))
	}

	var solved ports.SolverResponse
	if err := json.NewDecoder(resp.Body).Decode(&solved); err != nil {
		metrics.SolverCalls.WithLabelValues(scope, "error").Inc()
		return nil, fail(fmt.Errorf("%w: decode solver response: %w", domain.ErrSolverUnavailable, err))
	}

	metrics.SolverCalls.WithLabelValues(scope, "ok").Inc()
	return &solved, nil
}
