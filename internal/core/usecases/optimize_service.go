package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/2270330995/VRP-Carpool/internal/core/domain"
	"github.com/2270330995/VRP-Carpool/internal/core/ports"
	"github.com/2270330995/VRP-Carpool/internal/pkg/metrics"
)

// OptimizeService is the optimization orchestrator: it validates a request,
// picks a solve mode, and reconciles solver answers into route plans.
//
// The default mode solves the whole model once; when the global answer
// breaches any driver's seat capacity it is discarded entirely and the
// request is re-solved per vehicle over a greedy student partition. The
// per-vehicle path can also be requested directly.
type OptimizeService struct {
	solver ports.RouteSolver
	events ports.EventPublisher
}

// NewOptimizeService creates a new OptimizeService. events may be nil.
func NewOptimizeService(solver ports.RouteSolver, events ports.EventPublisher) *OptimizeService {
	return &OptimizeService{solver: solver, events: events}
}

// Optimize runs one optimization request end to end and returns the merged
// route plans. An empty plan list is a valid success.
func (s *OptimizeService) Optimize(ctx context.Context, req *domain.OptimizeRequest) ([]domain.RoutePlan, error) {
	if err := ValidateOptimizeRequest(req); err != nil {
		metrics.OptimizeRequests.WithLabelValues("invalid", "rejected").Inc()
		return nil, err
	}

	event := req.Event.Location.LatLng()

	if strings.EqualFold(req.Mode, domain.ModePerVehicleMinTime) {
		plans, unassigned, err := s.solvePerVehicle(ctx, req, event)
		if err != nil {
			metrics.OptimizeRequests.WithLabelValues("per_vehicle", "error").Inc()
			return nil, err
		}
		metrics.OptimizeRequests.WithLabelValues("per_vehicle", "ok").Inc()
		s.publishOutcome(ctx, domain.ModePerVehicleMinTime, false, plans, unassigned)
		return plans, nil
	}

	resp, err := s.solver.Solve(ctx, req.Drivers, req.Students, event, req.Window())
	if err != nil {
		metrics.OptimizeRequests.WithLabelValues("global", "error").Inc()
		return nil, fmt.Errorf("global solve: %w", err)
	}

	plans := BuildRoutePlans(resp, req)
	if !HasSeatCapacityViolation(plans, req) {
		metrics.OptimizeRequests.WithLabelValues("global", "ok").Inc()
		s.publishOutcome(ctx, domain.ModeGlobalMinTime, false, plans, nil)
		return plans, nil
	}

	slog.Warn("seat-capacity violation in global optimize result, falling back to per-vehicle solving")
	metrics.CapacityFallbacks.Inc()

	plans, unassigned, err := s.solvePerVehicle(ctx, req, event)
	if err != nil {
		metrics.OptimizeRequests.WithLabelValues("global", "error").Inc()
		return nil, err
	}
	metrics.OptimizeRequests.WithLabelValues("global", "fallback").Inc()
	s.publishOutcome(ctx, domain.ModeGlobalMinTime, true, plans, unassigned)
	return plans, nil
}

// solvePerVehicle partitions students greedily and issues one scoped solver
// call per driver with at least one assigned student. Calls run
// concurrently; the merged output keeps driver iteration order regardless
// of completion order.
func (s *OptimizeService) solvePerVehicle(ctx context.Context, req *domain.OptimizeRequest, event domain.LatLng) ([]domain.RoutePlan, []string, error) {
	assignments, unassigned := AssignStudentsGreedy(req.Drivers, req.Students, event)
	metrics.UnassignedStudents.Add(float64(len(unassigned)))

	results := make([][]domain.RoutePlan, len(req.Drivers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(len(req.Drivers))
	for i, driver := range req.Drivers {
		assigned := assignments[driver.ID]
		if len(assigned) == 0 {
			continue
		}

		g.Go(func() error {
			scoped := &domain.OptimizeRequest{
				Event:           req.Event,
				Drivers:         []domain.Driver{driver},
				Students:        assigned,
				GlobalStartTime: req.GlobalStartTime,
				GlobalEndTime:   req.GlobalEndTime,
				Mode:            domain.ModeGlobalMinTime,
			}

			resp, err := s.solver.Solve(gctx, scoped.Drivers, scoped.Students, event, scoped.Window())
			if err != nil {
				return fmt.Errorf("solve for driver %s: %w", driver.ID, err)
			}
			results[i] = BuildRoutePlans(resp, scoped)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	merged := make([]domain.RoutePlan, 0, len(req.Drivers))
	for _, plans := range results {
		merged = append(merged, plans...)
	}
	return merged, unassigned, nil
}

func (s *OptimizeService) publishOutcome(ctx context.Context, mode string, fellBack bool, plans []domain.RoutePlan, unassigned []string) {
	if s.events == nil {
		return
	}
	outcome := &domain.OptimizeOutcome{
		Mode:               mode,
		FellBack:           fellBack,
		Plans:              len(plans),
		UnassignedStudents: unassigned,
	}
	if err := s.events.PublishOptimizeOutcome(ctx, outcome); err != nil {
		slog.Warn("publish optimize outcome failed", "error", err)
	}
}
