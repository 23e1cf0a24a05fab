package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/2270330995/VRP-Carpool/internal/core/domain"
	"github.com/2270330995/VRP-Carpool/internal/core/ports"
)

// RunService creates and serves historical assignment runs: simple
// roster-based bookkeeping, separate from the optimize engine.
type RunService struct {
	drivers    ports.DriverRepository
	passengers ports.PassengerRepository
	runs       ports.AssignmentRunRepository
	events     ports.EventPublisher
}

// NewRunService creates a new RunService. events may be nil.
func NewRunService(drivers ports.DriverRepository, passengers ports.PassengerRepository, runs ports.AssignmentRunRepository, events ports.EventPublisher) *RunService {
	return &RunService{drivers: drivers, passengers: passengers, runs: runs, events: events}
}

// CreateRun fills drivers in roster order until their seats run out,
// persists the run with its per-stop rows, and publishes a run summary.
func (s *RunService) CreateRun(ctx context.Context, note string) (*domain.RunSummary, error) {
	drivers, err := s.drivers.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	passengers, err := s.passengers.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("list passengers: %w", err)
	}

	run, err := s.runs.CreateRun(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("create run: %w", err)
	}

	var rows []domain.Assignment
	pIdx := 0
	for _, d := range drivers {
		for stopOrder := 1; pIdx < len(passengers) && stopOrder <= d.Seats; stopOrder++ {
			rows = append(rows, domain.Assignment{
				RunID:       run.ID,
				DriverID:    d.ID,
				PassengerID: passengers[pIdx].ID,
				StopOrder:   stopOrder,
			})
			pIdx++
		}
	}

	if len(rows) > 0 {
		if err := s.runs.AddAssignments(ctx, run.ID, rows); err != nil {
			return nil, fmt.Errorf("save assignments: %w", err)
		}
	}

	summary := &domain.RunSummary{
		RunID:           run.ID,
		AssignedCount:   len(rows),
		UnassignedCount: len(passengers) - len(rows),
	}

	if s.events != nil {
		if err := s.events.PublishAssignmentRun(ctx, summary); err != nil {
			slog.Warn("publish assignment run failed", "run_id", run.ID, "error", err)
		}
	}

	return summary, nil
}

// ListRuns returns all runs, newest first.
func (s *RunService) ListRuns(ctx context.Context) ([]domain.AssignmentRun, error) {
	runs, err := s.runs.ListRuns(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].CreatedAt.After(runs[j].CreatedAt) })
	return runs, nil
}

// LatestRunDetail returns the detail of the most recent run.
func (s *RunService) LatestRunDetail(ctx context.Context) (*domain.RunDetail, error) {
	latest, err := s.runs.LatestRun(ctx)
	if err != nil {
		return nil, err
	}
	return s.RunDetail(ctx, latest.ID)
}

// RunDetail aggregates one run's assignment rows into per-driver stop lists
// and appends passengers the run left unassigned, sorted by name.
func (s *RunService) RunDetail(ctx context.Context, runID int64) (*domain.RunDetail, error) {
	run, err := s.runs.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}

	rows, err := s.runs.ListAssignments(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}

	planIndex := make(map[int64]int)
	plans := []domain.RunDriverPlan{}
	assignedPassengers := make(map[int64]struct{}, len(rows))
	for _, row := range rows {
		i, ok := planIndex[row.DriverID]
		if !ok {
			i = len(plans)
			planIndex[row.DriverID] = i
			plans = append(plans, domain.RunDriverPlan{
				DriverID:   row.DriverID,
				DriverName: row.DriverName,
				Seats:      row.DriverSeats,
			})
		}
		plans[i].Stops = append(plans[i].Stops, domain.RunStop{
			Order:            row.StopOrder,
			PassengerID:      row.PassengerID,
			PassengerName:    row.PassengerName,
			PassengerAddress: row.PassengerAddress,
		})
		assignedPassengers[row.PassengerID] = struct{}{}
	}

	allPassengers, err := s.passengers.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("list passengers: %w", err)
	}
	var unassigned []domain.RunStop
	for _, p := range allPassengers {
		if _, ok := assignedPassengers[p.ID]; ok {
			continue
		}
		unassigned = append(unassigned, domain.RunStop{
			PassengerID:      p.ID,
			PassengerName:    p.Name,
			PassengerAddress: p.Address,
		})
	}
	sort.Slice(unassigned, func(i, j int) bool { return unassigned[i].PassengerName < unassigned[j].PassengerName })

	return &domain.RunDetail{
		RunID:           run.ID,
		CreatedAt:       run.CreatedAt,
		Note:            run.Note,
		Plans:           plans,
		Unassigned:      unassigned,
		UnassignedCount: len(unassigned),
	}, nil
}

// DeleteRun removes a run and its assignment rows.
func (s *RunService) DeleteRun(ctx context.Context, runID int64) error {
	if _, err := s.runs.GetRun(ctx, runID); err != nil {
		return err
	}
	return s.runs.DeleteRun(ctx, runID)
}
