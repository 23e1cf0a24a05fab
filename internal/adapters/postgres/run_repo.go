package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/2270330995/VRP-Carpool/internal/core/domain"
)

// RunRepo implements ports.AssignmentRunRepository.
type RunRepo struct {
	db *DB
}

func NewRunRepo(db *DB) *RunRepo {
	return &RunRepo{db: db}
}

func (r *RunRepo) CreateRun(ctx context.Context, note string) (*domain.AssignmentRun, error) {
	run := &domain.AssignmentRun{Note: note}
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO assignment_runs (note) VALUES ($1)
		RETURNING id, created_at
	`, note).Scan(&run.ID, &run.CreatedAt)
	if err != nil {
		return nil, err
	}
	return run, nil
}

// AddAssignments inserts all rows of a run in one transaction so a run is
// never persisted half-filled.
func (r *RunRepo) AddAssignments(ctx context.Context, runID int64, rows []domain.Assignment) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, a := range rows {
		_, err := tx.Exec(ctx, `
			INSERT INTO assignments (run_id, driver_id, passenger_id, stop_order)
			VALUES ($1, $2, $3, $4)
		`, runID, a.DriverID, a.PassengerID, a.StopOrder)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *RunRepo) ListRuns(ctx context.Context) ([]domain.AssignmentRun, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, COALESCE(note, ''), created_at
		FROM assignment_runs ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []domain.AssignmentRun
	for rows.Next() {
		var run domain.AssignmentRun
		if err := rows.Scan(&run.ID, &run.Note, &run.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (r *RunRepo) GetRun(ctx context.Context, id int64) (*domain.AssignmentRun, error) {
	run := &domain.AssignmentRun{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, COALESCE(note, ''), created_at
		FROM assignment_runs WHERE id = $1
	`, id).Scan(&run.ID, &run.Note, &run.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

func (r *RunRepo) LatestRun(ctx context.Context) (*domain.AssignmentRun, error) {
	run := &domain.AssignmentRun{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, COALESCE(note, ''), created_at
		FROM assignment_runs ORDER BY created_at DESC, id DESC LIMIT 1
	`).Scan(&run.ID, &run.Note, &run.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

func (r *RunRepo) ListAssignments(ctx context.Context, runID int64) ([]domain.Assignment, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT a.run_id, a.driver_id, d.name, d.seats,
		       a.passenger_id, p.name, p.address, a.stop_order
		FROM assignments a
		JOIN drivers d ON d.id = a.driver_id
		JOIN passengers p ON p.id = a.passenger_id
		WHERE a.run_id = $1
		ORDER BY a.driver_id, a.stop_order
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []domain.Assignment
	for rows.Next() {
		var a domain.Assignment
		if err := rows.Scan(&a.RunID, &a.DriverID, &a.DriverName, &a.DriverSeats,
			&a.PassengerID, &a.PassengerName, &a.PassengerAddress, &a.StopOrder); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// DeleteRun removes a run and its rows. Assignment rows cascade from the
// run foreign key.
func (r *RunRepo) DeleteRun(ctx context.Context, runID int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM assignment_runs WHERE id = $1`, runID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
