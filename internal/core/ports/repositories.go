package ports

import (
	"context"

	"github.com/2270330995/VRP-Carpool/internal/core/domain"
)

// DriverRepository persists the driver roster.
type DriverRepository interface {
	List(ctx context.Context, includeInactive bool) ([]domain.RosterDriver, error)
	GetByID(ctx context.Context, id int64) (*domain.RosterDriver, error)
	Create(ctx context.Context, d *domain.RosterDriver) error
	Update(ctx context.Context, d *domain.RosterDriver) error
	SetActive(ctx context.Context, id int64, active bool) error
}

// PassengerRepository persists the passenger roster.
type PassengerRepository interface {
	List(ctx context.Context, includeInactive bool) ([]domain.Passenger, error)
	GetByID(ctx context.Context, id int64) (*domain.Passenger, error)
	Create(ctx context.Context, p *domain.Passenger) error
	Update(ctx context.Context, p *domain.Passenger) error
	SetActive(ctx context.Context, id int64, active bool) error
}

// DestinationRepository persists saved event locations.
type DestinationRepository interface {
	List(ctx context.Context, includeInactive bool) ([]domain.Destination, error)
	GetByID(ctx context.Context, id int64) (*domain.Destination, error)
	Create(ctx context.Context, d *domain.Destination) error
	Update(ctx context.Context, d *domain.Destination) error
	SetActive(ctx context.Context, id int64, active bool) error
}

// AssignmentRunRepository persists historical assignment runs.
type AssignmentRunRepository interface {
	CreateRun(ctx context.Context, note string) (*domain.AssignmentRun, error)
	AddAssignments(ctx context.Context, runID int64, rows []domain.Assignment) error
	ListRuns(ctx context.Context) ([]domain.AssignmentRun, error)
	GetRun(ctx context.Context, id int64) (*domain.AssignmentRun, error)
	LatestRun(ctx context.Context) (*domain.AssignmentRun, error)
	// ListAssignments returns rows ordered by driver id, then stop order.
	ListAssignments(ctx context.Context, runID int64) ([]domain.Assignment, error)
	DeleteRun(ctx context.Context, runID int64) error
}
