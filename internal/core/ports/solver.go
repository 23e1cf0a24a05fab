package ports

import (
	"context"

	"github.com/2270330995/VRP-Carpool/internal/core/domain"
)

// RouteSolver invokes the external combinatorial route-optimization service
// over a vehicle/shipment model scoped to the given drivers and students.
// Implementations perform no retries; network or non-success responses wrap
// domain.ErrSolverUnavailable.
type RouteSolver interface {
	Solve(ctx context.Context, drivers []domain.Driver, students []domain.Student, event domain.LatLng, window domain.TimeWindow) (*SolverResponse, error)
}

// SolverResponse is the typed shape of a solver answer. Fields outside this
// contract are ignored; route metrics are kept opaque.
type SolverResponse struct {
	Routes []SolverRoute `json:"routes"`
}

// SolverRoute is one vehicle route in a solver response. VehicleIndex is a
// pointer so an absent index is distinguishable from index 0.
type SolverRoute struct {
	VehicleIndex *int           `json:"vehicleIndex,omitempty"`
	VehicleName  string         `json:"vehicleName,omitempty"`
	VehicleLabel string         `json:"vehicleLabel,omitempty"`
	Visits       []SolverVisit  `json:"visits,omitempty"`
	Metrics      map[string]any `json:"metrics,omitempty"`
}

// SolverVisit is one visit within a route. Visits lacking both label fields
// or a start time are dropped during mapping.
type SolverVisit struct {
	Label         string `json:"label,omitempty"`
	VisitLabel    string `json:"visitLabel,omitempty"`
	ShipmentLabel string `json:"shipmentLabel,omitempty"`
	StartTime     string `json:"startTime,omitempty"`
}
