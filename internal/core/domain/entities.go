package domain

import (
	"time"
)

// RosterDriver is a persisted driver record. Roster rows are soft-deleted:
// Active=false hides them from default listings without losing run history.
type RosterDriver struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CarModel  string    `json:"car_model,omitempty"`
	Seats     int       `json:"seats"`
	Address   string    `json:"address"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// Passenger is a persisted rider record.
type Passenger struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// Destination is a persisted event location.
type Destination struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// AssignmentRun is one historical roster assignment.
type AssignmentRun struct {
	ID        int64     `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`
	Note      string    `json:"note,omitempty"`
}

// Assignment is one passenger placed on a driver within a run. Denormalized
// names are filled by the repository join for detail rendering.
type Assignment struct {
	RunID            int64  `json:"-"`
	DriverID         int64  `json:"driver_id"`
	DriverName       string `json:"driver_name,omitempty"`
	DriverSeats      int    `json:"driver_seats,omitempty"`
	PassengerID      int64  `json:"passenger_id"`
	PassengerName    string `json:"passenger_name,omitempty"`
	PassengerAddress string `json:"passenger_address,omitempty"`
	StopOrder        int    `json:"stop_order"`
}

// RunStop is one passenger stop inside a run detail.
type RunStop struct {
	Order            int    `json:"order"`
	PassengerID      int64  `json:"passenger_id"`
	PassengerName    string `json:"passenger_name"`
	PassengerAddress string `json:"passenger_address"`
}

// RunDriverPlan groups the stops of one driver inside a run detail.
type RunDriverPlan struct {
	DriverID   int64     `json:"driver_id"`
	DriverName string    `json:"driver_name"`
	Seats      int       `json:"seats"`
	Stops      []RunStop `json:"stops"`
}

// RunDetail is the full view of one run: per-driver stop lists plus
// passengers that did not fit.
type RunDetail struct {
	RunID           int64           `json:"run_id"`
	CreatedAt       time.Time       `json:"created_at"`
	Note            string          `json:"note,omitempty"`
	Plans           []RunDriverPlan `json:"plans"`
	Unassigned      []RunStop       `json:"unassigned"`
	UnassignedCount int             `json:"unassigned_count"`
}

// RunSummary is the creation response and published run event.
type RunSummary struct {
	RunID           int64 `json:"run_id"`
	AssignedCount   int   `json:"assigned_count"`
	UnassignedCount int   `json:"unassigned_count"`
}

// PlaceSuggestion is one autocomplete prediction.
type PlaceSuggestion struct {
	Description string `json:"description"`
	PlaceID     string `json:"place_id"`
}

// PlaceDetails is the resolved address and location of a place.
type PlaceDetails struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}
