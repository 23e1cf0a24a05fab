package usecases

import (
	"fmt"
	"strings"

	"github.com/2270330995/VRP-Carpool/internal/core/domain"
)

// ValidateOptimizeRequest checks an optimize request structurally and
// reports the first offending field as a *domain.ValidationError.
func ValidateOptimizeRequest(req *domain.OptimizeRequest) error {
	if req == nil {
		return &domain.ValidationError{Field: "body", Reason: "is required"}
	}
	if req.Event == nil || req.Event.Location == nil {
		return &domain.ValidationError{Field: "event.location", Reason: "is required"}
	}
	if !req.Event.Location.Complete() {
		return &domain.ValidationError{Field: "event.location", Reason: "lat/lng are required"}
	}

	if len(req.Drivers) == 0 {
		return &domain.ValidationError{Field: "drivers", Reason: "must not be empty"}
	}
	for i, d := range req.Drivers {
		if strings.TrimSpace(d.ID) == "" {
			return &domain.ValidationError{Field: fmt.Sprintf("drivers[%d].id", i), Reason: "is required"}
		}
		if d.Home == nil {
			return &domain.ValidationError{Field: fmt.Sprintf("drivers[%d].home", i), Reason: "is required"}
		}
		if !d.Home.Complete() {
			return &domain.ValidationError{Field: fmt.Sprintf("drivers[%d].home", i), Reason: "lat/lng are required"}
		}
		if d.SeatCapacity == nil || *d.SeatCapacity <= 0 {
			return &domain.ValidationError{Field: fmt.Sprintf("drivers[%d].seatCapacity", i), Reason: "must be > 0"}
		}
	}

	if len(req.Students) == 0 {
		return &domain.ValidationError{Field: "students", Reason: "must not be empty"}
	}
	for i, s := range req.Students {
		if strings.TrimSpace(s.ID) == "" {
			return &domain.ValidationError{Field: fmt.Sprintf("students[%d].id", i), Reason: "is required"}
		}
		if s.Home == nil {
			return &domain.ValidationError{Field: fmt.Sprintf("students[%d].home", i), Reason: "is required"}
		}
		if !s.Home.Complete() {
			return &domain.ValidationError{Field: fmt.Sprintf("students[%d].home", i), Reason: "lat/lng are required"}
		}
	}

	return nil
}
