package usecases

import (
	"github.com/2270330995/VRP-Carpool/internal/core/domain"
)

// HasSeatCapacityViolation reports whether any plan picks up more unique
// students than its driver's declared seat capacity. Plans whose driver id
// does not match a requested driver cannot be checked and are skipped.
func HasSeatCapacityViolation(plans []domain.RoutePlan, req *domain.OptimizeRequest) bool {
	capacityByDriverID := make(map[string]int, len(req.Drivers))
	for _, d := range req.Drivers {
		capacityByDriverID[d.ID] = d.Seats()
	}

	for _, plan := range plans {
		capacity, known := capacityByDriverID[plan.DriverID]
		if plan.DriverID == "" || !known {
			continue
		}

		uniquePickups := make(map[string]struct{})
		for _, entry := range plan.Timeline {
			if entry.Type == domain.VisitPickup && entry.StudentID != "" {
				uniquePickups[entry.StudentID] = struct{}{}
			}
		}
		if len(uniquePickups) > capacity {
			return true
		}
	}

	return false
}
