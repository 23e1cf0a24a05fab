package usecases

import (
	"log/slog"
	"math"
	"sort"

	"github.com/2270330995/VRP-Carpool/internal/core/domain"
	"github.com/2270330995/VRP-Carpool/internal/pkg/geospatial"
)

// AssignStudentsGreedy partitions students across drivers under seat limits.
//
// Students are placed hardest-first: sorted by the cost of their cheapest
// driver, descending, so flexible students cannot steal the best driver from
// a student with few good options. Each student then takes the cheapest
// driver that still has a seat. The returned map has an entry for every
// driver, including those assigned nothing; students no driver could take
// are returned as the second value.
func AssignStudentsGreedy(drivers []domain.Driver, students []domain.Student, event domain.LatLng) (map[string][]domain.Student, []string) {
	assignments := make(map[string][]domain.Student, len(drivers))
	remainingSeats := make(map[string]int, len(drivers))
	for _, d := range drivers {
		assignments[d.ID] = []domain.Student{}
		remainingSeats[d.ID] = d.Seats()
	}

	sorted := make([]domain.Student, len(students))
	copy(sorted, students)
	sort.SliceStable(sorted, func(i, j int) bool {
		return minAssignmentCost(sorted[i], drivers, event) > minAssignmentCost(sorted[j], drivers, event)
	})

	var unassigned []string
	for _, student := range sorted {
		bestIdx := -1
		bestCost := math.MaxFloat64

		for i, driver := range drivers {
			if remainingSeats[driver.ID] <= 0 {
				continue
			}
			cost := assignmentCost(driver.Home.LatLng(), student.Home.LatLng(), event)
			if cost < bestCost {
				bestCost = cost
				bestIdx = i
			}
		}

		if bestIdx < 0 {
			unassigned = append(unassigned, student.ID)
			continue
		}

		best := drivers[bestIdx]
		assignments[best.ID] = append(assignments[best.ID], student)
		remainingSeats[best.ID]--
	}

	if len(unassigned) > 0 {
		slog.Warn("students unassigned due to seat limits", "student_ids", unassigned)
	}

	return assignments, unassigned
}

func minAssignmentCost(student domain.Student, drivers []domain.Driver, event domain.LatLng) float64 {
	best := math.MaxFloat64
	for _, d := range drivers {
		best = math.Min(best, assignmentCost(d.Home.LatLng(), student.Home.LatLng(), event))
	}
	return best
}

// assignmentCost approximates the detour of serving a student: driver home
// to student home, then student home to the event.
func assignmentCost(driverHome, studentHome, event domain.LatLng) float64 {
	return geospatial.DistanceKm(driverHome.Lat, driverHome.Lng, studentHome.Lat, studentHome.Lng) +
		geospatial.DistanceKm(studentHome.Lat, studentHome.Lng, event.Lat, event.Lng)
}
