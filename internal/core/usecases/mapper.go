package usecases

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/2270330995/VRP-Carpool/internal/core/domain"
	"github.com/2270330995/VRP-Carpool/internal/core/ports"
)

// driverRef is a resolved vehicle identity: the driver id and, when the
// identity maps back to a requested driver, a copy of that driver's home.
type driverRef struct {
	id   string
	home *domain.LatLng
}

// driverResolver tries to resolve a route's vehicle identity from one
// source. Resolvers are consulted in a fixed priority order; the first
// match wins.
type driverResolver func(route ports.SolverRoute) (driverRef, bool)

// BuildRoutePlans maps a solver response against the request it answered,
// producing one RoutePlan per route. Visits lacking a label or start time
// are dropped with a diagnostic rather than failing the route; mapping is
// pure and produces identical output for identical input.
func BuildRoutePlans(resp *ports.SolverResponse, req *domain.OptimizeRequest) []domain.RoutePlan {
	if resp == nil || len(resp.Routes) == 0 {
		return []domain.RoutePlan{}
	}

	studentHomeByID := make(map[string]domain.LatLng, len(req.Students))
	for _, s := range req.Students {
		studentHomeByID[s.ID] = s.Home.LatLng()
	}
	event := req.Event.Location.LatLng()

	resolvers := driverResolvers(req)

	plans := make([]domain.RoutePlan, 0, len(resp.Routes))
	for routeOrder, route := range resp.Routes {
		timeline := make([]domain.TimelineEntry, 0, len(route.Visits))
		for _, visit := range route.Visits {
			visitLabel := visit.Label
			if visitLabel == "" {
				visitLabel = visit.VisitLabel
			}
			if strings.TrimSpace(visitLabel) == "" || strings.TrimSpace(visit.StartTime) == "" {
				slog.Warn("skipping visit with missing required fields",
					"label", visitLabel, "start_time", visit.StartTime)
				continue
			}

			visitType := inferVisitType(visitLabel)
			studentID := extractStudentID(visitLabel, visit.ShipmentLabel)

			timeline = append(timeline, domain.TimelineEntry{
				Sequence:      len(timeline),
				Time:          visit.StartTime,
				Type:          visitType,
				StudentID:     studentID,
				ShipmentLabel: visit.ShipmentLabel,
				VisitLabel:    visitLabel,
				Location:      resolveVisitLocation(visitType, studentID, studentHomeByID, event),
			})
		}

		ref := resolveDriver(route, routeOrder, resolvers)

		metrics := route.Metrics
		if metrics == nil {
			metrics = map[string]any{}
		}

		eventCopy := event
		plans = append(plans, domain.RoutePlan{
			DriverID:      ref.id,
			DriverHome:    ref.home,
			EventLocation: &eventCopy,
			Timeline:      timeline,
			Metrics:       metrics,
		})
	}

	return plans
}

// driverResolvers builds the identity resolution chain for one request:
// vehicle index, then vehicle name, then vehicle label. The name table
// accepts both the "drivers/<id>" resource form and the bare id.
func driverResolvers(req *domain.OptimizeRequest) []driverResolver {
	nameToDriver := make(map[string]int, 2*len(req.Drivers))
	for i, d := range req.Drivers {
		nameToDriver["drivers/"+d.ID] = i
		nameToDriver[d.ID] = i
	}

	refAt := func(i int) driverRef {
		home := req.Drivers[i].Home.LatLng()
		return driverRef{id: req.Drivers[i].ID, home: &home}
	}

	byIndex := func(route ports.SolverRoute) (driverRef, bool) {
		if route.VehicleIndex == nil {
			return driverRef{}, false
		}
		idx := *route.VehicleIndex
		if idx < 0 || idx >= len(req.Drivers) {
			slog.Warn("route vehicleIndex out of range", "vehicle_index", idx, "drivers", len(req.Drivers))
			return driverRef{}, false
		}
		return refAt(idx), true
	}
	byName := func(route ports.SolverRoute) (driverRef, bool) {
		if route.VehicleName == "" {
			return driverRef{}, false
		}
		i, ok := nameToDriver[route.VehicleName]
		if !ok {
			return driverRef{}, false
		}
		return refAt(i), true
	}
	byLabel := func(route ports.SolverRoute) (driverRef, bool) {
		if route.VehicleLabel == "" {
			return driverRef{}, false
		}
		i, ok := nameToDriver[route.VehicleLabel]
		if !ok {
			return driverRef{}, false
		}
		return refAt(i), true
	}

	return []driverResolver{byIndex, byName, byLabel}
}

// resolveDriver runs the resolver chain, falling back to a synthetic id so
// the route still maps to a plan while staying visibly unresolved.
func resolveDriver(route ports.SolverRoute, routeOrder int, resolvers []driverResolver) driverRef {
	for _, resolve := range resolvers {
		if ref, ok := resolve(route); ok {
			return ref
		}
	}
	slog.Warn("unable to resolve driver for route",
		"vehicle_name", route.VehicleName, "vehicle_label", route.VehicleLabel, "route_order", routeOrder)
	return driverRef{id: fmt.Sprintf("unknown_driver_%d", routeOrder+1)}
}

func inferVisitType(visitLabel string) string {
	switch {
	case strings.HasPrefix(visitLabel, "pickup_"):
		return domain.VisitPickup
	case strings.HasPrefix(visitLabel, "dropoff_"):
		return domain.VisitDropoff
	default:
		return domain.VisitOther
	}
}

// extractStudentID reads the id after the last underscore of the visit
// label, falling back to the shipment label when the visit label is absent.
func extractStudentID(visitLabel, shipmentLabel string) string {
	label := visitLabel
	if label == "" {
		label = shipmentLabel
	}
	idx := strings.LastIndex(label, "_")
	if idx < 0 || idx == len(label)-1 {
		return ""
	}
	return label[idx+1:]
}

func resolveVisitLocation(visitType, studentID string, studentHomeByID map[string]domain.LatLng, event domain.LatLng) *domain.LatLng {
	switch visitType {
	case domain.VisitPickup:
		if home, ok := studentHomeByID[studentID]; ok {
			return &home
		}
		return nil
	case domain.VisitDropoff:
		loc := event
		return &loc
	default:
		return nil
	}
}
