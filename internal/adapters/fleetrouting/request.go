package fleetrouting

import (
	"fmt"
	"time"

	"github.com/2270330995/VRP-Carpool/internal/core/domain"
)

// Wire types for the optimizeTours request body. Load amounts are
// string-encoded integers, which is what the service expects.

type wireLatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type wireLoadLimit struct {
	MaxLoad string `json:"maxLoad"`
}

type wireVehicle struct {
	Name          string                   `json:"name"`
	Label         string                   `json:"label"`
	StartLocation wireLatLng               `json:"startLocation"`
	EndLocation   wireLatLng               `json:"endLocation"`
	LoadLimits    map[string]wireLoadLimit `json:"loadLimits"`
}

type wireLoadDemand struct {
	Amount string `json:"amount"`
}

type wireVisitRequest struct {
	ArrivalLocation wireLatLng `json:"arrivalLocation"`
	Label           string     `json:"label"`
}

type wireShipment struct {
	Name        string                    `json:"name"`
	LoadDemands map[string]wireLoadDemand `json:"loadDemands"`
	Pickups     []wireVisitRequest        `json:"pickups"`
	Deliveries  []wireVisitRequest        `json:"deliveries"`
}

type wireObjective struct {
	Type string `json:"type"`
}

type wireModel struct {
	Vehicles        []wireVehicle   `json:"vehicles"`
	Shipments       []wireShipment  `json:"shipments"`
	Objectives      []wireObjective `json:"objectives"`
	GlobalStartTime string          `json:"globalStartTime,omitempty"`
	GlobalEndTime   string          `json:"globalEndTime,omitempty"`
}

type optimizeToursRequest struct {
	Model      wireModel `json:"model"`
	SearchMode string    `json:"searchMode"`
}

// buildOptimizeBody assembles the vehicle/shipment model for one solver call.
// Every driver becomes a vehicle running from home to the event; every student
// becomes a one-seat shipment picked up at home and delivered at the event.
func buildOptimizeBody(drivers []domain.Driver, students []domain.Student, event domain.LatLng, window domain.TimeWindow) (*optimizeToursRequest, error) {
	vehicles := make([]wireVehicle, 0, len(drivers))
	for _, d := range drivers {
		vehicles = append(vehicles, wireVehicle{
			Name:          "drivers/" + d.ID,
			Label:         d.ID,
			StartLocation: toWire(d.Home.LatLng()),
			EndLocation:   toWire(event),
			LoadLimits: map[string]wireLoadLimit{
				"seats": {MaxLoad: fmt.Sprintf("%d", d.Seats())},
			},
		})
	}

	shipments := make([]wireShipment, 0, len(students))
	for _, s := range students {
		shipments = append(shipments, wireShipment{
			Name: "students/" + s.ID,
			LoadDemands: map[string]wireLoadDemand{
				"seats": {Amount: "1"},
			},
			Pickups: []wireVisitRequest{{
				ArrivalLocation: toWire(s.Home.LatLng()),
				Label:           "pickup_student_" + s.ID,
			}},
			Deliveries: []wireVisitRequest{{
				ArrivalLocation: toWire(event),
				Label:           "dropoff_student_" + s.ID,
			}},
		})
	}

	model := wireModel{
		Vehicles:   vehicles,
		Shipments:  shipments,
		Objectives: []wireObjective{{Type: "MIN_TRAVEL_TIME"}},
	}
	if window.Start != "" {
		start, err := NormalizeTimestamp(window.Start)
		if err != nil {
			return nil, fmt.Errorf("global start time: %w", err)
		}
		model.GlobalStartTime = start
	}
	if window.End != "" {
		end, err := NormalizeTimestamp(window.End)
		if err != nil {
			return nil, fmt.Errorf("global end time: %w", err)
		}
		model.GlobalEndTime = end
	}

	return &optimizeToursRequest{
		Model:      model,
		SearchMode: "RETURN_FAST",
	}, nil
}

func toWire(l domain.LatLng) wireLatLng {
	return wireLatLng{Latitude: l.Lat, Longitude: l.Lng}
}

// NormalizeTimestamp reduces an RFC 3339 instant to whole-second UTC form,
// truncating rather than rounding fractional seconds. The solver rejects
// sub-second precision.
func NormalizeTimestamp(value string) (string, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return "", fmt.Errorf("parse timestamp %q: %w", value, err)
	}
	return t.UTC().Truncate(time.Second).Format("2006-01-02T15:04:05Z"), nil
}
