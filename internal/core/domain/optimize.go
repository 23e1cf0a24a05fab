package domain

// Optimization modes accepted by the optimize endpoint.
const (
	ModeGlobalMinTime     = "GLOBAL_MIN_TIME"
	ModePerVehicleMinTime = "PER_VEHICLE_MIN_TIME"
)

// Timeline entry types.
const (
	VisitPickup  = "pickup"
	VisitDropoff = "dropoff"
	VisitOther   = "visit"
)

// Driver is a vehicle taking part in one optimization request.
type Driver struct {
	ID           string      `json:"id"`
	Home         *Coordinate `json:"home"`
	SeatCapacity *int        `json:"seatCapacity"`
}

// Seats returns the declared seat capacity, 0 when unset.
func (d Driver) Seats() int {
	if d.SeatCapacity == nil {
		return 0
	}
	return *d.SeatCapacity
}

// Student is a rider taking part in one optimization request.
type Student struct {
	ID   string      `json:"id"`
	Home *Coordinate `json:"home"`
}

// Event carries the shared destination of a request.
type Event struct {
	Location *Coordinate `json:"location"`
}

// OptimizeRequest is the inbound payload of the optimize operation.
// It is treated as immutable once validated.
type OptimizeRequest struct {
	Event           *Event    `json:"event"`
	Drivers         []Driver  `json:"drivers"`
	Students        []Student `json:"students"`
	GlobalStartTime string    `json:"globalStartTime,omitempty"`
	GlobalEndTime   string    `json:"globalEndTime,omitempty"`
	Mode            string    `json:"mode,omitempty"`
}

// TimeWindow is the optional global solve window, RFC 3339 timestamps.
type TimeWindow struct {
	Start string
	End   string
}

// Window returns the request's global time window.
func (r *OptimizeRequest) Window() TimeWindow {
	return TimeWindow{Start: r.GlobalStartTime, End: r.GlobalEndTime}
}

// TimelineEntry is one visit inside a route plan. Sequence is the 0-based
// position among retained visits, assigned at mapping time.
type TimelineEntry struct {
	Sequence      int     `json:"sequence"`
	Time          string  `json:"time"`
	Type          string  `json:"type"`
	StudentID     string  `json:"studentId,omitempty"`
	ShipmentLabel string  `json:"shipmentLabel,omitempty"`
	VisitLabel    string  `json:"visitLabel,omitempty"`
	Location      *LatLng `json:"location,omitempty"`
}

// RoutePlan is the ordered visit timeline for one vehicle, produced fresh
// per request.
type RoutePlan struct {
	DriverID      string          `json:"driverId"`
	DriverHome    *LatLng         `json:"driverHome,omitempty"`
	EventLocation *LatLng         `json:"eventLocation,omitempty"`
	Timeline      []TimelineEntry `json:"timeline"`
	Metrics       map[string]any  `json:"metrics"`
}

// OptimizeOutcome summarizes a finished optimize call for event consumers.
type OptimizeOutcome struct {
	Mode               string   `json:"mode"`
	FellBack           bool     `json:"fell_back"`
	Plans              int      `json:"plans"`
	UnassignedStudents []string `json:"unassigned_students,omitempty"`
}
