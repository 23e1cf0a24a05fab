package domain

// LatLng is a geographic coordinate (WGS 84).
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Coordinate is an inbound coordinate whose components may be absent in the
// request JSON. Validation rejects coordinates with a missing component;
// after validation LatLng() is safe to call.
type Coordinate struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// Complete reports whether both components are present.
func (c *Coordinate) Complete() bool {
	return c != nil && c.Lat != nil && c.Lng != nil
}

// LatLng converts a complete coordinate to a concrete LatLng.
func (c *Coordinate) LatLng() LatLng {
	return LatLng{Lat: *c.Lat, Lng: *c.Lng}
}

// Coord builds a complete Coordinate from literal components.
func Coord(lat, lng float64) *Coordinate {
	return &Coordinate{Lat: &lat, Lng: &lng}
}
