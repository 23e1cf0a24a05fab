package geospatial

import (
	"math"
	"testing"
)

func TestDistanceKm_ZeroForIdenticalPoints(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{43.0731, -89.4012},
		{-33.8688, 151.2093},
	}
	for _, p := range points {
		if d := DistanceKm(p[0], p[1], p[0], p[1]); d != 0 {
			t.Errorf("DistanceKm(%v, %v, same) = %v, want 0", p[0], p[1], d)
		}
	}
}

func TestDistanceKm_Symmetric(t *testing.T) {
	ab := DistanceKm(43.0731, -89.4012, 43.0800, -89.4000)
	ba := DistanceKm(43.0800, -89.4000, 43.0731, -89.4012)
	if math.Abs(ab-ba) > 1e-12 {
		t.Errorf("distance not symmetric: %v vs %v", ab, ba)
	}
}

func TestDistanceKm_KnownDistance(t *testing.T) {
	// Madison Capitol to Milwaukee City Hall, roughly 125 km.
	d := DistanceKm(43.0747, -89.3841, 43.0417, -87.9099)
	if d < 115 || d > 135 {
		t.Errorf("DistanceKm = %v, want roughly 125", d)
	}
}

func TestDistanceKm_ShortHop(t *testing.T) {
	// Two points ~0.8 km apart should stay well under 2 km.
	d := DistanceKm(43.0731, -89.4012, 43.0750, -89.4100)
	if d <= 0 || d > 2 {
		t.Errorf("DistanceKm = %v, want small positive value", d)
	}
}
