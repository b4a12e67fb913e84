package geo

import (
	"math"
	"testing"
)

func TestHaversineKm(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
		wantKm                 float64
		tolerance              float64
	}{
		{"same point", 40.7128, -74.0060, 40.7128, -74.0060, 0, 0.001},
		{"new york to los angeles", 40.7128, -74.0060, 34.0522, -118.2437, 3936, 10},
		{"london to paris", 51.5074, -0.1278, 48.8566, 2.3522, 344, 5},
		{"across the equator", -1.0, 10.0, 1.0, 10.0, 222.4, 1},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := HaversineKm(tc.lat1, tc.lng1, tc.lat2, tc.lng2)
			if math.Abs(got-tc.wantKm) > tc.tolerance {
				t.Fatalf("distance = %.2f km, want %.2f km (+/- %.2f)", got, tc.wantKm, tc.tolerance)
			}
		})
	}
}

func TestHaversineKmIsSymmetric(t *testing.T) {
	t.Parallel()

	forward := HaversineKm(40.7128, -74.0060, 34.0522, -118.2437)
	backward := HaversineKm(34.0522, -118.2437, 40.7128, -74.0060)
	if math.Abs(forward-backward) > 1e-9 {
		t.Fatalf("forward %.9f != backward %.9f", forward, backward)
	}
}
