package sensors

import (
	"testing"
	"time"
)

func TestSimulatedSource_ReadingsStayInRange(t *testing.T) {
	t.Parallel()

	src := newSimulatedSource()
	for i := 0; i < 200; i++ {
		r := src.Read()

		if !r.Simulated {
			t.Fatalf("simulated source must flag readings as simulated")
		}
		if len(r.Errors) != 0 {
			t.Fatalf("healthy simulated reading has errors: %v", r.Errors)
		}
		if r.Timestamp.IsZero() || r.Timestamp.Location() != time.UTC {
			t.Fatalf("timestamp must be non-zero UTC, got %v", r.Timestamp)
		}

		for _, tc := range []struct {
			name string
			v    *float64
			min  float64
			max  float64
		}{
			{"inlet_c", r.InletC, simTempMinC, simTempMaxC},
			{"outlet_c", r.OutletC, simTempMinC, simTempMaxC},
			{"inlet_v", r.InletV, 0, simVoltsMax},
			{"outlet_v", r.OutletV, 0, simVoltsMax},
		} {
			if tc.v == nil {
				t.Fatalf("%s: simulated value must never be nil", tc.name)
			}
			if *tc.v < tc.min || *tc.v > tc.max {
				t.Fatalf("%s: %v outside [%v, %v]", tc.name, *tc.v, tc.min, tc.max)
			}
		}
	}
}

func TestRoundTo(t *testing.T) {
	t.Parallel()

	cases := []struct {
		v      float64
		places int
		want   float64
	}{
		{1.23456, 2, 1.23},
		{1.2351, 2, 1.24},
		{0.0004, 3, 0},
		{-2.678, 1, -2.7},
	}
	for _, tc := range cases {
		if got := roundTo(tc.v, tc.places); got != tc.want {
			t.Fatalf("roundTo(%v, %d): want %v, got %v", tc.v, tc.places, tc.want, got)
		}
	}
}
