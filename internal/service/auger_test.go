package service

import (
	"sync"
	"testing"
)

func TestAugerState_DefaultsAndBounds(t *testing.T) {
	t.Parallel()

	a := NewAugerState()
	if got := a.Pct(); got != 0 {
		t.Fatalf("default pct: want 0, got %v", got)
	}

	if err := a.SetPct(55.5); err != nil {
		t.Fatalf("SetPct(55.5): %v", err)
	}
	if got := a.Pct(); got != 55.5 {
		t.Fatalf("want 55.5, got %v", got)
	}

	for _, bad := range []float64{-0.1, 100.1, 500} {
		if err := a.SetPct(bad); err == nil {
			t.Fatalf("SetPct(%v): expected range error", bad)
		}
	}
	// rejected values leave the state untouched
	if got := a.Pct(); got != 55.5 {
		t.Fatalf("state changed by rejected set: %v", got)
	}

	for _, edge := range []float64{0, 100} {
		if err := a.SetPct(edge); err != nil {
			t.Fatalf("SetPct(%v): %v", edge, err)
		}
	}
}

func TestAugerState_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	a := NewAugerState()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		g := g
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				_ = a.SetPct(float64(g * 10))
				_ = a.Pct()
			}
		}()
	}
	wg.Wait()

	if got := a.Pct(); got < 0 || got > 100 {
		t.Fatalf("final pct %v out of range", got)
	}
}
