package sensors

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/apfdpotter-ops/dryer-dashboard/internal/models"
)

// Simulated value ranges: plausible drying-season temps and the ADC's full
// voltage swing.
const (
	simTempMinC = 20.0
	simTempMaxC = 60.0
	simVoltsMax = 3.3
)

// simulatedSource generates synthetic readings when no hardware is present.
type simulatedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newSimulatedSource() *simulatedSource {
	return &simulatedSource{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *simulatedSource) Read() models.Reading {
	s.mu.Lock()
	defer s.mu.Unlock()

	return models.Reading{
		Timestamp: time.Now().UTC(),
		InletC:    fptr(roundTo(simTempMinC+s.rng.Float64()*(simTempMaxC-simTempMinC), 2)),
		OutletC:   fptr(roundTo(simTempMinC+s.rng.Float64()*(simTempMaxC-simTempMinC), 2)),
		InletV:    fptr(roundTo(s.rng.Float64()*simVoltsMax, 3)),
		OutletV:   fptr(roundTo(s.rng.Float64()*simVoltsMax, 3)),
		Simulated: true,
	}
}

func roundTo(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
