package service

import (
	"math/rand"
	"sync"
	"time"

	"github.com/apfdpotter-ops/dryer-dashboard/internal/models"
	"github.com/apfdpotter-ops/dryer-dashboard/internal/sensors"
)

// Dummy throughput shown on the kiosk until a real rate sensor exists.
const (
	dummyBushelsMin = 500
	dummyBushelsMax = 800
)

// DashboardService reshapes raw readings into the kiosk payload: °F instead
// of °C, display moisture percentages instead of raw volts.
type DashboardService struct {
	src sensors.Source

	mu  sync.Mutex
	rng *rand.Rand
}

func NewDashboardService(src sensors.Source) *DashboardService {
	return &DashboardService{
		src: src,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *DashboardService) Snapshot() models.DashboardData {
	r := s.src.Read()
	return models.DashboardData{
		InletTempF:        cToF(r.InletC),
		OutletTempF:       cToF(r.OutletC),
		InletMoisturePct:  displayMoisture(r.InletV),
		OutletMoisturePct: displayMoisture(r.OutletV),
		BushelsPerHr:      s.dummyBushels(),
		Simulated:         r.Simulated,
		Errors:            r.Errors,
	}
}

// RawReading exposes the unconverted snapshot for the raw sensor endpoint.
func (s *DashboardService) RawReading() models.Reading {
	return s.src.Read()
}

func (s *DashboardService) dummyBushels() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return dummyBushelsMin + s.rng.Intn(dummyBushelsMax-dummyBushelsMin+1)
}
