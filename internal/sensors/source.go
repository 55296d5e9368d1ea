package sensors

import (
	"github.com/apfdpotter-ops/dryer-dashboard/internal/logger"
	"github.com/apfdpotter-ops/dryer-dashboard/internal/models"
)

// Source produces one sensor reading snapshot per call.
//
// Read never fails outright: a channel that cannot be read surfaces as a nil
// field plus a diagnostic in Reading.Errors, and Simulated is true when no
// physical hardware backs the snapshot at all.
type Source interface {
	Read() models.Reading
}

// New probes for the dryer's sensor buses once and returns the matching
// source variant. On a box without the thermocouple/ADC hardware (a dev
// machine, or a kiosk detached from the dryer) every reading is simulated.
func New(log *logger.Logger) Source {
	hw, err := newHardwareSource(log)
	if err != nil {
		log.Infow("sensor hardware unavailable; readings will be simulated", "err", err)
		return newSimulatedSource()
	}
	log.Infow("sensor hardware detected",
		"inlet_temp", hw.inletTemp, "outlet_temp", hw.outletTemp,
		"inlet_adc", hw.inletADC, "outlet_adc", hw.outletADC)
	return hw
}

func fptr(v float64) *float64 { return &v }
