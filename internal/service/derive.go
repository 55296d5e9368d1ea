package service

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/apfdpotter-ops/dryer-dashboard/internal/models"
)

// csvColumns is the single source of truth for the session log layout.
var csvColumns = []string{
	"timestamp", "inlet_c", "outlet_c", "inlet_v", "outlet_v",
	"simulated", "errors", "auger_pct", "bushels_per_hr",
}

const (
	adcFullScaleV = 3.3

	// Display calibration: a full-scale probe reads as 35 % grain moisture.
	moistureDisplayMaxPct = 35.0
)

// voltsToPct maps a raw probe voltage onto 0–100 %, clamped at both ends.
// Nil propagates to nil.
func voltsToPct(v *float64) *float64 {
	if v == nil {
		return nil
	}
	pct := *v / adcFullScaleV * 100.0
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return &pct
}

// bushelsFromMoisture estimates throughput from inlet moisture alone.
// Placeholder heuristic carried over from the deployed dashboard; keep the
// arithmetic bit-for-bit until a calibrated model replaces it.
func bushelsFromMoisture(moistureIn *float64) *float64 {
	if moistureIn == nil {
		return nil
	}
	b := (1.0 - *moistureIn/100.0) * 100.0
	if b < 0 {
		b = 0
	}
	return &b
}

// deriveRow turns one reading plus the current auger percentage into a CSV
// row matching csvColumns. Absent numeric values serialize as empty fields.
func deriveRow(r models.Reading, augerPct float64) []string {
	moistureIn := voltsToPct(r.InletV)
	bushels := bushelsFromMoisture(moistureIn)

	ts := r.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	return []string{
		ts.UTC().Format(time.RFC3339),
		formatOptional(r.InletC),
		formatOptional(r.OutletC),
		formatOptional(r.InletV),
		formatOptional(r.OutletV),
		strconv.FormatBool(r.Simulated),
		strings.Join(r.Errors, "; "),
		formatFloat(augerPct),
		formatOptional(bushels),
	}
}

// cToF converts Celsius to Fahrenheit, rounded to two decimals for display.
// Nil propagates to nil.
func cToF(c *float64) *float64 {
	if c == nil {
		return nil
	}
	f := roundTwo(*c*9.0/5.0 + 32.0)
	return &f
}

// displayMoisture is the kiosk-facing moisture formula (distinct from the
// clamped percentage logged to CSV): full scale maps to 35 %.
func displayMoisture(v *float64) *float64 {
	if v == nil {
		return nil
	}
	pct := roundTwo(*v / adcFullScaleV * moistureDisplayMaxPct)
	return &pct
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func roundTwo(v float64) float64 {
	return math.Round(v*100.0) / 100.0
}
