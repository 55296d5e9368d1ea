package models

import "time"

// Reading is one timestamped snapshot of all sensor-derived values.
// Nil pointer fields mean the sensor could not produce a value; the
// matching diagnostic is recorded in Errors.
type Reading struct {
	Timestamp time.Time `json:"timestamp"`           // UTC
	InletC    *float64  `json:"inlet_c"`             // °C
	OutletC   *float64  `json:"outlet_c"`            // °C
	InletV    *float64  `json:"inlet_v"`             // volts, 0.0–3.3 expected
	OutletV   *float64  `json:"outlet_v"`            // volts, 0.0–3.3 expected
	Simulated bool      `json:"simulated"`           // no physical hardware available
	Errors    []string  `json:"errors,omitempty"`    // empty when healthy
}
