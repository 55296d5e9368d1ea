package models

// DashboardData is the kiosk-facing payload: temperatures converted to °F,
// moisture voltages converted to display percentages.
type DashboardData struct {
	InletTempF         *float64 `json:"inlet_temp_F"`
	OutletTempF        *float64 `json:"outlet_temp_F"`
	InletMoisturePct   *float64 `json:"inlet_moisture_pct"`
	OutletMoisturePct  *float64 `json:"outlet_moisture_pct"`
	BushelsPerHr       int      `json:"bushels_per_hr"`
	Simulated          bool     `json:"simulated"`
	Errors            []string `json:"errors,omitempty"`
}
