package models

// SamplerStatus is the public view of the background CSV logger.
type SamplerStatus struct {
	Running         bool   `json:"running"`
	CurrentFile     string `json:"current_file,omitempty"` // bare file name, not a path
	IntervalSeconds int    `json:"interval_seconds"`
}
