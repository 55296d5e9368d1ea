package sensors

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/apfdpotter-ops/dryer-dashboard/internal/logger"
	"github.com/apfdpotter-ops/dryer-dashboard/internal/models"
)

// The dryer box exposes its sensors through the Linux industrial I/O layer:
// two MAX31855 thermocouples (inlet/outlet plenum temps) and an ADS1115 ADC
// (grain moisture probes on channels 0 and 1).
const (
	iioBase = "/sys/bus/iio/devices"

	thermoDriver = "max31855"
	adcDriver    = "ads1115"

	// iio reports temperature in milli-°C and ADC voltage in mV.
	tempScale = 1.0 / 1000.0
	adcScale  = 1.0 / 1000.0
)

// hardwareSource reads channel values from iio sysfs attribute files.
// Each channel fails independently; a bad probe never hides the other three.
type hardwareSource struct {
	log *logger.Logger

	inletTemp  string // in_temp_input of the first thermocouple
	outletTemp string // in_temp_input of the second thermocouple
	inletADC   string // in_voltage0_input of the ADC
	outletADC  string // in_voltage1_input of the ADC
}

// newHardwareSource resolves the sysfs attribute paths once. An error means
// the hardware is absent and the caller should fall back to simulation.
func newHardwareSource(log *logger.Logger) (*hardwareSource, error) {
	thermos, err := findDevices(thermoDriver)
	if err != nil {
		return nil, err
	}
	if len(thermos) < 2 {
		return nil, fmt.Errorf("found %d %s thermocouple(s), need 2", len(thermos), thermoDriver)
	}

	adcs, err := findDevices(adcDriver)
	if err != nil {
		return nil, err
	}
	if len(adcs) < 1 {
		return nil, fmt.Errorf("no %s ADC found", adcDriver)
	}

	return &hardwareSource{
		log:        log,
		inletTemp:  filepath.Join(thermos[0], "in_temp_input"),
		outletTemp: filepath.Join(thermos[1], "in_temp_input"),
		inletADC:   filepath.Join(adcs[0], "in_voltage0_input"),
		outletADC:  filepath.Join(adcs[0], "in_voltage1_input"),
	}, nil
}

// findDevices returns iio device directories whose name attribute matches the
// given driver, sorted by device index for a stable inlet/outlet assignment.
func findDevices(driver string) ([]string, error) {
	entries, err := os.ReadDir(iioBase)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", iioBase, err)
	}

	var dirs []string
	for _, e := range entries {
		dir := filepath.Join(iioBase, e.Name())
		name, err := os.ReadFile(filepath.Join(dir, "name"))
		if err != nil {
			continue
		}
		if strings.TrimSpace(string(name)) == driver {
			dirs = append(dirs, dir)
		}
	}
	return dirs, nil
}

func (s *hardwareSource) Read() models.Reading {
	r := models.Reading{Timestamp: time.Now().UTC()}

	r.InletC = s.readChannel(s.inletTemp, tempScale, "inlet thermocouple", &r)
	r.OutletC = s.readChannel(s.outletTemp, tempScale, "outlet thermocouple", &r)
	r.InletV = s.readChannel(s.inletADC, adcScale, "inlet moisture sensor", &r)
	r.OutletV = s.readChannel(s.outletADC, adcScale, "outlet moisture sensor", &r)

	return r
}

// readChannel reads one sysfs attribute and scales it. On failure it records
// a diagnostic on the reading and returns nil.
func (s *hardwareSource) readChannel(path string, scale float64, label string, r *models.Reading) *float64 {
	raw, err := os.ReadFile(path)
	if err != nil {
		s.fail(r, label, err)
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(string(raw)), 64)
	if err != nil {
		s.fail(r, label, err)
		return nil
	}
	return fptr(v * scale)
}

func (s *hardwareSource) fail(r *models.Reading, label string, err error) {
	msg := fmt.Sprintf("error reading %s: %v", label, err)
	r.Errors = append(r.Errors, msg)
	s.log.Warnw("sensor read failed", "sensor", label, "err", err)
}
