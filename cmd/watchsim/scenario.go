package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"quartz/hal/rtc"
)

// Scenario is the simulator's startup configuration.
type Scenario struct {
	// Time is the boot time of the watch, "hh:mm:ss".
	Time string `yaml:"time"`

	Beep struct {
		FrequencyHz uint32 `yaml:"frequency_hz"`
		DutyPercent uint32 `yaml:"duty_percent"`
		Enabled     bool   `yaml:"enabled"`
	} `yaml:"beep"`

	Calibration struct {
		VrefintCal uint16 `yaml:"vrefint_cal"`
		TsCal1     uint16 `yaml:"ts_cal1"`
		TsCal2     uint16 `yaml:"ts_cal2"`
		Vrefint    uint16 `yaml:"vrefint"`
		Tsense     uint16 `yaml:"tsense"`
	} `yaml:"calibration"`

	Window struct {
		Scale int `yaml:"scale"`
	} `yaml:"window"`

	Audio bool `yaml:"audio"`
}

// DefaultScenario boots at one minute to ten with the hourly beep armed.
func DefaultScenario() Scenario {
	var s Scenario
	s.Time = "09:59:00"
	s.Beep.FrequencyHz = 1
	s.Beep.DutyPercent = 50
	s.Beep.Enabled = true
	s.Window.Scale = 4
	return s
}

// LoadScenario reads a scenario file, filling unset fields with defaults.
func LoadScenario(path string) (Scenario, error) {
	s := DefaultScenario()

	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read scenario: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse scenario: %w", err)
	}
	if s.Window.Scale < 1 {
		s.Window.Scale = 1
	}
	return s, nil
}

// BootTime parses the scenario's "hh:mm:ss" into a clock time.
func (s Scenario) BootTime() (rtc.Time, error) {
	parts := strings.Split(s.Time, ":")
	if len(parts) != 3 {
		return rtc.Time{}, fmt.Errorf("bad time %q: want hh:mm:ss", s.Time)
	}

	var v [3]uint8
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return rtc.Time{}, fmt.Errorf("bad time %q: %w", s.Time, err)
		}
		v[i] = uint8(n)
	}
	if v[0] > 23 || v[1] > 59 || v[2] > 59 {
		return rtc.Time{}, fmt.Errorf("bad time %q: out of range", s.Time)
	}
	return rtc.NewTime(v[0], v[1], v[2]), nil
}
