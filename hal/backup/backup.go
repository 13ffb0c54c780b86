// Package backup persists the ADC calibration factor in the always-powered
// backup domain. The register retains its contents through stop mode and
// through every ADC power cycle, for as long as the device has battery power.
package backup

// Hardware is backup register 0 in the RTC's always-powered domain.
type Hardware interface {
	WriteRegister(v uint8)
	ReadRegister() uint8
}

// Store is the single-slot calibration persistence store. No version header;
// the raw 8-bit factor is the whole format.
type Store struct {
	hw Hardware
}

// NewStore wraps the backup register.
func NewStore(hw Hardware) *Store {
	return &Store{hw: hw}
}

// Store persists a calibration factor.
func (s *Store) Store(factor uint8) {
	s.hw.WriteRegister(factor)
}

// Load returns the most recently stored calibration factor.
func (s *Store) Load() uint8 {
	return s.hw.ReadRegister()
}
