//go:build stm32l0

package main

import "device/stm32"

// backupHW is backup register 0 in the RTC's battery domain. Write access
// was unlocked by the regulator configuration (DBP).
type backupHW struct{}

func (backupHW) WriteRegister(v uint8) {
	stm32.RTC.BKP0R.Set(uint32(v))
}

func (backupHW) ReadRegister() uint8 {
	return uint8(stm32.RTC.BKP0R.Get())
}
