package sim

import "quartz/hal/backup"

// backupHW is the always-powered backup register facet.
type backupHW struct {
	d *Device
}

// Backup returns the backup register surface.
func (d *Device) Backup() backup.Hardware {
	return backupHW{d: d}
}

func (h backupHW) WriteRegister(v uint8) {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.backup = v
	h.d.record("bkp:write")
}

func (h backupHW) ReadRegister() uint8 {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	return h.d.backup
}
