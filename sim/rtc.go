package sim

import "quartz/hal/rtc"

// rtcHW is the clock facet of the device.
type rtcHW struct {
	d *Device
}

// RTC returns the clock's register surface.
func (d *Device) RTC() rtc.Hardware {
	return rtcHW{d: d}
}

func (h rtcHW) Unlock() {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.record("rtc:unlock")
}

func (h rtcHW) SetBypassShadow() {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.record("rtc:bypshad")
}

func (h rtcHW) SetWakeupClock() {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.record("rtc:wucksel")
}

func (h rtcHW) EnableWakeup() {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.wakeupOn = true
	h.d.record("rtc:wute")
}

func (h rtcHW) BindWakeup(handler func()) {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.wakeHandler = handler
}

// ReadTime models one read of the time register. With tearing injected, a
// tick lands right after this read, so the next read disagrees.
func (h rtcHW) ReadTime() rtc.Time {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	t := h.d.time
	if h.d.tearNextRead {
		h.d.tearNextRead = false
		h.d.advanceSecond()
	}
	return t
}

func (h rtcHW) WriteTime(t rtc.Time) {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	if !h.d.initMode {
		panic("sim: rtc time write outside init mode")
	}
	h.d.time = t
}

func (h rtcHW) PendingWakeup() bool {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	return h.d.wutf
}

func (h rtcHW) ClearWakeup() {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.wutf = false
}

func (h rtcHW) EnterInit() {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.initMode = true
	h.d.record("rtc:init")
}

func (h rtcHW) InitActive() bool {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	return h.d.initMode
}

func (h rtcHW) ExitInit() {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.initMode = false
	h.d.record("rtc:run")
}
