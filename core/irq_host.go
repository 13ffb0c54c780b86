//go:build !tinygo

package core

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
)

// On the host there is no interrupt controller. Simulated interrupt sources
// (ticker goroutine, simulator input) stand in for ISRs, so masking is a
// process-wide lock: while a critical section is held, no simulated ISR can
// touch scheduler or driver state.
//
// Masking nests the way PRIMASK save/restore does on the target: an inner
// DisableInterrupts inside an already-masked section is a no-op, and its
// matching restore keeps the mask held.
var (
	irqMu    sync.Mutex
	irqOwner atomic.Int64 // goroutine holding the mask, 0 when free
)

// IrqState records whether the matching DisableInterrupts took the mask or
// was nested inside an outer section.
type IrqState uint8

const (
	irqOuter IrqState = iota
	irqNested
)

// goid parses the calling goroutine's id from its stack header. The runtime
// exposes no API for this; host-side masking is the one place that needs an
// owner identity.
func goid() int64 {
	var buf [32]byte
	n := runtime.Stack(buf[:], false)
	s := buf[:n]
	s = s[len("goroutine "):]
	i := bytes.IndexByte(s, ' ')
	id, _ := strconv.ParseInt(string(s[:i]), 10, 64)
	return id
}

// DisableInterrupts masks simulated interrupts and returns the saved state.
func DisableInterrupts() IrqState {
	g := goid()
	if irqOwner.Load() == g {
		return irqNested
	}
	irqMu.Lock()
	irqOwner.Store(g)
	return irqOuter
}

// RestoreInterrupts restores the state saved by the matching
// DisableInterrupts.
func RestoreInterrupts(state IrqState) {
	if state == irqNested {
		return
	}
	irqOwner.Store(0)
	irqMu.Unlock()
}
