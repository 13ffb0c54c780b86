//go:build tinygo

package core

import "runtime/interrupt"

// IrqState is the saved PRIMASK state.
type IrqState = interrupt.State

// DisableInterrupts disables interrupts and returns the previous state.
func DisableInterrupts() IrqState {
	return interrupt.Disable()
}

// RestoreInterrupts restores the interrupt state.
func RestoreInterrupts(state IrqState) {
	interrupt.Restore(state)
}
