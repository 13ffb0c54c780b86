// Package button names the two edge-triggered input lines. Debouncing is
// solely "the edge interrupt fires once and the handler clears the pending
// flag"; there is no software debounce timer.
package button

// Button identifies an input line.
type Button uint8

const (
	// Alarm toggles the hourly beep.
	Alarm Button = iota
	// Mode is wired but its function is not implemented yet.
	Mode
)

// String names the button for the diagnostic log.
func (b Button) String() string {
	switch b {
	case Alarm:
		return "alarm"
	case Mode:
		return "mode"
	default:
		return "unknown"
	}
}

// Lines is the interrupt surface of the button inputs. Bind installs the
// handler invoked in interrupt context on a rising edge; the handler must
// clear its own pending flag.
type Lines interface {
	Bind(handler func(Button))
	ClearPending(b Button)
}
