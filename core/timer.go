package core

// Timer is a scheduled wakeup event. Timers are embedded in their owners and
// never allocated per arm, so the delay machinery is allocation-free after
// boot.
type Timer struct {
	WakeTime uint32
	Handler  func(*Timer) uint8
	Next     *Timer
}

// Timer handler results.
const (
	TimerDone       = 0
	TimerReschedule = 1
)

// timerList keeps armed timers sorted by WakeTime in a singly-linked list.
// All mutation happens with interrupts masked.
type timerList struct {
	head *Timer
}

// insert places a timer in sorted order by WakeTime.
func (l *timerList) insert(t *Timer) {
	if l.head == nil || wakeBefore(t.WakeTime, l.head.WakeTime) {
		t.Next = l.head
		l.head = t
		return
	}

	cur := l.head
	for cur.Next != nil && wakeBefore(cur.Next.WakeTime, t.WakeTime) {
		cur = cur.Next
	}

	t.Next = cur.Next
	cur.Next = t
}

// remove unlinks a timer if it is armed.
func (l *timerList) remove(t *Timer) {
	if l.head == t {
		l.head = t.Next
		t.Next = nil
		return
	}
	for cur := l.head; cur != nil; cur = cur.Next {
		if cur.Next == t {
			cur.Next = t.Next
			t.Next = nil
			return
		}
	}
}

// dispatch fires every timer due at or before now. Handlers run with
// interrupts masked and may re-arm by returning TimerReschedule.
func (l *timerList) dispatch(now uint32) {
	for l.head != nil && !wakeBefore(now, l.head.WakeTime) {
		t := l.head
		l.head = t.Next
		t.Next = nil

		if t.Handler(t) == TimerReschedule {
			l.insert(t)
		}
	}
}

// next reports the earliest armed wake time.
func (l *timerList) next() (uint32, bool) {
	if l.head == nil {
		return 0, false
	}
	return l.head.WakeTime, true
}

// wakeBefore compares tick counts, tolerating wraparound of the 32-bit
// timebase (about 49 days at 1 kHz).
func wakeBefore(a, b uint32) bool {
	return int32(a-b) < 0
}
