package core

import "testing"

func collectWakes(l *timerList) []uint32 {
	var out []uint32
	for t := l.head; t != nil; t = t.Next {
		out = append(out, t.WakeTime)
	}
	return out
}

func TestTimerListSortedInsert(t *testing.T) {
	var l timerList
	done := func(*Timer) uint8 { return TimerDone }

	a := &Timer{WakeTime: 30, Handler: done}
	b := &Timer{WakeTime: 10, Handler: done}
	c := &Timer{WakeTime: 20, Handler: done}

	l.insert(a)
	l.insert(b)
	l.insert(c)

	got := collectWakes(&l)
	want := []uint32{10, 20, 30}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("list order %v, want %v", got, want)
		}
	}
}

func TestTimerDispatchFiresDue(t *testing.T) {
	var l timerList
	var fired []uint32

	handler := func(tm *Timer) uint8 {
		fired = append(fired, tm.WakeTime)
		return TimerDone
	}

	l.insert(&Timer{WakeTime: 5, Handler: handler})
	l.insert(&Timer{WakeTime: 10, Handler: handler})
	l.insert(&Timer{WakeTime: 15, Handler: handler})

	l.dispatch(10)

	if len(fired) != 2 || fired[0] != 5 || fired[1] != 10 {
		t.Fatalf("fired %v, want [5 10]", fired)
	}
	if next, ok := l.next(); !ok || next != 15 {
		t.Fatalf("next = %d,%v, want 15,true", next, ok)
	}
}

func TestTimerReschedule(t *testing.T) {
	var l timerList
	count := 0

	l.insert(&Timer{WakeTime: 10, Handler: func(tm *Timer) uint8 {
		count++
		if count < 3 {
			tm.WakeTime += 10
			return TimerReschedule
		}
		return TimerDone
	}})

	l.dispatch(100)

	if count != 3 {
		t.Fatalf("handler ran %d times, want 3", count)
	}
	if _, ok := l.next(); ok {
		t.Fatal("timer still armed after final dispatch")
	}
}

func TestTimerRemoveUnlinks(t *testing.T) {
	var l timerList
	done := func(*Timer) uint8 { return TimerDone }

	a := &Timer{WakeTime: 10, Handler: done}
	b := &Timer{WakeTime: 20, Handler: done}
	l.insert(a)
	l.insert(b)

	l.remove(a)
	if next, ok := l.next(); !ok || next != 20 {
		t.Fatalf("next = %d,%v after remove, want 20,true", next, ok)
	}

	l.remove(b)
	if _, ok := l.next(); ok {
		t.Fatal("list not empty after removing both timers")
	}
}

func TestWakeBeforeWraparound(t *testing.T) {
	cases := []struct {
		a, b uint32
		want bool
	}{
		{0, 1, true},
		{1, 0, false},
		{5, 5, false},
		// Near the 32-bit wrap, "earlier" still compares correctly.
		{0xFFFFFFF0, 0x00000010, true},
		{0x00000010, 0xFFFFFFF0, false},
	}
	for _, c := range cases {
		if got := wakeBefore(c.a, c.b); got != c.want {
			t.Errorf("wakeBefore(%#x, %#x) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}
