// Package core implements the fixed-priority, run-to-completion event
// scheduler that coordinates the watch tasks, along with its delay timers,
// priority-ceiling resources and the diagnostic log front-end.
//
// The task set is static: every task is registered once at boot with a fixed
// priority. Interrupt-bound tasks run to completion and never suspend.
// Software tasks run on their own goroutine but execute strictly one at a
// time; control changes hands only when a task completes or suspends at an
// explicit Sleep point, which is how a single-core, interrupt-driven MCU
// behaves as observed at those points. Interrupt sources call Pend, which is
// safe from ISR context.
package core

import "errors"

// Priority orders task dispatch. Higher runs first. Zero is reserved for the
// idle context.
type Priority uint8

// TaskID names a registered task.
type TaskID uint8

// ErrAlreadyPending is returned by Pend when the task has already been
// requested and has not yet run to completion. The request is discarded,
// never queued behind the active one.
var ErrAlreadyPending = errors.New("task already pending or active")

// Clock is the monotonic millisecond timebase used for delay timers.
type Clock interface {
	Now() uint32
}

// IdleFunc parks the core until the next interrupt. deadline is the earliest
// armed timer wake time; valid reports whether one exists. The hook must
// return once a wake event (interrupt pend or timer expiry) has occurred.
type IdleFunc func(deadline uint32, valid bool)

type taskState uint8

const (
	taskIdle taskState = iota
	taskPending
	taskRunning
	taskSuspended // software task blocked in Sleep, timer armed
	taskResumable // delay expired, waiting for dispatch
)

type yieldKind uint8

const (
	yieldDone yieldKind = iota
	yieldSleep
)

type yieldMsg struct {
	id     TaskID
	kind   yieldKind
	wakeAt uint32
}

type task struct {
	id       TaskID
	name     string
	prio     Priority
	body     func()
	software bool

	state   taskState
	arrival uint32

	// software task machinery
	resume chan struct{}
	timer  Timer
}

// Scheduler owns the static task table, the armed delay timers and the idle
// hook. All dispatch happens on the goroutine that calls Run (or RunPending
// in tests); Pend may be called from anywhere.
type Scheduler struct {
	clock Clock
	idle  IdleFunc

	tasks []*task

	timers     timerList
	arrivalSeq uint32
	ceiling    Priority
	current    TaskID

	wake  chan struct{}
	yield chan yieldMsg
}

// NewScheduler creates a scheduler over the given timebase.
func NewScheduler(clock Clock) *Scheduler {
	return &Scheduler{
		clock: clock,
		wake:  make(chan struct{}, 1),
		yield: make(chan yieldMsg),
	}
}

// SetIdle installs the idle hook. Run panics without one; tests that drive
// the scheduler with RunPending do not need it.
func (s *Scheduler) SetIdle(idle IdleFunc) {
	s.idle = idle
}

// AddTask registers an interrupt-bound task. The body runs to completion on
// every dispatch and must not call Sleep.
func (s *Scheduler) AddTask(name string, prio Priority, body func()) TaskID {
	return s.add(name, prio, body, false)
}

// AddSoftwareTask registers a cooperative task. The body may call Sleep; it
// runs on a dedicated goroutine but only while the scheduler has granted it
// the core.
func (s *Scheduler) AddSoftwareTask(name string, prio Priority, body func()) TaskID {
	id := s.add(name, prio, body, true)
	t := s.tasks[id]
	t.resume = make(chan struct{})
	go s.worker(t)
	return id
}

func (s *Scheduler) add(name string, prio Priority, body func(), software bool) TaskID {
	if prio == 0 {
		panic("core: " + name + ": priority 0 is reserved for idle")
	}
	id := TaskID(len(s.tasks))
	s.tasks = append(s.tasks, &task{
		id:       id,
		name:     name,
		prio:     prio,
		body:     body,
		software: software,
	})
	return id
}

// Pend marks a task ready to run. Safe to call from interrupt context. A
// request for a task that is already pending, running or suspended fails
// with ErrAlreadyPending and is discarded.
func (s *Scheduler) Pend(id TaskID) error {
	t := s.tasks[id]

	state := DisableInterrupts()
	if t.state != taskIdle {
		RestoreInterrupts(state)
		return ErrAlreadyPending
	}
	s.arrivalSeq++
	t.arrival = s.arrivalSeq
	t.state = taskPending
	RestoreInterrupts(state)

	s.notify()
	return nil
}

// Wakeup exposes the wake signal so idle hooks can block on it alongside
// their own deadline handling.
func (s *Scheduler) Wakeup() <-chan struct{} {
	return s.wake
}

// Sleep suspends the calling software task for at least ms milliseconds.
// While suspended, any ready task may run or the core may sleep. Must not be
// called while a resource is held, nor from an interrupt-bound task.
func (s *Scheduler) Sleep(ms uint32) {
	t := s.tasks[s.current]
	if !t.software {
		panic("core: " + t.name + ": sleep from interrupt-bound task")
	}
	if s.ceiling != 0 {
		panic("core: " + t.name + ": sleep while holding a resource")
	}

	s.yield <- yieldMsg{id: t.id, kind: yieldSleep, wakeAt: s.clock.Now() + ms}
	<-t.resume
}

// Run dispatches tasks forever, handing the core to the idle hook whenever
// nothing is ready. This is the permanent steady state of the device.
func (s *Scheduler) Run() {
	if s.idle == nil {
		panic("core: idle hook not configured")
	}
	for {
		s.RunPending()

		state := DisableInterrupts()
		deadline, valid := s.timers.next()
		RestoreInterrupts(state)

		s.idle(deadline, valid)
	}
}

// RunPending dispatches until no task is ready and no timer is due, then
// returns. This is one pass of the dispatch loop between idle periods.
func (s *Scheduler) RunPending() {
	for {
		s.dispatchTimers()
		t := s.take()
		if t == nil {
			return
		}
		s.exec(t)
	}
}

// dispatchTimers fires delay timers that have come due.
func (s *Scheduler) dispatchTimers() {
	now := s.clock.Now()
	state := DisableInterrupts()
	s.timers.dispatch(now)
	RestoreInterrupts(state)
}

// take removes the best ready task: highest priority above the held ceiling,
// ties broken by arrival order.
func (s *Scheduler) take() *task {
	state := DisableInterrupts()
	defer RestoreInterrupts(state)

	var best *task
	for _, t := range s.tasks {
		if t.state != taskPending && t.state != taskResumable {
			continue
		}
		if t.prio <= s.ceiling {
			continue
		}
		if best == nil || t.prio > best.prio ||
			(t.prio == best.prio && t.arrival < best.arrival) {
			best = t
		}
	}
	if best != nil {
		best.state = taskRunning
	}
	return best
}

// exec runs one task to its next completion or suspension point.
func (s *Scheduler) exec(t *task) {
	s.current = t.id

	if !t.software {
		t.body()
		state := DisableInterrupts()
		t.state = taskIdle
		RestoreInterrupts(state)
		return
	}

	// Grant the core to the task goroutine and wait for it to hand back.
	t.resume <- struct{}{}
	msg := <-s.yield

	state := DisableInterrupts()
	switch msg.kind {
	case yieldDone:
		t.state = taskIdle
	case yieldSleep:
		t.state = taskSuspended
		t.timer.WakeTime = msg.wakeAt
		t.timer.Handler = s.resumeTimer
		s.timers.insert(&t.timer)
	}
	RestoreInterrupts(state)
}

// resumeTimer marks the owning task resumable. Runs with interrupts masked.
func (s *Scheduler) resumeTimer(tm *Timer) uint8 {
	for _, t := range s.tasks {
		if &t.timer == tm {
			t.state = taskResumable
			break
		}
	}
	return TimerDone
}

// worker is the execution loop of a software task goroutine. Each receive on
// resume is a grant of the core; Sleep consumes grants of its own while the
// body is mid-flight.
func (s *Scheduler) worker(t *task) {
	for range t.resume {
		t.body()
		s.yield <- yieldMsg{id: t.id, kind: yieldDone}
	}
}

func (s *Scheduler) notify() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}
