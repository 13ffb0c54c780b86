package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quartz/core"
)

// testClock is a manually advanced millisecond timebase.
type testClock struct {
	now uint32
}

func (c *testClock) Now() uint32      { return c.now }
func (c *testClock) Advance(ms uint32) { c.now += ms }

func TestDispatchByPriority(t *testing.T) {
	s := core.NewScheduler(&testClock{})

	var order []string
	low := s.AddTask("low", 1, func() { order = append(order, "low") })
	mid := s.AddTask("mid", 2, func() { order = append(order, "mid") })
	high := s.AddTask("high", 3, func() { order = append(order, "high") })

	require.NoError(t, s.Pend(low))
	require.NoError(t, s.Pend(mid))
	require.NoError(t, s.Pend(high))

	s.RunPending()

	assert.Equal(t, []string{"high", "mid", "low"}, order)
}

func TestEqualPriorityRunsInArrivalOrder(t *testing.T) {
	s := core.NewScheduler(&testClock{})

	var order []string
	first := s.AddTask("first", 2, func() { order = append(order, "first") })
	second := s.AddTask("second", 2, func() { order = append(order, "second") })

	require.NoError(t, s.Pend(second))
	require.NoError(t, s.Pend(first))

	s.RunPending()

	assert.Equal(t, []string{"second", "first"}, order)
}

func TestDuplicatePendDiscarded(t *testing.T) {
	s := core.NewScheduler(&testClock{})

	runs := 0
	id := s.AddTask("once", 1, func() { runs++ })

	require.NoError(t, s.Pend(id))
	assert.ErrorIs(t, s.Pend(id), core.ErrAlreadyPending)

	s.RunPending()

	assert.Equal(t, 1, runs, "discarded request must not queue")

	// After completion the task is requestable again.
	require.NoError(t, s.Pend(id))
	s.RunPending()
	assert.Equal(t, 2, runs)
}

func TestSoftwareTaskSuspendsAndResumes(t *testing.T) {
	clock := &testClock{}
	s := core.NewScheduler(clock)

	var order []string
	id := s.AddSoftwareTask("sleeper", 2, func() {
		order = append(order, "before")
		s.Sleep(100)
		order = append(order, "after")
	})

	require.NoError(t, s.Pend(id))
	s.RunPending()

	assert.Equal(t, []string{"before"}, order, "task must stay suspended until the delay expires")

	clock.Advance(99)
	s.RunPending()
	assert.Equal(t, []string{"before"}, order)

	clock.Advance(1)
	s.RunPending()
	assert.Equal(t, []string{"before", "after"}, order)
}

func TestSuspendedTaskStaysPendedUntilCompletion(t *testing.T) {
	clock := &testClock{}
	s := core.NewScheduler(clock)

	id := s.AddSoftwareTask("sleeper", 2, func() {
		s.Sleep(50)
	})

	require.NoError(t, s.Pend(id))
	s.RunPending()

	// Mid-suspension the task still counts as requested.
	assert.ErrorIs(t, s.Pend(id), core.ErrAlreadyPending)

	clock.Advance(50)
	s.RunPending()

	require.NoError(t, s.Pend(id))
	clock.Advance(50)
	s.RunPending()
}

func TestHigherPriorityRunsDuringSuspension(t *testing.T) {
	clock := &testClock{}
	s := core.NewScheduler(clock)

	var order []string
	soft := s.AddSoftwareTask("soft", 2, func() {
		order = append(order, "soft-start")
		s.Sleep(1000)
		order = append(order, "soft-end")
	})
	urgent := s.AddTask("urgent", 3, func() {
		order = append(order, "urgent")
	})

	require.NoError(t, s.Pend(soft))
	s.RunPending()

	// An interrupt arrives while the software task sits at its
	// suspension point.
	require.NoError(t, s.Pend(urgent))
	s.RunPending()

	clock.Advance(1000)
	s.RunPending()

	assert.Equal(t, []string{"soft-start", "urgent", "soft-end"}, order)
}

func TestUrgentTaskBeatsExpiredDelay(t *testing.T) {
	clock := &testClock{}
	s := core.NewScheduler(clock)

	var order []string
	soft := s.AddSoftwareTask("soft", 2, func() {
		order = append(order, "soft-start")
		s.Sleep(100)
		order = append(order, "soft-end")
	})
	urgent := s.AddTask("urgent", 3, func() {
		order = append(order, "urgent")
	})

	require.NoError(t, s.Pend(soft))
	s.RunPending()

	// Both become ready in the same pass: the delay expired and a
	// higher-priority request arrived. Priority wins.
	clock.Advance(100)
	require.NoError(t, s.Pend(urgent))
	s.RunPending()

	assert.Equal(t, []string{"soft-start", "urgent", "soft-end"}, order)
}

func TestResourceCeilingDefersPend(t *testing.T) {
	s := core.NewScheduler(&testClock{})

	var order []string
	res := core.NewResource(s, 3, 0)

	observer := s.AddTask("observer", 3, func() {
		order = append(order, "observer")
	})

	worker := s.AddTask("worker", 1, func() {
		res.With(func(v *int) {
			*v++
			// The request lands mid-critical-section; the observer must
			// not run until the section ends.
			_ = s.Pend(observer)
			order = append(order, "critical")
		})
		order = append(order, "worker-done")
	})

	require.NoError(t, s.Pend(worker))
	s.RunPending()

	assert.Equal(t, []string{"critical", "worker-done", "observer"}, order)
}

func TestSleepFromInterruptTaskPanics(t *testing.T) {
	s := core.NewScheduler(&testClock{})

	id := s.AddTask("bad", 1, func() {
		s.Sleep(10)
	})

	require.NoError(t, s.Pend(id))
	assert.Panics(t, func() { s.RunPending() })
}

func TestSleepWhileHoldingResourcePanics(t *testing.T) {
	clock := &testClock{}
	s := core.NewScheduler(clock)

	res := core.NewResource(s, 2, 0)
	var recovered any

	id := s.AddSoftwareTask("bad", 2, func() {
		defer func() { recovered = recover() }()
		res.With(func(*int) {
			s.Sleep(10)
		})
	})

	require.NoError(t, s.Pend(id))
	s.RunPending()

	assert.NotNil(t, recovered, "sleep inside a critical section must panic")
}

func TestZeroPriorityRejected(t *testing.T) {
	s := core.NewScheduler(&testClock{})
	assert.Panics(t, func() {
		s.AddTask("idle-prio", 0, func() {})
	})
}

func TestRunRequiresIdleHook(t *testing.T) {
	s := core.NewScheduler(&testClock{})
	assert.Panics(t, func() { s.Run() })
}
