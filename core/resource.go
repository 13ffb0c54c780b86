package core

// Resource is a priority-ceiling protected cell of shared state. Acquiring
// it raises the scheduler's held ceiling to the resource's static ceiling and
// masks interrupts for the duration of the critical section, so no task at or
// below the ceiling can observe a partial update. There is no blocking
// primitive: on a single core, deferral is exclusion.
//
// The ceiling must be the highest priority of any task that touches the
// resource. Critical sections must not suspend; Sleep panics while a
// resource is held.
type Resource[T any] struct {
	sched   *Scheduler
	ceiling Priority
	value   T
}

// NewResource creates a resource with the given static ceiling and initial
// value.
func NewResource[T any](s *Scheduler, ceiling Priority, initial T) *Resource[T] {
	return &Resource[T]{sched: s, ceiling: ceiling, value: initial}
}

// With runs f with exclusive access to the value.
func (r *Resource[T]) With(f func(*T)) {
	state := DisableInterrupts()
	prev := r.sched.ceiling
	if r.ceiling > prev {
		r.sched.ceiling = r.ceiling
	}
	defer func() {
		r.sched.ceiling = prev
		RestoreInterrupts(state)
	}()

	f(&r.value)
}
