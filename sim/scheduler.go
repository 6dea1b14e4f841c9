package sim

import (
	"container/heap"
	"fmt"
)

// event is a callback scheduled at a simulated timestamp.
type event struct {
	at  float64
	seq uint64
	fn  func()
}

// eventQueue implements heap.Interface and orders events by timestamp.
// Events at the same instant run in scheduling order (seq tie-break).
type eventQueue []*event

func (eq eventQueue) Len() int { return len(eq) }

func (eq eventQueue) Less(i, j int) bool {
	if eq[i].at == eq[j].at {
		return eq[i].seq < eq[j].seq
	}
	return eq[i].at < eq[j].at
}

func (eq eventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *eventQueue) Push(x any) { *eq = append(*eq, x.(*event)) }

func (eq *eventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[:n-1]
	return item
}

// Scheduler owns the virtual clock and the pending event queue. All
// simulation components advance only through it; there is no wall-clock
// coupling and no parallelism, so shared state needs no locking.
type Scheduler struct {
	now     float64
	horizon float64
	seq     uint64
	queue   eventQueue
}

// NewScheduler creates a scheduler that runs until the given horizon.
func NewScheduler(horizon float64) *Scheduler {
	s := &Scheduler{horizon: horizon, queue: eventQueue{}}
	heap.Init(&s.queue)
	return s
}

// Now returns the current simulated time.
func (s *Scheduler) Now() float64 { return s.now }

// Horizon returns the configured end of the run.
func (s *Scheduler) Horizon() float64 { return s.horizon }

// After schedules fn at now + delay. A negative delay is a programming
// error; rate parameters are validated before any draw reaches this point.
func (s *Scheduler) After(delay float64, fn func()) {
	if delay < 0 {
		panic(fmt.Sprintf("sim: negative delay %v scheduled at t=%v", delay, s.now))
	}
	s.seq++
	heap.Push(&s.queue, &event{at: s.now + delay, seq: s.seq, fn: fn})
}

// Run executes events in timestamp order until the horizon is reached or the
// queue drains. Events scheduled at or after the horizon are abandoned, the
// same way requests still queued at the horizon are.
func (s *Scheduler) Run() {
	for s.queue.Len() > 0 {
		ev := heap.Pop(&s.queue).(*event)
		if ev.at >= s.horizon {
			break
		}
		s.now = ev.at
		ev.fn()
	}
	s.now = s.horizon
}
