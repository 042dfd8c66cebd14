// Package task implements the composable task system: a two-phase Task
// interface (cheap per-tick Tick, optional expensive worker-thread
// Expensive), and the Compound/LazyTask/LazyStream composition
// primitives concrete tasks are built from. It depends on
// agent, follower, pathfinder, physics, and global; runtime and control
// import it, and none of its own dependencies do.
package task

import (
	"time"

	"github.com/SwarmBotMC/adamant/agent"
	"github.com/SwarmBotMC/adamant/global"
)

// Task is one unit of cancellable, resumable agent work. Tick is cheap
// and runs on the main loop; it returns true once the task has completed.
// Expensive is an optional, possibly-slow phase that may run on a worker
// thread against read-only global state; it must not mutate glob.
type Task interface {
	Tick(out *agent.OutQueue, local *agent.LocalState, glob *global.State) bool
	Expensive(deadline time.Time, local *agent.LocalState, glob *global.State)
}

// BaseTask gives concrete tasks a no-op Expensive by embedding, for tasks
// whose whole implementation fits in Tick.
type BaseTask struct{}

func (BaseTask) Expensive(time.Time, *agent.LocalState, *global.State) {}

// Compound runs a FIFO of sub-tasks to completion in order. A sub-task
// that completes on the same tick it started does not consume an extra
// game tick: Compound immediately ticks the next one in the same Tick
// call.
type Compound struct {
	queue []Task
}

// NewCompound builds a Compound over the given sub-tasks in order.
func NewCompound(tasks ...Task) *Compound {
	return &Compound{queue: tasks}
}

func (c *Compound) Tick(out *agent.OutQueue, local *agent.LocalState, glob *global.State) bool {
	for len(c.queue) > 0 {
		if !c.queue[0].Tick(out, local, glob) {
			return false
		}
		c.queue = c.queue[1:]
	}
	return true
}

// Expensive forwards to the current head task, so e.g. a Navigate buried
// inside a Compound still gets its A* slice.
func (c *Compound) Expensive(deadline time.Time, local *agent.LocalState, glob *global.State) {
	if len(c.queue) > 0 {
		c.queue[0].Expensive(deadline, local, glob)
	}
}

// Push appends a sub-task to the end of the queue, for tasks that grow
// their own work list as they discover more to do.
func (c *Compound) Push(t Task) { c.queue = append(c.queue, t) }

// Len reports how many sub-tasks remain, including the currently running
// one.
func (c *Compound) Len() int { return len(c.queue) }

// Builder constructs a sub-task from state only known at execution time.
type Builder func(local *agent.LocalState, glob *global.State) Task

// LazyTask defers constructing its sub-task until the first Tick.
type LazyTask struct {
	build Builder
	inner Task
}

// NewLazyTask wraps build as a deferred-construction task.
func NewLazyTask(build Builder) *LazyTask {
	return &LazyTask{build: build}
}

func (l *LazyTask) Tick(out *agent.OutQueue, local *agent.LocalState, glob *global.State) bool {
	if l.inner == nil {
		l.inner = l.build(local, glob)
	}
	return l.inner.Tick(out, local, glob)
}

func (l *LazyTask) Expensive(deadline time.Time, local *agent.LocalState, glob *global.State) {
	if l.inner != nil {
		l.inner.Expensive(deadline, local, glob)
	}
}

// Stream produces successive sub-tasks on demand, returning (nil, false)
// once exhausted.
type Stream interface {
	Next(local *agent.LocalState, glob *global.State) (Task, bool)
}

// StreamFunc adapts a plain function to the Stream interface.
type StreamFunc func(local *agent.LocalState, glob *global.State) (Task, bool)

func (f StreamFunc) Next(local *agent.LocalState, glob *global.State) (Task, bool) {
	return f(local, glob)
}

// LazyStream drives a Stream, ticking each produced sub-task to
// completion before pulling the next one; it completes when the stream
// returns false.
type LazyStream struct {
	stream  Stream
	current Task
	done    bool
}

// NewLazyStream wraps stream as a task that drains it to exhaustion.
func NewLazyStream(stream Stream) *LazyStream {
	return &LazyStream{stream: stream}
}

func (s *LazyStream) Tick(out *agent.OutQueue, local *agent.LocalState, glob *global.State) bool {
	if s.done {
		return true
	}
	for {
		if s.current == nil {
			next, ok := s.stream.Next(local, glob)
			if !ok {
				s.done = true
				return true
			}
			s.current = next
		}
		if !s.current.Tick(out, local, glob) {
			return false
		}
		s.current = nil
	}
}

func (s *LazyStream) Expensive(deadline time.Time, local *agent.LocalState, glob *global.State) {
	if s.current != nil {
		s.current.Expensive(deadline, local, glob)
	}
}
