package clock

import (
	"sync"
	"time"
)

// Manual is a Scheduler driven by Advance instead of the wall clock.
// Callbacks run synchronously on the goroutine calling Advance.
type Manual struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*manualTask
}

func NewManual() *Manual {
	return &Manual{}
}

type manualTask struct {
	m       *Manual
	seq     int
	due     time.Duration
	period  time.Duration
	fn      func()
	stopped bool
}

func (t *manualTask) Stop() {
	t.m.mu.Lock()
	t.stopped = true
	t.m.mu.Unlock()
}

func (m *Manual) Every(interval time.Duration, fn func()) Task {
	return m.add(interval, interval, fn)
}

func (m *Manual) After(delay time.Duration, fn func()) Task {
	return m.add(delay, 0, fn)
}

func (m *Manual) add(delay, period time.Duration, fn func()) Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTask{m: m, seq: m.seq, due: m.now + delay, period: period, fn: fn}
	m.tasks = append(m.tasks, t)
	return t
}

// Advance moves the clock forward by d, firing every task that falls due in
// order of due time, then creation order.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	for {
		next := m.nextDueLocked(target)
		if next == nil {
			break
		}
		m.now = next.due
		if next.period > 0 {
			next.due += next.period
		} else {
			next.stopped = true
		}
		m.mu.Unlock()
		next.fn()
		m.mu.Lock()
	}
	m.now = target
	m.pruneLocked()
	m.mu.Unlock()
}

// Pending reports how many tasks are still scheduled.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pruneLocked()
	return len(m.tasks)
}

// Elapsed reports how far the clock has been advanced.
func (m *Manual) Elapsed() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) nextDueLocked(target time.Duration) *manualTask {
	var next *manualTask
	for _, t := range m.tasks {
		if t.stopped || t.due > target {
			continue
		}
		if next == nil || t.due < next.due || (t.due == next.due && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

func (m *Manual) pruneLocked() {
	live := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.stopped {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(m.tasks); i++ {
		m.tasks[i] = nil
	}
	m.tasks = live
}
