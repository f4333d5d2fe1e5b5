package clock

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestManualEveryFiresPerInterval(t *testing.T) {
	m := NewManual()
	var ticks int
	task := m.Every(time.Second, func() { ticks++ })

	m.Advance(500 * time.Millisecond)
	if ticks != 0 {
		t.Fatalf("expected no tick before the interval, got %d", ticks)
	}
	m.Advance(3500 * time.Millisecond)
	if ticks != 4 {
		t.Fatalf("expected 4 ticks after 4s, got %d", ticks)
	}

	task.Stop()
	task.Stop()
	m.Advance(10 * time.Second)
	if ticks != 4 {
		t.Fatalf("expected no ticks after stop, got %d", ticks)
	}
	if m.Pending() != 0 {
		t.Fatalf("expected no pending tasks, got %d", m.Pending())
	}
}

func TestManualAfterFiresOnce(t *testing.T) {
	m := NewManual()
	var fired int
	m.After(time.Second, func() { fired++ })
	if m.Pending() != 1 {
		t.Fatalf("expected one pending task")
	}
	m.Advance(5 * time.Second)
	if fired != 1 {
		t.Fatalf("expected one firing, got %d", fired)
	}
	if m.Pending() != 0 {
		t.Fatalf("expected one-shot task to be gone")
	}
}

func TestManualStopFromCallback(t *testing.T) {
	m := NewManual()
	var ticks int
	var task Task
	task = m.Every(time.Second, func() {
		ticks++
		if ticks == 2 {
			task.Stop()
		}
	})
	m.Advance(10 * time.Second)
	if ticks != 2 {
		t.Fatalf("expected ticker stopped from its callback after 2 ticks, got %d", ticks)
	}
}

func TestManualOrdersByDueTime(t *testing.T) {
	m := NewManual()
	var order []string
	m.After(2*time.Second, func() { order = append(order, "late") })
	m.After(time.Second, func() { order = append(order, "early") })
	m.Advance(3 * time.Second)
	if len(order) != 2 || order[0] != "early" || order[1] != "late" {
		t.Fatalf("unexpected order %v", order)
	}
	if m.Elapsed() != 3*time.Second {
		t.Fatalf("expected elapsed 3s, got %v", m.Elapsed())
	}
}

func TestRealEveryStops(t *testing.T) {
	var ticks atomic.Int32
	task := Real{}.Every(5*time.Millisecond, func() { ticks.Add(1) })

	deadline := time.Now().Add(2 * time.Second)
	for ticks.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	task.Stop()
	task.Stop()
	if ticks.Load() < 2 {
		t.Fatalf("expected ticker to fire, got %d", ticks.Load())
	}
}

func TestRealAfterCanBeStopped(t *testing.T) {
	var fired atomic.Bool
	task := Real{}.After(time.Hour, func() { fired.Store(true) })
	task.Stop()
	if fired.Load() {
		t.Fatalf("expected stopped timer not to fire")
	}
}
