package clock

import (
	"sync"
	"time"
)

// Task is a scheduled callback. Stop may be called any number of times.
type Task interface {
	Stop()
}

// Scheduler creates cancelable tasks.
type Scheduler interface {
	// Every runs fn once per interval until the task is stopped.
	Every(interval time.Duration, fn func()) Task
	// After runs fn once after delay unless the task is stopped first.
	After(delay time.Duration, fn func()) Task
}

// Real schedules on the wall clock.
type Real struct{}

func (Real) Every(interval time.Duration, fn func()) Task {
	t := &tickerTask{
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}
	go t.run(fn)
	return t
}

func (Real) After(delay time.Duration, fn func()) Task {
	return &timerTask{timer: time.AfterFunc(delay, fn)}
}

type tickerTask struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (t *tickerTask) run(fn func()) {
	for {
		select {
		case <-t.done:
			return
		case <-t.ticker.C:
			fn()
		}
	}
}

func (t *tickerTask) Stop() {
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
	})
}

type timerTask struct {
	timer *time.Timer
}

func (t *timerTask) Stop() {
	t.timer.Stop()
}
