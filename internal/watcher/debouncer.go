package watcher

import (
	"slices"
	"sync"
	"time"

	"bigocheck/internal/logger"
)

// debouncer collects change events and hands the changed paths to the
// handler once no new event arrived for delay. Later events for a path
// replace earlier ones.
type debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	pending map[string]FileChangeEvent
	timer   *time.Timer
	stopped bool
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:   delay,
		pending: make(map[string]FileChangeEvent),
	}
}

func (d *debouncer) add(event FileChangeEvent, handler FileChangeHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.pending[event.Path] = event
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() { d.flush(handler) })
}

// flush drains the pending events and runs the handler without holding
// the lock, so events keep queueing during a long analysis.
func (d *debouncer) flush(handler FileChangeHandler) {
	d.mu.Lock()
	if d.stopped || len(d.pending) == 0 {
		d.mu.Unlock()
		return
	}
	batch := d.pending
	d.pending = make(map[string]FileChangeEvent)
	d.mu.Unlock()

	paths := make([]string, 0, len(batch))
	for path := range batch {
		paths = append(paths, path)
	}
	slices.Sort(paths)

	if err := handler(paths); err != nil {
		logger.Error("change handler failed", "files", len(paths), "err", err)
	}
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}
