package stopsearch

import (
	"sync"
	"time"
)

// Debouncer holds at most one pending call. Scheduling a new call cancels the pending
// one before arming the delay again, so only the last call in a burst runs.
type Debouncer struct {
	delay time.Duration

	mutex sync.Mutex
	timer *time.Timer
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

func (d *Debouncer) Schedule(fn func()) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.delay, fn)
}

// Cancel drops the pending call, it reports whether there was one to drop
func (d *Debouncer) Cancel() bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer == nil {
		return false
	}

	stopped := d.timer.Stop()
	d.timer = nil

	return stopped
}
