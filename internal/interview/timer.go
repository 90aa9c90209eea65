package interview

import (
	"fmt"
	"sync"
	"time"
)

// Timer counts elapsed seconds while active. Ticks arrive from a background
// ticker; a tick while inactive is ignored.
type Timer struct {
	mu       sync.Mutex
	interval time.Duration
	elapsed  int
	active   bool
	stop     chan struct{}
}

// NewTimer returns a stopped timer ticking every interval (one second when
// interval is not positive).
func NewTimer(interval time.Duration) *Timer {
	if interval <= 0 {
		interval = time.Second
	}
	return &Timer{interval: interval}
}

// Start activates the timer. Starting an active timer does nothing.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active {
		return
	}
	t.active = true
	t.stop = make(chan struct{})
	go t.run(t.stop)
}

// Stop deactivates the timer, keeping the elapsed count.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.halt()
}

// Reset stops the timer and zeroes the count.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.halt()
	t.elapsed = 0
}

// Restart zeroes the count and starts the timer.
func (t *Timer) Restart() {
	t.Reset()
	t.Start()
}

// Tick adds one second if the timer is active.
func (t *Timer) Tick() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active {
		t.elapsed++
	}
}

func (t *Timer) Elapsed() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.elapsed
}

func (t *Timer) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

func (t *Timer) halt() {
	if !t.active {
		return
	}
	t.active = false
	close(t.stop)
	t.stop = nil
}

func (t *Timer) run(stop <-chan struct{}) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			t.mu.Lock()
			// a stale goroutine may still hold a ticker after Restart
			if t.stop == nil || t.stop != stop {
				t.mu.Unlock()
				return
			}
			t.elapsed++
			t.mu.Unlock()
		}
	}
}

// FormatElapsed renders seconds as m:ss.
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
