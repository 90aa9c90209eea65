package interview

import (
	"testing"
	"time"
)

func TestTimerTick(t *testing.T) {
	timer := NewTimer(time.Hour)
	timer.Tick()
	if got := timer.Elapsed(); got != 0 {
		t.Fatalf("inactive tick counted: %d", got)
	}

	timer.Start()
	timer.Start()
	timer.Tick()
	timer.Tick()
	if got := timer.Elapsed(); got != 2 {
		t.Fatalf("Elapsed = %d, want 2", got)
	}

	timer.Stop()
	timer.Tick()
	if got := timer.Elapsed(); got != 2 {
		t.Errorf("stopped timer counted: %d", got)
	}

	timer.Restart()
	if !timer.Active() || timer.Elapsed() != 0 {
		t.Errorf("Restart: active %v elapsed %d", timer.Active(), timer.Elapsed())
	}
	timer.Reset()
	if timer.Active() || timer.Elapsed() != 0 {
		t.Errorf("Reset: active %v elapsed %d", timer.Active(), timer.Elapsed())
	}
}

func TestTimerRuns(t *testing.T) {
	timer := NewTimer(5 * time.Millisecond)
	timer.Start()
	defer timer.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for timer.Elapsed() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("timer did not tick, elapsed %d", timer.Elapsed())
		}
		time.Sleep(time.Millisecond)
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := map[int]string{0: "0:00", 9: "0:09", 60: "1:00", 125: "2:05", 3600: "60:00", -3: "0:00"}
	for in, want := range tests {
		if got := FormatElapsed(in); got != want {
			t.Errorf("FormatElapsed(%d) = %q, want %q", in, got, want)
		}
	}
}
