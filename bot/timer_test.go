package bot

import (
	"testing"
	"time"
)

func TestCountdown(t *testing.T) {
	var c countdown
	if c.HasStarted() || c.IsElapsed(time.Hour) {
		t.Fatal("zero countdown should be idle")
	}

	c.Start(10*time.Second, 2*time.Second)
	tests := []struct {
		now       time.Duration
		elapsed   bool
		remaining time.Duration
	}{
		{10 * time.Second, false, 2 * time.Second},
		{11 * time.Second, false, time.Second},
		{12 * time.Second, false, 0},
		{13 * time.Second, true, 0},
	}
	for _, tt := range tests {
		if got := c.IsElapsed(tt.now); got != tt.elapsed {
			t.Errorf("IsElapsed(%v) = %v, want %v", tt.now, got, tt.elapsed)
		}
		if got := c.Remaining(tt.now); got != tt.remaining {
			t.Errorf("Remaining(%v) = %v, want %v", tt.now, got, tt.remaining)
		}
	}

	c.Invalidate()
	if c.HasStarted() {
		t.Error("invalidated countdown still started")
	}
}
