package anim

import (
	"math"
	"testing"
	"time"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func TestValueAnimate(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	v := NewValue(1.0, 100*time.Millisecond)
	v.SetClock(clk.now)

	v.Animate(2.0)

	tests := []struct {
		name    string
		advance time.Duration
		want    float64
		running bool
	}{
		{"start", 0, 1.0, true},
		{"midpoint", 50 * time.Millisecond, 1.5, true},
		{"end", 50 * time.Millisecond, 2.0, false},
		{"past end", 200 * time.Millisecond, 2.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clk.advance(tt.advance)
			if got := v.Current(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Current() = %v, want %v", got, tt.want)
			}
			if got := v.Running(); got != tt.running {
				t.Errorf("Running() = %v, want %v", got, tt.running)
			}
		})
	}
}

func TestValueRetargetMidFlight(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	v := NewValue(0, 100*time.Millisecond)
	v.SetClock(clk.now)

	v.Animate(1.0)
	clk.advance(50 * time.Millisecond)

	before := v.Current()
	v.Animate(0.25)

	// Retargeting must not jump: the new segment starts where the old one
	// left off.
	if got := v.Current(); math.Abs(got-before) > 1e-9 {
		t.Errorf("Current() after retarget = %v, want %v", got, before)
	}
	if got := v.Target(); got != 0.25 {
		t.Errorf("Target() = %v, want 0.25", got)
	}

	clk.advance(100 * time.Millisecond)
	if got := v.Current(); math.Abs(got-0.25) > 1e-9 {
		t.Errorf("Current() after retargeted animation = %v, want 0.25", got)
	}
}

func TestValueSet(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	v := NewValue(1.0, 100*time.Millisecond)
	v.SetClock(clk.now)

	v.Animate(5.0)
	clk.advance(10 * time.Millisecond)
	v.Set(3.0)

	if got := v.Current(); got != 3.0 {
		t.Errorf("Current() after Set = %v, want 3.0", got)
	}
	if v.Running() {
		t.Error("Running() after Set = true, want false")
	}
}

func TestValueZeroDuration(t *testing.T) {
	v := NewValue(1.0, 0)
	v.Animate(4.0)

	if got := v.Current(); got != 4.0 {
		t.Errorf("Current() with zero duration = %v, want 4.0", got)
	}
	if v.Running() {
		t.Error("Running() with zero duration = true, want false")
	}
}
