// Package anim provides a small duration-based animated scalar. A Value
// approaches its target over a fixed duration and is sampled lazily on
// every read, so callers never need a ticker to keep it consistent.
package anim

import "time"

// Value is a scalar that moves smoothly from its current position to a
// target over a fixed duration. Reads sample the clock, so a Value that is
// mid-flight reports interpolated positions without any external driving.
type Value struct {
	from     float64
	to       float64
	startAt  time.Time
	duration time.Duration
	clock    func() time.Time
}

// NewValue returns a Value resting at v. Animations started on it run for
// the given duration; a zero duration makes every retarget an instant jump.
func NewValue(v float64, duration time.Duration) *Value {
	return &Value{
		from:     v,
		to:       v,
		duration: duration,
		clock:    time.Now,
	}
}

// SetClock replaces the time source. Tests use this to drive the animation
// deterministically.
func (v *Value) SetClock(clock func() time.Time) {
	v.clock = clock
}

// Set jumps to x immediately, cancelling any running animation.
func (v *Value) Set(x float64) {
	v.from = x
	v.to = x
}

// Animate retargets the value: it starts moving from its current position
// toward target, taking the full duration again.
func (v *Value) Animate(target float64) {
	cur := v.Current()
	v.from = cur
	v.to = target
	v.startAt = v.clock()
}

// Target returns the value the animation is heading toward.
func (v *Value) Target() float64 {
	return v.to
}

// Running reports whether the value is still moving.
func (v *Value) Running() bool {
	if v.from == v.to {
		return false
	}
	return v.progress() < 1
}

// Current returns the instantaneous value.
func (v *Value) Current() float64 {
	t := v.progress()
	return v.from + (v.to-v.from)*smoothstep(t)
}

func (v *Value) progress() float64 {
	if v.duration <= 0 {
		return 1
	}
	elapsed := v.clock().Sub(v.startAt)
	if elapsed >= v.duration {
		return 1
	}
	if elapsed < 0 {
		return 0
	}
	return float64(elapsed) / float64(v.duration)
}

func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}
