package timeline

import (
	"sync"
	"time"
)

// ZoomAnimationDuration is how long a programmatic zoom transition runs.
const ZoomAnimationDuration = 250 * time.Millisecond

// Animator interpolates zoom and scroll in lockstep over a fixed duration
// with an ease-out cubic curve. It is the only stateful piece of the
// engine: a small idle → animating → idle machine driven by an external
// clock tick. Starting a new animation atomically supersedes any in-flight
// one, so two interpolations never race for the same view state.
type Animator struct {
	mu        sync.Mutex
	active    bool
	start     View
	target    View
	startedAt time.Time
	duration  time.Duration
}

// NewAnimator returns an idle animator.
func NewAnimator() *Animator {
	return &Animator{duration: ZoomAnimationDuration}
}

// Start begins a transition from one view to another, canceling any
// animation already running.
func (a *Animator) Start(from, to View, now time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.active = true
	a.start = from
	a.target = to
	a.startedAt = now
	if a.duration <= 0 {
		a.duration = ZoomAnimationDuration
	}
}

// Tick returns the interpolated view for the given instant and whether the
// animation has completed. While idle the caller's current view passes
// through untouched; on completion the target view is returned and becomes
// the resting view. The caller feeds the result into Compute each tick.
func (a *Animator) Tick(current View, now time.Time) (View, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.active {
		return current, true
	}

	t := float64(now.Sub(a.startedAt)) / float64(a.duration)
	if t >= 1 {
		a.active = false
		return a.target, true
	}
	if t < 0 {
		t = 0
	}

	eased := easeOutCubic(t)
	v := a.target
	v.Zoom = a.start.Zoom + (a.target.Zoom-a.start.Zoom)*eased
	v.ScrollX = a.start.ScrollX + (a.target.ScrollX-a.start.ScrollX)*eased
	return v, false
}

// Cancel stops any in-flight animation. The view rests wherever the last
// Tick left it.
func (a *Animator) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.active = false
}

// Animating reports whether a transition is in flight.
func (a *Animator) Animating() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active
}

func easeOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}
