// Package timeline implements the visual timeline layout engine: it projects
// events onto a zoomable pixel axis, merges nearby point events into
// clusters, lanes duration events into non-overlapping rows, chooses axis
// label intervals, and computes connector-arc geometry. Everything except
// the Animator is a pure function of its inputs and safe to recompute on
// every viewport or data change.
package timeline

import (
	"math"

	"github.com/nvall/chronoline/internal/domain/entities"
)

// Zoom limits and control steps.
const (
	MinZoom  = 1.0
	MaxZoom  = 50.0
	ZoomStep = 0.5

	// WheelZoomFactor converts a wheel-delta unit into a zoom-level delta.
	WheelZoomFactor = 0.003

	// eraViewportShare is how much of the viewport a zoomed-to era occupies.
	eraViewportShare = 0.8
)

// Bounds is the displayed integer year range.
type Bounds struct {
	Start int
	End   int
}

// Span returns the range length in years, floored at 1 so position math
// never divides by zero when a caller passes degenerate bounds.
func (b Bounds) Span() float64 {
	span := b.End - b.Start
	if span <= 0 {
		return 1
	}
	return float64(span)
}

// Fraction maps a fractional year onto [0, 1] within the bounds.
func (b Bounds) Fraction(fractionalYear float64) float64 {
	return clamp01((fractionalYear - float64(b.Start)) / b.Span())
}

// SpansEras reports whether the range crosses from BCE into CE, which turns
// on era suffixes for axis labels.
func (b Bounds) SpansEras() bool {
	return b.Start < 0 && b.End > 0
}

// View is the caller-owned zoom and scroll state for one timeline viewport.
// It is passed into and returned from engine calls; the engine keeps no
// hidden copy.
type View struct {
	Zoom          float64
	ScrollX       float64 // canvas pixels scrolled past the left viewport edge
	OpenClusterID string
}

// ClampZoom restricts a zoom level to the supported range.
func ClampZoom(z float64) float64 {
	return math.Min(MaxZoom, math.Max(MinZoom, z))
}

// CanvasWidth returns the full canvas width at the view's zoom level.
func (v View) CanvasWidth(viewportWidth float64) float64 {
	return viewportWidth * ClampZoom(v.Zoom)
}

// Rezoom returns the view at the target zoom with ScrollX recomputed so the
// canvas position at focalFraction stays under the same viewport pixel.
func (v View) Rezoom(target, focalFraction, viewportWidth float64) View {
	target = ClampZoom(target)
	oldCanvas := v.CanvasWidth(viewportWidth)
	newCanvas := viewportWidth * target

	// Where the focal point currently sits inside the viewport.
	viewportX := focalFraction*oldCanvas - v.ScrollX

	next := v
	next.Zoom = target
	next.ScrollX = focalFraction*newCanvas - viewportX
	return next
}

// StepIn and StepOut apply one button-press zoom step around the viewport
// center.
func (v View) StepIn(viewportWidth float64) View {
	return v.Rezoom(ClampZoom(v.Zoom)+ZoomStep, v.CenterFraction(viewportWidth), viewportWidth)
}

func (v View) StepOut(viewportWidth float64) View {
	return v.Rezoom(ClampZoom(v.Zoom)-ZoomStep, v.CenterFraction(viewportWidth), viewportWidth)
}

// WheelZoom applies a continuous wheel gesture. Positive deltas zoom out,
// matching wheel-down semantics. The focal fraction is the canvas fraction
// under the pointer.
func (v View) WheelZoom(delta, focalFraction, viewportWidth float64) View {
	return v.Rezoom(ClampZoom(v.Zoom)-delta*WheelZoomFactor, focalFraction, viewportWidth)
}

// CenterFraction returns the canvas fraction currently at the viewport
// center.
func (v View) CenterFraction(viewportWidth float64) float64 {
	canvas := v.CanvasWidth(viewportWidth)
	if canvas <= 0 {
		return 0
	}
	return clamp01((v.ScrollX + viewportWidth/2) / canvas)
}

// ZoomToEra returns the view that fits the period's era to roughly 80% of
// the viewport, centered on the era midpoint.
func (v View) ZoomToEra(p entities.Period, b Bounds, viewportWidth float64) View {
	eraSpan := float64(p.Span())
	if eraSpan <= 0 {
		eraSpan = 1
	}
	target := ClampZoom(eraViewportShare / (eraSpan / b.Span()))

	mid := b.Fraction(float64(p.StartYear) + eraSpan/2)
	next := v
	next.Zoom = target
	next.ScrollX = mid*(viewportWidth*target) - viewportWidth/2
	return next
}

func clamp01(f float64) float64 {
	return math.Min(1, math.Max(0, f))
}
