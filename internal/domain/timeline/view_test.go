package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nvall/chronoline/internal/domain/entities"
)

func TestClampZoom(t *testing.T) {
	assert.Equal(t, MinZoom, ClampZoom(0))
	assert.Equal(t, MinZoom, ClampZoom(-3))
	assert.Equal(t, MaxZoom, ClampZoom(1000))
	assert.Equal(t, 8.0, ClampZoom(8))
}

func TestView_CanvasWidth(t *testing.T) {
	v := View{Zoom: 4}
	assert.Equal(t, 4000.0, v.CanvasWidth(1000))

	// Out-of-range zoom is clamped before sizing.
	v.Zoom = 500
	assert.Equal(t, 50000.0, v.CanvasWidth(1000))
}

// Rezooming must keep the focal canvas position under the same viewport
// pixel, for any focal fraction and zoom pair.
func TestView_Rezoom_FocalInvariance(t *testing.T) {
	const viewport = 1000.0

	tests := []struct {
		name   string
		view   View
		target float64
		focal  float64
	}{
		{
			name:   "zoom in around center",
			view:   View{Zoom: 2, ScrollX: 300},
			target: 4,
			focal:  0.5,
		},
		{
			name:   "zoom out around left edge",
			view:   View{Zoom: 10, ScrollX: 4200},
			target: 3,
			focal:  0.42,
		},
		{
			name:   "wheel-sized step",
			view:   View{Zoom: 7.5, ScrollX: 1234},
			target: 7.2,
			focal:  0.9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.focal*tt.view.CanvasWidth(viewport) - tt.view.ScrollX

			next := tt.view.Rezoom(tt.target, tt.focal, viewport)
			after := tt.focal*next.CanvasWidth(viewport) - next.ScrollX

			assert.InDelta(t, before, after, 1e-9)
			assert.Equal(t, ClampZoom(tt.target), next.Zoom)
		})
	}
}

func TestView_StepInOut(t *testing.T) {
	v := View{Zoom: 3, ScrollX: 500}

	in := v.StepIn(1000)
	assert.Equal(t, 3.5, in.Zoom)

	out := v.StepOut(1000)
	assert.Equal(t, 2.5, out.Zoom)

	// Steps saturate at the limits.
	assert.Equal(t, MaxZoom, View{Zoom: MaxZoom}.StepIn(1000).Zoom)
	assert.Equal(t, MinZoom, View{Zoom: MinZoom}.StepOut(1000).Zoom)
}

func TestView_WheelZoom(t *testing.T) {
	v := View{Zoom: 5, ScrollX: 0}

	// Wheel-down (positive delta) zooms out.
	out := v.WheelZoom(100, 0.5, 1000)
	assert.InDelta(t, 5-100*WheelZoomFactor, out.Zoom, 1e-9)

	in := v.WheelZoom(-100, 0.5, 1000)
	assert.InDelta(t, 5+100*WheelZoomFactor, in.Zoom, 1e-9)
}

func TestView_CenterFraction(t *testing.T) {
	v := View{Zoom: 2, ScrollX: 500}
	// Canvas 2000, center pixel 500+500 = 1000.
	assert.InDelta(t, 0.5, v.CenterFraction(1000), 1e-9)
}

func TestView_ZoomToEra(t *testing.T) {
	b := Bounds{Start: 1900, End: 2000}
	period := entities.Period{StartYear: 1940, EndYear: 1960}

	v := View{Zoom: 1}.ZoomToEra(period, b, 1000)

	// A 20-year era in a 100-year range at 80% share targets zoom 4.
	assert.InDelta(t, 4.0, v.Zoom, 1e-9)

	// The era midpoint sits at the viewport center.
	mid := b.Fraction(1950)
	assert.InDelta(t, mid*v.CanvasWidth(1000)-500, v.ScrollX, 1e-9)
}

func TestView_ZoomToEra_Clamped(t *testing.T) {
	b := Bounds{Start: 0, End: 10000}
	tiny := entities.Period{StartYear: 100, EndYear: 101}

	v := View{}.ZoomToEra(tiny, b, 1000)
	assert.Equal(t, MaxZoom, v.Zoom)
}

func TestBounds_Span(t *testing.T) {
	assert.Equal(t, 100.0, Bounds{Start: 1900, End: 2000}.Span())
	// Degenerate bounds floor at 1 instead of dividing by zero downstream.
	assert.Equal(t, 1.0, Bounds{Start: 2000, End: 2000}.Span())
	assert.Equal(t, 1.0, Bounds{Start: 2000, End: 1990}.Span())
}

func TestBounds_SpansEras(t *testing.T) {
	assert.True(t, Bounds{Start: -500, End: 500}.SpansEras())
	assert.False(t, Bounds{Start: 1900, End: 2000}.SpansEras())
	assert.False(t, Bounds{Start: -500, End: -100}.SpansEras())
}
