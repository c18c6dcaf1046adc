package timeline

import "github.com/nvall/chronoline/internal/domain/chrono"

// labelLadder is the fixed set of year intervals axis labels may use.
var labelLadder = []int{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}

// YearLabel is one axis tick label.
type YearLabel struct {
	Year int
	Pct  float64
	Text string
}

// LabelInterval picks the smallest ladder interval whose labels stay
// readable at the given pixel density.
func LabelInterval(pxPerYear float64) int {
	switch {
	case pxPerYear >= 40:
		return 1
	case pxPerYear >= 15:
		return 2
	case pxPerYear >= 6:
		return 5
	case pxPerYear >= 3:
		return 10
	case pxPerYear >= 1.2:
		return 25
	case pxPerYear >= 0.6:
		return 50
	case pxPerYear >= 0.3:
		return 100
	case pxPerYear >= 0.15:
		return 250
	case pxPerYear >= 0.1:
		return 500
	default:
		return 1000
	}
}

// yearLabels emits tick labels at every interval multiple inside the
// bounds. Year 0 is never labeled. Era suffixes appear only when the range
// spans both BCE and CE.
func yearLabels(b Bounds, interval int) []YearLabel {
	withEra := b.SpansEras()

	first := b.Start
	if rem := mod(first, interval); rem != 0 {
		first += interval - rem
	}

	var labels []YearLabel
	for y := first; y <= b.End; y += interval {
		if y == 0 {
			continue
		}
		labels = append(labels, YearLabel{
			Year: y,
			Pct:  b.Fraction(float64(y)) * 100,
			Text: chrono.FormatYear(y, withEra),
		})
	}
	return labels
}

// mod is the non-negative remainder, needed for BCE start years.
func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
