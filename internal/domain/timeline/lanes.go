package timeline

import (
	"sort"

	"github.com/nvall/chronoline/internal/domain/entities"
)

// Bar is a duration event placed on a lane. Lanes are row indices assigned
// so that temporally overlapping ranges never share a row.
type Bar struct {
	EventID  string
	StartPx  float64
	EndPx    float64
	StartPct float64
	EndPct   float64
	Lane     int
}

// assignLanes performs greedy interval coloring: bars sorted by start pixel
// take the lowest lane whose occupants, padded by the threshold, do not
// overlap. The result uses the minimum number of lanes for the given
// padding.
func assignLanes(ranges []entities.Event, b Bounds, canvas, paddingPx float64) ([]Bar, int) {
	if len(ranges) == 0 {
		return nil, 0
	}

	bars := make([]Bar, 0, len(ranges))
	for _, ev := range ranges {
		end, ok := ev.End()
		if !ok {
			continue
		}
		startPx := b.Fraction(ev.Start().Fraction()) * canvas
		endPx := b.Fraction(end.Fraction()) * canvas
		if endPx < startPx {
			startPx, endPx = endPx, startPx
		}
		bar := Bar{EventID: ev.ID, StartPx: startPx, EndPx: endPx}
		if canvas > 0 {
			bar.StartPct = startPx / canvas * 100
			bar.EndPct = endPx / canvas * 100
		}
		bars = append(bars, bar)
	}

	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].StartPx < bars[j].StartPx
	})

	// laneEnds tracks the rightmost padded edge per lane.
	var laneEnds []float64
	for i := range bars {
		placed := false
		for lane, endPx := range laneEnds {
			if bars[i].StartPx > endPx+paddingPx {
				bars[i].Lane = lane
				laneEnds[lane] = bars[i].EndPx
				placed = true
				break
			}
		}
		if !placed {
			bars[i].Lane = len(laneEnds)
			laneEnds = append(laneEnds, bars[i].EndPx)
		}
	}
	return bars, len(laneEnds)
}

// markBumped flags clusters whose center falls inside any bar's padded
// interval so the renderer can offset the dot stack.
func markBumped(clusters []Cluster, bars []Bar, thresholdPx float64) {
	for i := range clusters {
		for _, bar := range bars {
			if clusters[i].CenterPx >= bar.StartPx-thresholdPx &&
				clusters[i].CenterPx <= bar.EndPx+thresholdPx {
				clusters[i].Bumped = true
				break
			}
		}
	}
}
