package timeline

import (
	"github.com/nvall/chronoline/internal/domain/entities"
)

// Default pixel thresholds. Clustering and bump detection are tuned
// independently even though they currently share a value.
const (
	DefaultClusterThresholdPx = 14.0
	DefaultBumpThresholdPx    = 14.0
)

// Options tunes the layout thresholds. The zero value selects the defaults.
type Options struct {
	ClusterThresholdPx float64
	BumpThresholdPx    float64
}

func (o Options) withDefaults() Options {
	if o.ClusterThresholdPx <= 0 {
		o.ClusterThresholdPx = DefaultClusterThresholdPx
	}
	if o.BumpThresholdPx <= 0 {
		o.BumpThresholdPx = DefaultBumpThresholdPx
	}
	return o
}

// Input is one snapshot of everything the layout depends on. Events must
// already be filtered for display (approved, section-scoped, valid dates).
type Input struct {
	Events        []entities.Event
	Periods       []entities.Period
	Bounds        Bounds
	View          View
	ViewportWidth float64
	Options       Options
}

// Layout is the computed geometry for one render pass.
type Layout struct {
	CanvasWidth   float64
	Clusters      []Cluster
	Bars          []Bar
	LaneCount     int
	Labels        []YearLabel
	LabelInterval int

	// clusterByEvent maps member event ids to cluster indices for arc and
	// hit lookups.
	clusterByEvent map[string]int
}

// Compute runs one full layout pass. It is pure and cheap enough to call on
// every zoom tick or viewport resize.
func Compute(in Input) Layout {
	opts := in.Options.withDefaults()
	canvas := in.View.CanvasWidth(in.ViewportWidth)

	var points, ranges []entities.Event
	for _, ev := range in.Events {
		if ev.IsRange() {
			ranges = append(ranges, ev)
		} else {
			points = append(points, ev)
		}
	}

	l := Layout{
		CanvasWidth:    canvas,
		clusterByEvent: make(map[string]int),
	}

	l.Clusters = clusterPoints(points, in.Bounds, canvas, opts.ClusterThresholdPx)
	l.Bars, l.LaneCount = assignLanes(ranges, in.Bounds, canvas, opts.ClusterThresholdPx)
	markBumped(l.Clusters, l.Bars, opts.BumpThresholdPx)

	pxPerYear := canvas / in.Bounds.Span()
	l.LabelInterval = LabelInterval(pxPerYear)
	l.Labels = yearLabels(in.Bounds, l.LabelInterval)

	for i := range l.Clusters {
		for _, id := range l.Clusters[i].EventIDs {
			l.clusterByEvent[id] = i
		}
	}
	return l
}

// ClusterFor returns the cluster containing the event id. A lookup for a
// deleted or off-screen id returns false, never an error.
func (l *Layout) ClusterFor(eventID string) (*Cluster, bool) {
	i, ok := l.clusterByEvent[eventID]
	if !ok {
		return nil, false
	}
	return &l.Clusters[i], true
}

// HitEventIDs resolves a cluster id to its member event ids, for selection
// callbacks. Unknown ids yield an empty set.
func (l *Layout) HitEventIDs(clusterID string) []string {
	for i := range l.Clusters {
		if l.Clusters[i].ID == clusterID {
			return l.Clusters[i].EventIDs
		}
	}
	return nil
}
