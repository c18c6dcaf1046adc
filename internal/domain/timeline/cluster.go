package timeline

import (
	"sort"

	"github.com/nvall/chronoline/internal/domain/entities"
)

// Cluster is a group of one or more point events merged for display because
// their pixel positions sit within the proximity threshold at the current
// zoom.
type Cluster struct {
	// ID is the first member's event id, stable across recomputation at the
	// same zoom, and used as the open-cluster key.
	ID       string
	EventIDs []string

	CenterPx  float64
	CenterPct float64
	MinPx     float64
	MaxPx     float64

	// Mixed marks clusters whose members span more than one period.
	// DominantPeriodID is the period with the most members (first
	// encountered wins ties) and drives single-color rendering.
	Mixed            bool
	DominantPeriodID string

	// Bumped marks clusters that visually collide with a duration bar so
	// the renderer can offset them.
	Bumped bool
}

// Single reports whether the cluster holds exactly one event.
func (c *Cluster) Single() bool {
	return len(c.EventIDs) == 1
}

type pointMarker struct {
	event entities.Event
	px    float64
}

// clusterPoints greedily merges point events whose gap to the running
// cluster maximum stays within thresholdPx. Events are walked in pixel
// order, so a gap beyond the threshold always starts a new cluster.
func clusterPoints(points []entities.Event, b Bounds, canvas, thresholdPx float64) []Cluster {
	if len(points) == 0 {
		return nil
	}

	markers := make([]pointMarker, len(points))
	for i, ev := range points {
		markers[i] = pointMarker{
			event: ev,
			px:    b.Fraction(ev.Start().Fraction()) * canvas,
		}
	}
	sort.SliceStable(markers, func(i, j int) bool {
		return markers[i].px < markers[j].px
	})

	var clusters []Cluster
	group := []pointMarker{markers[0]}
	maxPx := markers[0].px

	flush := func() {
		clusters = append(clusters, buildCluster(group, canvas))
	}

	for _, m := range markers[1:] {
		if m.px-maxPx <= thresholdPx {
			group = append(group, m)
		} else {
			flush()
			group = []pointMarker{m}
		}
		maxPx = m.px
	}
	flush()
	return clusters
}

func buildCluster(group []pointMarker, canvas float64) Cluster {
	c := Cluster{
		ID:    group[0].event.ID,
		MinPx: group[0].px,
		MaxPx: group[len(group)-1].px,
	}
	c.CenterPx = (c.MinPx + c.MaxPx) / 2
	if canvas > 0 {
		c.CenterPct = c.CenterPx / canvas * 100
	}

	counts := make(map[string]int)
	best := 0
	for _, m := range group {
		c.EventIDs = append(c.EventIDs, m.event.ID)
		counts[m.event.PeriodID]++
		// Strict comparison keeps the first-encountered period on ties.
		if counts[m.event.PeriodID] > best {
			best = counts[m.event.PeriodID]
			c.DominantPeriodID = m.event.PeriodID
		}
	}
	c.Mixed = len(counts) > 1
	return c
}
