package timeline

import (
	"math"

	"github.com/nvall/chronoline/internal/domain/entities"
)

// Connector-arc shape constants. The offset grows with the square root of
// the endpoint distance, capped, then tapers toward the midpoint for very
// long connections to avoid sharp S-kinks.
const (
	arcOffsetScale   = 4.0
	maxArcOffset     = 120.0
	arcTaperDistance = 2000.0
)

// Arc is the connector geometry between the expanded event's cluster and
// the cluster holding the other endpoint of one of its connections. The
// curve is a cubic bezier on the canvas; Outgoing arcs (expanded event is
// the cause) bow above the axis and leave from the cause side, incoming
// arcs bow below.
type Arc struct {
	ConnectionID string
	OtherEventID string
	Outgoing     bool

	FromPx float64
	ToPx   float64

	Control1Px float64
	Control2Px float64
	OffsetPx   float64
}

// Arcs produces one arc per connection of the expanded event whose other
// endpoint is currently visible. Connections whose endpoints collapse into
// the same on-screen cluster are skipped: no arc is drawn inside a single
// visual node. Missing ids are dropped silently.
func Arcs(l *Layout, expandedEventID string, conns []entities.Connection) []Arc {
	from, ok := l.ClusterFor(expandedEventID)
	if !ok {
		return nil
	}

	var arcs []Arc
	for _, conn := range conns {
		other := conn.Other(expandedEventID)
		if other == "" {
			continue
		}
		to, ok := l.ClusterFor(other)
		if !ok {
			continue
		}
		if to.ID == from.ID {
			continue
		}

		arcs = append(arcs, buildArc(conn, from.CenterPx, to.CenterPx, other,
			conn.CauseEventID == expandedEventID))
	}
	return arcs
}

func buildArc(conn entities.Connection, fromPx, toPx float64, otherID string, outgoing bool) Arc {
	dist := math.Abs(toPx - fromPx)
	offset := math.Min(maxArcOffset, arcOffsetScale*math.Sqrt(dist))
	if !outgoing {
		offset = -offset
	}

	// Control points start a third of the way in from each endpoint and
	// blend toward the midpoint as the distance approaches the taper limit.
	mid := (fromPx + toPx) / 2
	blend := clamp01(dist / arcTaperDistance)
	c1 := fromPx + (toPx-fromPx)/3
	c2 := toPx - (toPx-fromPx)/3

	return Arc{
		ConnectionID: conn.ID,
		OtherEventID: otherID,
		Outgoing:     outgoing,
		FromPx:       fromPx,
		ToPx:         toPx,
		Control1Px:   c1 + (mid-c1)*blend,
		Control2Px:   c2 + (mid-c2)*blend,
		OffsetPx:     offset,
	}
}
