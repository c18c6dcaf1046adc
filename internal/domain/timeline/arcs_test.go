package timeline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvall/chronoline/internal/domain/entities"
)

func connection(id, cause, effect string) entities.Connection {
	return entities.Connection{ID: id, CauseEventID: cause, EffectEventID: effect}
}

func TestArcs_OutgoingAndIncoming(t *testing.T) {
	l := Compute(testInput([]entities.Event{
		pointEvent("cause", 2000, ""),
		pointEvent("mid", 2040, ""),
		pointEvent("effect", 2080, ""),
	}))

	arcs := Arcs(&l, "mid", []entities.Connection{
		connection("c1", "mid", "effect"),
		connection("c2", "cause", "mid"),
	})
	require.Len(t, arcs, 2)

	out, in := arcs[0], arcs[1]
	assert.True(t, out.Outgoing)
	assert.Positive(t, out.OffsetPx)
	assert.Equal(t, "effect", out.OtherEventID)

	assert.False(t, in.Outgoing)
	assert.Negative(t, in.OffsetPx)
	assert.Equal(t, "cause", in.OtherEventID)
}

func TestArcs_SkipsSameCluster(t *testing.T) {
	// Both endpoints collapse into one cluster at this zoom, so no arc is
	// drawn inside the single visual node.
	l := Compute(testInput([]entities.Event{
		pointEvent("a", 2000, ""),
		pointEvent("b", 2005, ""),
	}))
	require.Len(t, l.Clusters, 1)

	arcs := Arcs(&l, "a", []entities.Connection{connection("c1", "a", "b")})
	assert.Empty(t, arcs)
}

func TestArcs_SkipsMissingEndpoint(t *testing.T) {
	l := Compute(testInput([]entities.Event{
		pointEvent("a", 2000, ""),
	}))

	arcs := Arcs(&l, "a", []entities.Connection{connection("c1", "a", "deleted")})
	assert.Empty(t, arcs)
}

func TestArcs_UnknownExpandedEvent(t *testing.T) {
	l := Compute(testInput([]entities.Event{pointEvent("a", 2000, "")}))
	assert.Nil(t, Arcs(&l, "missing", []entities.Connection{connection("c1", "a", "b")}))
}

func TestArcs_IgnoresUnrelatedConnections(t *testing.T) {
	l := Compute(testInput([]entities.Event{
		pointEvent("a", 2000, ""),
		pointEvent("b", 2050, ""),
	}))

	arcs := Arcs(&l, "a", []entities.Connection{connection("c1", "b", "b2")})
	assert.Empty(t, arcs)
}

func TestBuildArc_OffsetGrowsWithDistanceAndCaps(t *testing.T) {
	conn := connection("c1", "x", "y")

	near := buildArc(conn, 0, 100, "y", true)
	assert.InDelta(t, arcOffsetScale*math.Sqrt(100), near.OffsetPx, 1e-9)

	far := buildArc(conn, 0, 5000, "y", true)
	assert.Equal(t, maxArcOffset, far.OffsetPx)
}

func TestBuildArc_ControlPointsTaperTowardMidpoint(t *testing.T) {
	conn := connection("c1", "x", "y")

	// Short arcs keep thirds-based control points.
	short := buildArc(conn, 0, 300, "y", true)
	blend := 300.0 / arcTaperDistance
	c1 := 100 + (150-100)*blend
	assert.InDelta(t, c1, short.Control1Px, 1e-9)

	// At or past the taper distance both controls collapse to the midpoint.
	long := buildArc(conn, 0, 4000, "y", true)
	assert.InDelta(t, 2000, long.Control1Px, 1e-9)
	assert.InDelta(t, 2000, long.Control2Px, 1e-9)
}
