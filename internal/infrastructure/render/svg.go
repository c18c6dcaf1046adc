// Package render draws a computed timeline layout as an SVG document.
package render

import (
	"bytes"
	"fmt"

	"github.com/nvall/chronoline/internal/domain/entities"
	"github.com/nvall/chronoline/internal/domain/timeline"
)

// Geometry constants. The canvas height is fixed; width follows the layout.
const (
	svgHeight   = 420.0
	axisY       = 260.0
	bandTop     = 40.0
	bandHeight  = 360.0
	laneHeight  = 26.0
	laneTop     = 300.0
	dotRadius   = 7.0
	bumpOffset  = 18.0
	labelY      = 282.0
	fontFamily  = "Arial, sans-serif"
	defaultFill = "#64748b"
)

// Options selects optional document content.
type Options struct {
	Title    string
	Question string // compelling question banner, omitted when empty
	Arcs     []timeline.Arc
}

// Document renders the layout into a standalone SVG document.
func Document(l timeline.Layout, periods []entities.Period, bounds timeline.Bounds, opts Options) []byte {
	var buf bytes.Buffer
	width := l.CanvasWidth
	if width <= 0 {
		width = 800
	}

	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`+"\n",
		width, svgHeight, width, svgHeight)
	fmt.Fprintf(&buf, `<rect width="%.0f" height="%.0f" fill="#ffffff"/>`+"\n", width, svgHeight)

	writePeriodBands(&buf, periods, bounds, width)

	if opts.Title != "" {
		fmt.Fprintf(&buf, `<text x="%.0f" y="24" text-anchor="middle" font-family="%s" font-size="18" fill="#1f2937">%s</text>`+"\n",
			width/2, fontFamily, escape(opts.Title))
	}
	if opts.Question != "" {
		fmt.Fprintf(&buf, `<text x="%.0f" y="%.0f" text-anchor="middle" font-family="%s" font-size="13" font-style="italic" fill="#475569">%s</text>`+"\n",
			width/2, svgHeight-8, fontFamily, escape(opts.Question))
	}

	// Axis line and tick labels.
	fmt.Fprintf(&buf, `<line x1="0" y1="%.0f" x2="%.0f" y2="%.0f" stroke="#333333" stroke-width="2"/>`+"\n",
		axisY, width, axisY)
	for _, label := range l.Labels {
		x := label.Pct / 100 * width
		fmt.Fprintf(&buf, `<line x1="%.1f" y1="%.0f" x2="%.1f" y2="%.0f" stroke="#94a3b8"/>`+"\n",
			x, axisY-5, x, axisY+5)
		fmt.Fprintf(&buf, `<text x="%.1f" y="%.0f" text-anchor="middle" font-family="%s" font-size="11" fill="#334155">%s</text>`+"\n",
			x, labelY, fontFamily, escape(label.Text))
	}

	writeBars(&buf, l)
	writeArcs(&buf, opts.Arcs)
	writeClusters(&buf, l, periods)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writePeriodBands(buf *bytes.Buffer, periods []entities.Period, bounds timeline.Bounds, width float64) {
	for _, p := range periods {
		x1 := bounds.Fraction(float64(p.StartYear)) * width
		x2 := bounds.Fraction(float64(p.EndYear)) * width
		if x2 <= x1 {
			continue
		}
		bg := p.Background
		if bg == "" {
			bg = "#f1f5f9"
		}
		fmt.Fprintf(buf, `<rect x="%.1f" y="%.0f" width="%.1f" height="%.0f" fill="%s" fill-opacity="0.5"/>`+"\n",
			x1, bandTop, x2-x1, bandHeight, bg)
		fmt.Fprintf(buf, `<text x="%.1f" y="%.0f" font-family="%s" font-size="12" fill="%s">%s</text>`+"\n",
			x1+4, bandTop+14, fontFamily, colorOr(p.Color), escape(p.Label))
	}
}

func writeBars(buf *bytes.Buffer, l timeline.Layout) {
	for _, bar := range l.Bars {
		y := laneTop + float64(bar.Lane)*laneHeight
		w := bar.EndPx - bar.StartPx
		if w < 2 {
			w = 2
		}
		fmt.Fprintf(buf, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.0f" rx="6" fill="#60a5fa" fill-opacity="0.8"/>`+"\n",
			bar.StartPx, y, w, laneHeight-8)
	}
}

func writeClusters(buf *bytes.Buffer, l timeline.Layout, periods []entities.Period) {
	colors := make(map[string]string, len(periods))
	for _, p := range periods {
		colors[p.ID] = colorOr(p.Color)
	}

	for _, c := range l.Clusters {
		y := axisY
		if c.Bumped {
			y -= bumpOffset
		}
		fill := colors[c.DominantPeriodID]
		if fill == "" {
			fill = defaultFill
		}

		r := dotRadius
		if !c.Single() {
			r += 3
		}
		fmt.Fprintf(buf, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="#ffffff" stroke-width="1.5"/>`+"\n",
			c.CenterPx, y, r, fill)
		if !c.Single() {
			fmt.Fprintf(buf, `<text x="%.1f" y="%.1f" text-anchor="middle" font-family="%s" font-size="9" fill="#ffffff">%d</text>`+"\n",
				c.CenterPx, y+3, fontFamily, len(c.EventIDs))
		}
	}
}

func writeArcs(buf *bytes.Buffer, arcs []timeline.Arc) {
	for _, arc := range arcs {
		fmt.Fprintf(buf,
			`<path d="M %.1f %.1f C %.1f %.1f, %.1f %.1f, %.1f %.1f" fill="none" stroke="#f59e0b" stroke-width="1.5"/>`+"\n",
			arc.FromPx, axisY,
			arc.Control1Px, axisY-arc.OffsetPx,
			arc.Control2Px, axisY-arc.OffsetPx,
			arc.ToPx, axisY)
	}
}

func colorOr(c string) string {
	if c == "" {
		return defaultFill
	}
	return c
}

func escape(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '&':
			buf.WriteString("&amp;")
		case '"':
			buf.WriteString("&quot;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
