package render

import (
	"bufio"
	"fmt"
	"html"
	"io"

	"github.com/zephyrtronium/fplot"
)

// SVGOptions controls the plot drawn by SVG.
type SVGOptions struct {
	// Width and Height are the image size in pixels.
	Width, Height int
	// XMin, XMax, YMin, and YMax bound the visible window.
	XMin, XMax, YMin, YMax float64
	// Stroke is the curve color.
	Stroke string
	// Title, if not empty, labels the curve.
	Title string
}

// DefaultSVGOptions returns options for a 600×600 image of the square window
// [-10, 10]×[-10, 10].
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Width:  600,
		Height: 600,
		XMin:   -10,
		XMax:   10,
		YMin:   -10,
		YMax:   10,
		Stroke: "blue",
	}
}

// vec is a point in data coordinates.
type vec struct {
	x, y float64
}

// SVG draws the points as a curve over axes. The curve is broken at every
// undefined point and wherever it leaves the window, so it never joins
// values across a gap or an asymptote.
func SVG(w io.Writer, pts []fplot.Point, opt SVGOptions) error {
	if opt.Width <= 0 || opt.Height <= 0 || opt.XMin >= opt.XMax || opt.YMin >= opt.YMax {
		return fmt.Errorf("render: invalid SVG window %gx%g..%gx%g at %dx%d",
			opt.XMin, opt.YMin, opt.XMax, opt.YMax, opt.Width, opt.Height)
	}
	sx := func(x float64) float64 {
		return (x - opt.XMin) / (opt.XMax - opt.XMin) * float64(opt.Width)
	}
	sy := func(y float64) float64 {
		return (opt.YMax - y) / (opt.YMax - opt.YMin) * float64(opt.Height)
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "<svg xmlns='http://www.w3.org/2000/svg' "+
		"style='fill: none; stroke-width: 2' "+
		"width='%d' height='%d'>\n", opt.Width, opt.Height)
	bw.WriteString("<defs><marker id='arrow' viewBox='0 0 10 10' refX='10' refY='5' " +
		"markerWidth='8' markerHeight='8' orient='auto'>" +
		"<path d='M0,0 L10,5 L0,10 z' style='fill: black'/></marker></defs>\n")
	if opt.YMin <= 0 && 0 <= opt.YMax {
		fmt.Fprintf(bw, "<line x1='%g' y1='%g' x2='%g' y2='%g' stroke='black' marker-end='url(#arrow)'/>\n",
			sx(opt.XMin), sy(0), sx(opt.XMax), sy(0))
	}
	if opt.XMin <= 0 && 0 <= opt.XMax {
		fmt.Fprintf(bw, "<line x1='%g' y1='%g' x2='%g' y2='%g' stroke='black' marker-end='url(#arrow)'/>\n",
			sx(0), sy(opt.YMin), sx(0), sy(opt.YMax))
	}
	for _, line := range polylines(pts, opt.YMin, opt.YMax) {
		fmt.Fprintf(bw, "<polyline stroke='%s' points='", html.EscapeString(opt.Stroke))
		for i, v := range line {
			if i > 0 {
				bw.WriteByte(' ')
			}
			fmt.Fprintf(bw, "%g,%g", sx(v.x), sy(v.y))
		}
		fmt.Fprintln(bw, "'/>")
	}
	if opt.Title != "" {
		fmt.Fprintf(bw, "<text x='%d' y='20' text-anchor='end' style='fill: %s; stroke: none'>%s</text>\n",
			opt.Width-10, html.EscapeString(opt.Stroke), html.EscapeString(opt.Title))
	}
	fmt.Fprintln(bw, "</svg>")
	return bw.Flush()
}

// polylines splits the points into runs to draw as separate lines. Each run
// has at least two vertices, all with y in [ymin, ymax].
func polylines(pts []fplot.Point, ymin, ymax float64) [][]vec {
	var lines [][]vec
	var cur []vec
	flush := func() {
		if len(cur) >= 2 {
			lines = append(lines, cur)
		}
		cur = nil
	}
	for i := 1; i < len(pts); i++ {
		p, q := pts[i-1], pts[i]
		if !p.Defined || !q.Defined {
			flush()
			continue
		}
		a, b, clipped, ok := clip(vec{p.X, p.Y}, vec{q.X, q.Y}, ymin, ymax)
		if !ok {
			flush()
			continue
		}
		if len(cur) == 0 || cur[len(cur)-1] != a {
			flush()
			cur = append(cur, a)
		}
		cur = append(cur, b)
		if clipped {
			// The curve leaves the window at b.
			flush()
		}
	}
	flush()
	return lines
}

// clip clips the segment pq to the band ymin ≤ y ≤ ymax. A segment with both
// ends outside the band is dropped, even if it crosses the band. clipped
// reports whether the end was moved.
func clip(p, q vec, ymin, ymax float64) (a, b vec, clipped, ok bool) {
	in := func(v vec) bool { return ymin <= v.y && v.y <= ymax }
	pin, qin := in(p), in(q)
	switch {
	case pin && qin:
		return p, q, false, true
	case !pin && !qin:
		return vec{}, vec{}, false, false
	}
	// Exactly one end is inside, so the segment crosses one edge once.
	edge := ymax
	if !pin && p.y < ymin || !qin && q.y < ymin {
		edge = ymin
	}
	t := (edge - p.y) / (q.y - p.y)
	m := vec{p.x + t*(q.x-p.x), edge}
	if pin {
		return p, m, true, true
	}
	return m, q, false, true
}
