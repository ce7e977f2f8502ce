package render

import (
	"encoding/json"
	"math"
	"regexp"
	"strings"
	"testing"

	"github.com/zephyrtronium/fplot"
)

func pt(x, y float64) fplot.Point {
	return fplot.Point{X: x, Y: y, Defined: true}
}

func gap(x float64) fplot.Point {
	return fplot.Point{X: x}
}

func TestTable(t *testing.T) {
	var b strings.Builder
	pts := []fplot.Point{pt(-1, -1), gap(0), pt(0.1, 10), pt(1, 1e300)}
	if err := Table(&b, pts); err != nil {
		t.Fatal(err)
	}
	want := "-1\t-1\n0\tundefined\n0.1\t10\n1\t1e+300\n"
	if b.String() != want {
		t.Errorf("wrong table:\nwant %q\ngot  %q", want, b.String())
	}
}

func TestJSON(t *testing.T) {
	cases := []struct {
		name string
		pts  []fplot.Point
		want string
	}{
		{"nil", nil, "[]\n"},
		{"points", []fplot.Point{pt(-1, 2), gap(0), pt(1, 0.5)}, `[{"x":-1,"y":2},{"x":0,"y":null},{"x":1,"y":0.5}]` + "\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var b strings.Builder
			if err := JSON(&b, c.pts); err != nil {
				t.Fatal(err)
			}
			if b.String() != c.want {
				t.Errorf("wrong JSON:\nwant %s\ngot  %s", c.want, b.String())
			}
			var v []map[string]*float64
			if err := json.Unmarshal([]byte(b.String()), &v); err != nil {
				t.Fatalf("output doesn't decode: %v", err)
			}
			if len(v) != len(c.pts) {
				t.Fatalf("decoded %d points from %d", len(v), len(c.pts))
			}
			for i, p := range c.pts {
				if (v[i]["y"] != nil) != p.Defined {
					t.Errorf("point %d decoded y %v from %v", i, v[i]["y"], p)
				}
			}
		})
	}
}

func TestPolylines(t *testing.T) {
	cases := []struct {
		name  string
		pts   []fplot.Point
		lines [][]vec
	}{
		{"empty", nil, nil},
		{"single", []fplot.Point{pt(0, 0)}, nil},
		{"line", []fplot.Point{pt(0, 0), pt(1, 1), pt(2, 2)}, [][]vec{{{0, 0}, {1, 1}, {2, 2}}}},
		{
			"gap",
			[]fplot.Point{pt(-2, -1), pt(-1, -2), gap(0), pt(1, 2), pt(2, 1)},
			[][]vec{{{-2, -1}, {-1, -2}}, {{1, 2}, {2, 1}}},
		},
		{
			"isolated",
			[]fplot.Point{pt(-1, 0), gap(0), pt(1, 0), gap(2), pt(3, 0)},
			nil,
		},
		{
			"leaves-top",
			[]fplot.Point{pt(0, 0), pt(1, 5), pt(2, 20), pt(3, 30)},
			[][]vec{{{0, 0}, {1, 5}, {4.0 / 3, 10}}},
		},
		{
			"enters-bottom",
			[]fplot.Point{pt(0, -30), pt(1, -20), pt(2, 0), pt(3, 1)},
			[][]vec{{{1.5, -10}, {2, 0}, {3, 1}}},
		},
		{
			"asymptote",
			[]fplot.Point{pt(-2, -5), pt(-1, -100), pt(1, 100), pt(2, 5)},
			[][]vec{
				{{-2, -5}, {-2 + 5.0/95, -10}},
				{{1 + 90.0/95, 10}, {2, 5}},
			},
		},
		{
			"jump-across",
			[]fplot.Point{pt(0, -20), pt(1, 20)},
			nil,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			lines := polylines(c.pts, -10, 10)
			if len(lines) != len(c.lines) {
				t.Fatalf("wrong lines:\nwant %v\ngot  %v", c.lines, lines)
			}
			for i := range lines {
				if len(lines[i]) != len(c.lines[i]) {
					t.Errorf("wrong line %d:\nwant %v\ngot  %v", i, c.lines[i], lines[i])
					continue
				}
				for j, v := range lines[i] {
					w := c.lines[i][j]
					if math.Abs(v.x-w.x) > 1e-12 || math.Abs(v.y-w.y) > 1e-12 {
						t.Errorf("wrong vertex %d of line %d: want %v, got %v", j, i, w, v)
					}
				}
			}
		})
	}
}

func TestClip(t *testing.T) {
	cases := []struct {
		name    string
		p, q    vec
		a, b    vec
		clipped bool
		ok      bool
	}{
		{"inside", vec{0, 0}, vec{1, 1}, vec{0, 0}, vec{1, 1}, false, true},
		{"on-edge", vec{0, 10}, vec{1, -10}, vec{0, 10}, vec{1, -10}, false, true},
		{"out-top", vec{0, 0}, vec{1, 20}, vec{0, 0}, vec{0.5, 10}, true, true},
		{"out-bottom", vec{0, 0}, vec{2, -20}, vec{0, 0}, vec{1, -10}, true, true},
		{"in-top", vec{0, 20}, vec{1, 0}, vec{0.5, 10}, vec{1, 0}, false, true},
		{"in-bottom", vec{0, -20}, vec{1, 0}, vec{0.5, -10}, vec{1, 0}, false, true},
		{"both-out", vec{0, 20}, vec{1, 30}, vec{}, vec{}, false, false},
		{"across", vec{0, -20}, vec{1, 20}, vec{}, vec{}, false, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, b, clipped, ok := clip(c.p, c.q, -10, 10)
			if a != c.a || b != c.b || clipped != c.clipped || ok != c.ok {
				t.Errorf("clip(%v, %v): want %v %v %t %t, got %v %v %t %t", c.p, c.q, c.a, c.b, c.clipped, c.ok, a, b, clipped, ok)
			}
		})
	}
}

func TestSVG(t *testing.T) {
	pts := []fplot.Point{pt(-10, 10), pt(-5, 5), gap(0), pt(5, -5), pt(10, -10)}
	opt := DefaultSVGOptions()
	opt.Title = "1/x & more"
	var b strings.Builder
	if err := SVG(&b, pts, opt); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	if !strings.HasPrefix(out, "<svg ") || !strings.HasSuffix(out, "</svg>\n") {
		t.Errorf("output is not one svg element:\n%s", out)
	}
	if n := strings.Count(out, "<polyline"); n != 2 {
		t.Errorf("want 2 polylines across the gap, got %d:\n%s", n, out)
	}
	if n := strings.Count(out, "<line"); n != 2 {
		t.Errorf("want 2 axes, got %d:\n%s", n, out)
	}
	if !strings.Contains(out, "1/x &amp; more") {
		t.Errorf("title is missing or unescaped:\n%s", out)
	}
	// (-5, 5) is at (150, 150) in a 600×600 image of [-10, 10]².
	if !regexp.MustCompile(`points='0,0 150,150'`).MatchString(out) {
		t.Errorf("first polyline is misplaced:\n%s", out)
	}
}

func TestSVGInvalid(t *testing.T) {
	cases := []struct {
		name string
		mod  func(*SVGOptions)
	}{
		{"width", func(o *SVGOptions) { o.Width = 0 }},
		{"height", func(o *SVGOptions) { o.Height = -1 }},
		{"x", func(o *SVGOptions) { o.XMin = o.XMax }},
		{"y", func(o *SVGOptions) { o.YMin, o.YMax = o.YMax, o.YMin }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			opt := DefaultSVGOptions()
			c.mod(&opt)
			var b strings.Builder
			if err := SVG(&b, nil, opt); err == nil {
				t.Errorf("no error for invalid options %+v", opt)
			}
			if b.Len() != 0 {
				t.Errorf("wrote output for invalid options: %q", b.String())
			}
		})
	}
}
