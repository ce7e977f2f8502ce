package fplot_test

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"testing"

	"github.com/zephyrtronium/fplot"
)

func TestDefaultDomain(t *testing.T) {
	d := fplot.DefaultDomain()
	if err := d.Validate(); err != nil {
		t.Fatalf("default domain is invalid: %v", err)
	}
	if n := d.Len(); n != 201 {
		t.Errorf("default domain has %d points, want 201", n)
	}
	if x := d.At(0); x.Cmp(big.NewRat(-10, 1)) != 0 {
		t.Errorf("first point is %v, want -10", x)
	}
	if x := d.At(100); x.Sign() != 0 {
		t.Errorf("middle point is %v, want 0", x)
	}
	if x := d.At(200); x.Cmp(big.NewRat(10, 1)) != 0 {
		t.Errorf("last point is %v, want 10", x)
	}
	if x := d.At(37); x.Cmp(big.NewRat(-63, 10)) != 0 {
		t.Errorf("point 37 is %v, want -6.3", x)
	}
	if s := d.String(); s != "[-10, 10] step 0.1" {
		t.Errorf("wrong string %q", s)
	}
}

func TestNewDomain(t *testing.T) {
	cases := []struct {
		name           string
		min, max, step string
		n              int
		ok             bool
	}{
		{"unit", "0", "1", "1", 2, true},
		{"default", "-10", "10", "0.1", 201, true},
		{"fraction", "-1", "1", "1/3", 7, true},
		{"quarters", "0", "1", "0.25", 5, true},
		{"empty", "1", "1", "1", 0, false},
		{"reversed", "1", "0", "1", 0, false},
		{"zero-step", "0", "1", "0", 0, false},
		{"neg-step", "0", "1", "-1", 0, false},
		{"uneven", "0", "1", "0.3", 0, false},
		{"bad-min", "a", "1", "1", 0, false},
		{"bad-step", "0", "1", "", 0, false},
		{"huge", "0", "1", "1/10000000", 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d, err := fplot.NewDomain(c.min, c.max, c.step)
			if !c.ok {
				var derr *fplot.DomainSpecError
				if !errors.As(err, &derr) {
					t.Errorf("%s..%s step %s gave %#v, not *DomainSpecError", c.min, c.max, c.step, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("%s..%s step %s: %v", c.min, c.max, c.step, err)
			}
			if n := d.Len(); n != c.n {
				t.Errorf("%s..%s step %s has %d points, want %d", c.min, c.max, c.step, n, c.n)
			}
		})
	}
}

func TestSample(t *testing.T) {
	pts, err := fplot.SampleString("2x+3", fplot.DefaultDomain())
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != 201 {
		t.Fatalf("got %d points, want 201", len(pts))
	}
	for i, p := range pts {
		if i > 0 && p.X <= pts[i-1].X {
			t.Errorf("x not increasing at %d: %v after %v", i, p, pts[i-1])
		}
		if !p.Defined {
			t.Errorf("undefined point %v", p)
		}
	}
	if p := pts[0]; p.X != -10 || p.Y != -17 {
		t.Errorf("first point is %v, want (-10, -17)", p)
	}
	if p := pts[100]; p.X != 0 || p.Y != 3 {
		t.Errorf("middle point is %v, want (0, 3)", p)
	}
	if p := pts[200]; p.X != 10 || p.Y != 23 {
		t.Errorf("last point is %v, want (10, 23)", p)
	}
	// Grid points are exact, so they round like the decimal literals.
	if p := pts[137]; p.X != 3.7 || p.Y != 10.4 {
		t.Errorf("point 137 is %v, want (3.7, 10.4)", p)
	}
}

func TestSampleUndefined(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		undef func(i int) bool
	}{
		{"reciprocal", "1/x", func(i int) bool { return i == 100 }},
		{"sqrt", "√(x)", func(i int) bool { return i < 100 }},
		{"ln", "ln(x)", func(i int) bool { return i <= 100 }},
		{"none", "x²", func(int) bool { return false }},
		{"all", "sqrt(-1-x**2)", func(int) bool { return true }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			pts, err := fplot.SampleString(c.src, fplot.DefaultDomain())
			if err != nil {
				t.Fatal(err)
			}
			if len(pts) != 201 {
				t.Fatalf("got %d points, want 201", len(pts))
			}
			for i, p := range pts {
				if p.Defined == c.undef(i) {
					t.Errorf("%q at point %d: got %v", c.src, i, p)
				}
				if !p.Defined && p.Y != 0 {
					t.Errorf("%q at point %d: undefined with y %g", c.src, i, p.Y)
				}
			}
		})
	}
}

func TestSampleParallel(t *testing.T) {
	srcs := []string{"2x+3", "1/x", "sin(x)*cos(x)", "x**0.5", "tan(x)", "e**x"}
	d, err := fplot.NewDomain("-20", "20", "1/16")
	if err != nil {
		t.Fatal(err)
	}
	for _, src := range srcs {
		t.Run(src, func(t *testing.T) {
			e := mustCompile(t, src)
			want, err := fplot.Sample(e, d, fplot.Prec(64))
			if err != nil {
				t.Fatal(err)
			}
			for _, workers := range []int{0, 1, 3, 16} {
				got, err := fplot.SampleParallel(context.Background(), e, d, workers, fplot.Prec(64))
				if err != nil {
					t.Fatalf("%d workers: %v", workers, err)
				}
				if len(got) != len(want) {
					t.Fatalf("%d workers: got %d points, want %d", workers, len(got), len(want))
				}
				for i := range want {
					if got[i] != want[i] {
						t.Errorf("%d workers: point %d is %v, want %v", workers, i, got[i], want[i])
					}
				}
			}
		})
	}
}

func TestSampleParallelCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	pts, err := fplot.SampleParallel(ctx, mustCompile(t, "x"), fplot.DefaultDomain(), 2)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("canceled sampling gave %d points and error %v", len(pts), err)
	}
}

func TestSampleBadDomain(t *testing.T) {
	d := fplot.Domain{Min: big.NewRat(1, 1), Max: big.NewRat(0, 1), Step: big.NewRat(1, 1)}
	if _, err := fplot.Sample(mustCompile(t, "x"), d); err == nil {
		t.Error("sampled a reversed domain")
	}
	if _, err := fplot.SampleParallel(context.Background(), mustCompile(t, "x"), fplot.Domain{}, 1); err == nil {
		t.Error("sampled an empty domain")
	}
}

func TestPointJSON(t *testing.T) {
	cases := []struct {
		p    fplot.Point
		want string
	}{
		{fplot.Point{X: 1, Y: 2, Defined: true}, `{"x":1,"y":2}`},
		{fplot.Point{X: -0.1, Y: 0, Defined: true}, `{"x":-0.1,"y":0}`},
		{fplot.Point{X: 0}, `{"x":0,"y":null}`},
	}
	for _, c := range cases {
		b, err := json.Marshal(c.p)
		if err != nil {
			t.Errorf("marshaling %v: %v", c.p, err)
			continue
		}
		if string(b) != c.want {
			t.Errorf("wrong JSON for %v: want %s, got %s", c.p, c.want, b)
		}
	}
}

func BenchmarkSample(b *testing.B) {
	e := mustCompile(b, "sin(x)*x²-ln(x)")
	d := fplot.DefaultDomain()
	b.Run("serial", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			fplot.Sample(e, d, fplot.Prec(64))
		}
	})
	b.Run("parallel", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			fplot.SampleParallel(context.Background(), e, d, 0, fplot.Prec(64))
		}
	})
}
