package fplot

import (
	"context"
	"math/big"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// Point is one sample of an expression. If Defined is false, the expression
// has no finite real value at X, and Y is 0.
type Point struct {
	X       float64
	Y       float64
	Defined bool
}

func (p Point) String() string {
	x := strconv.FormatFloat(p.X, 'g', -1, 64)
	if !p.Defined {
		return "(" + x + ", undefined)"
	}
	return "(" + x + ", " + strconv.FormatFloat(p.Y, 'g', -1, 64) + ")"
}

// MarshalJSON encodes p as {"x": X, "y": Y}, with a null y if p is undefined.
func (p Point) MarshalJSON() ([]byte, error) {
	b := make([]byte, 0, 48)
	b = append(b, `{"x":`...)
	b = strconv.AppendFloat(b, p.X, 'g', -1, 64)
	b = append(b, `,"y":`...)
	if p.Defined {
		b = strconv.AppendFloat(b, p.Y, 'g', -1, 64)
	} else {
		b = append(b, "null"...)
	}
	return append(b, '}'), nil
}

// Sample evaluates e at every point of d, in increasing order of x. Points
// where e has no finite real value are undefined; they never stop sampling.
// The only error is an invalid domain.
func Sample(e *Expr, d Domain, opts ...ContextOption) ([]Point, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	pts := make([]Point, d.Len())
	NewContext(opts...).sample(e, d, pts, 0, nil)
	return pts, nil
}

// SampleParallel is like Sample but divides the grid among up to workers
// goroutines. If workers is not positive, it uses GOMAXPROCS. Cancelling ctx
// abandons the remaining points and returns ctx's error.
func SampleParallel(ctx context.Context, e *Expr, d Domain, workers int, opts ...ContextOption) ([]Point, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	pts := make([]Point, d.Len())
	// Several chunks per worker, at least 16 points each.
	chunk := len(pts) / (4 * workers)
	if chunk < 16 {
		chunk = 16
	}
	base := NewContext(opts...)
	// Compute the constants once so that every clone shares them.
	base.constant("π")
	base.constant("e")
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for lo := 0; lo < len(pts); lo += chunk {
		hi := min(lo+chunk, len(pts))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// Each chunk writes only its own slots of pts, so the result is
			// in order without merging.
			if !base.Clone().sample(e, d, pts[lo:hi], lo, gctx.Done()) {
				return gctx.Err()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pts, nil
}

// SampleString is a shortcut to compile a raw expression and sample it.
func SampleString(raw string, d Domain, opts ...ContextOption) ([]Point, error) {
	e, err := Compile(raw)
	if err != nil {
		return nil, err
	}
	return Sample(e, d, opts...)
}

// sample fills pts with the samples of e at the grid points starting at
// index first. It stops early and returns false once done is closed.
func (ctx *Context) sample(e *Expr, d Domain, pts []Point, first int, done <-chan struct{}) bool {
	var x big.Rat
	for i := range pts {
		select {
		case <-done:
			return false
		default:
		}
		d.at(&x, first+i)
		pts[i] = ctx.point(e, &x)
	}
	return true
}

// point evaluates one sample.
func (ctx *Context) point(e *Expr, x *big.Rat) Point {
	p := Point{}
	p.X, _ = x.Float64()
	y, err := ctx.Eval(e, x)
	if err != nil {
		// Eval only fails with DomainError.
		return p
	}
	p.Y, p.Defined = y, true
	return p
}
