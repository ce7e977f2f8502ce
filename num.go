package fplot

import (
	"math/big"
)

// num is a real number that stays an exact rational for as long as the
// operations producing it allow. When exact is false, the value is f.
type num struct {
	exact bool
	r     big.Rat
	f     big.Float
}

// setRat sets n to the exact value x.
func (n *num) setRat(x *big.Rat) *num {
	n.exact = true
	n.r.Set(x)
	return n
}

// setInt64 sets n to the exact value x.
func (n *num) setInt64(x int64) *num {
	n.exact = true
	n.r.SetInt64(x)
	return n
}

// setFloat sets n to the inexact value x, rounded to prec.
func (n *num) setFloat(x *big.Float, prec uint) *num {
	n.exact = false
	n.f.SetPrec(prec).Set(x)
	return n
}

// set sets n to the value of x, keeping exactness.
func (n *num) set(x *num) *num {
	if x.exact {
		return n.setRat(&x.r)
	}
	return n.setFloat(&x.f, x.f.Prec())
}

// float returns n as a float with at least prec bits. If n is exact, this
// overwrites n.f, which is otherwise unused.
func (n *num) float(prec uint) *big.Float {
	if n.exact {
		n.f.SetPrec(prec).SetRat(&n.r)
	}
	return &n.f
}

func (n *num) sign() int {
	if n.exact {
		return n.r.Sign()
	}
	return n.f.Sign()
}

func (n *num) isInt() bool {
	if n.exact {
		return n.r.IsInt()
	}
	return n.f.IsInt()
}

// String formats n for error messages. Long exact values are rounded.
func (n *num) String() string {
	if !n.exact {
		return n.f.Text('g', 10)
	}
	if n.r.Num().BitLen()+n.r.Denom().BitLen() <= 128 {
		return n.r.RatString()
	}
	var f big.Float
	return f.SetPrec(64).SetRat(&n.r).Text('g', 10)
}
