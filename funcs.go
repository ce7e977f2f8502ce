package fplot

import (
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// function is a real function of one real variable, as applied by a call
// node.
type function interface {
	// call sets r to the function's value at x. If the function has no real
	// value at x, call returns a *DomainError and r is unspecified. call may
	// modify x.
	call(ctx *Context, x, r *num) error
}

var funcs = map[string]function{
	"sqrt": monadic{
		name:   "sqrt",
		domain: func(x *num) bool { return x.sign() >= 0 },
		exact:  ratSqrt,
		f: func(out, in *big.Float) bool {
			out.Sqrt(in)
			return true
		},
	},
	"ln": monadic{
		name:   "ln",
		domain: func(x *num) bool { return x.sign() > 0 },
		exact: func(r, x *big.Rat) bool {
			if x.Cmp(ratOne) != 0 {
				return false
			}
			r.SetInt64(0)
			return true
		},
		f: func(out, in *big.Float) bool {
			bigfloat.Log(out, in)
			return true
		},
	},
	"sin": monadic{
		name:  "sin",
		exact: atZero(0),
		f: func(out, in *big.Float) bool {
			if !reducible(in) {
				return false
			}
			var c big.Float
			c.SetPrec(out.Prec())
			sincos(out, &c, in)
			snapZero(out, in)
			return true
		},
	},
	"cos": monadic{
		name:  "cos",
		exact: atZero(1),
		f: func(out, in *big.Float) bool {
			if !reducible(in) {
				return false
			}
			var s big.Float
			s.SetPrec(out.Prec())
			sincos(&s, out, in)
			snapZero(out, in)
			return true
		},
	},
	"tan": monadic{
		name:  "tan",
		exact: atZero(0),
		f: func(out, in *big.Float) bool {
			if !reducible(in) {
				return false
			}
			var s, c big.Float
			s.SetPrec(out.Prec())
			c.SetPrec(out.Prec())
			sincos(&s, &c, in)
			if nearZero(&c, in) {
				// Pole.
				return false
			}
			if nearZero(&s, in) {
				out.SetInt64(0)
				return true
			}
			out.Quo(&s, &c)
			return true
		},
	},
}

// monadic is a function which computes exact results where it can.
type monadic struct {
	name string
	// domain reports whether x is in the function's real domain. A nil domain
	// admits every real.
	domain func(x *num) bool
	// exact sets r to the exact value at x and reports whether it could. A nil
	// exact never can.
	exact func(r, x *big.Rat) bool
	// f sets out to the value at in, to the precision of out. It reports false
	// if there is no real value at in.
	f func(out, in *big.Float) bool
}

func (m monadic) call(ctx *Context, x, r *num) error {
	if m.domain != nil && !m.domain(x) || !x.exact && x.f.IsInf() {
		return &DomainError{X: x.String(), Func: m.name}
	}
	if x.exact && m.exact != nil && m.exact(&r.r, &x.r) {
		r.exact = true
		return nil
	}
	r.exact = false
	r.f.SetPrec(ctx.prec)
	prec := ctx.prec
	if x.exact {
		// Keep every integer bit so that periodic functions reduce the
		// argument itself rather than its rounding.
		if b := x.r.Num().BitLen() - x.r.Denom().BitLen(); b > 0 {
			prec += uint(b)
		}
	}
	if !m.f(&r.f, x.float(prec)) {
		return &DomainError{X: x.String(), Func: m.name}
	}
	return nil
}

var ratOne = big.NewRat(1, 1)

// atZero returns an exact rule for a function whose value at 0 is v.
func atZero(v int64) func(r, x *big.Rat) bool {
	return func(r, x *big.Rat) bool {
		if x.Sign() != 0 {
			return false
		}
		r.SetInt64(v)
		return true
	}
}

// ratSqrt sets r to the square root of x if both its numerator and
// denominator are perfect squares.
func ratSqrt(r, x *big.Rat) bool {
	var n, d big.Int
	if !intSqrt(&n, x.Num()) || !intSqrt(&d, x.Denom()) {
		return false
	}
	r.SetFrac(&n, &d)
	return true
}

// intSqrt sets z to the square root of non-negative x if x is a perfect
// square.
func intSqrt(z, x *big.Int) bool {
	z.Sqrt(x)
	var sq big.Int
	return sq.Mul(z, z).Cmp(x) == 0
}

// maxTrigExp is the largest binary exponent of a trigonometric argument. It
// matches the largest power, so only products of huge powers exceed it.
const maxTrigExp = maxPowBits

// trigGuard is the number of bits by which the rounding error of a
// trigonometric argument may grow before it reaches the function.
const trigGuard = 8

// nearZero reports whether v, a sine or cosine of x, is zero to within the
// rounding error of x. Multiples of π/2 are never exact, so this is how
// zeros and poles are found.
func nearZero(v, x *big.Float) bool {
	if v.Sign() == 0 {
		return true
	}
	return v.MantExp(nil) < x.MantExp(nil)-int(x.Prec())+trigGuard
}

// snapZero sets v, a sine or cosine of x, to zero if it is nearZero.
func snapZero(v, x *big.Float) {
	if nearZero(v, x) {
		v.SetInt64(0)
	}
}

// reducible reports whether sincos can reduce x.
func reducible(x *big.Float) bool {
	return x.MantExp(nil) <= maxTrigExp
}

// sincos sets s and c to the sine and cosine of x, each to its own precision.
func sincos(s, c, x *big.Float) {
	prec := s.Prec()
	if c.Prec() > prec {
		prec = c.Prec()
	}
	// Reducing modulo 2π cancels the integer bits of x, so carry that many
	// more.
	wprec := prec + 32
	if e := x.MantExp(nil); e > 0 {
		wprec += uint(e)
	}
	var y, tau, k big.Float
	y.SetPrec(wprec).Set(x)
	tau.SetPrec(wprec)
	bigfloat.Pi(&tau)
	tau.Mul(&tau, big.NewFloat(2))
	k.SetPrec(wprec).Quo(&y, &tau)
	n, _ := k.Int(nil)
	k.SetInt(n)
	y.Sub(&y, k.Mul(&k, &tau))

	// Taylor series on |y| < 2π. The integer bits are gone.
	wprec = prec + 32
	y.SetPrec(wprec)
	var y2, st, ct, ss, cs, d big.Float
	for _, v := range []*big.Float{&y2, &st, &ct, &ss, &cs, &d} {
		v.SetPrec(wprec)
	}
	y2.Mul(&y, &y)
	st.Set(&y)
	ss.Set(&y)
	ct.SetInt64(1)
	cs.SetInt64(1)
	for i := int64(1); i < 1<<12; i++ {
		// ct = -ct y² / ((2i-1)(2i)); st = -st y² / ((2i)(2i+1))
		ct.Mul(&ct, &y2)
		ct.Quo(&ct, d.SetInt64((2*i-1)*(2*i)))
		ct.Neg(&ct)
		st.Mul(&st, &y2)
		st.Quo(&st, d.SetInt64((2*i)*(2*i+1)))
		st.Neg(&st)
		cs.Add(&cs, &ct)
		ss.Add(&ss, &st)
		if negligible(&ct, &cs, wprec) && negligible(&st, &ss, wprec) {
			break
		}
	}
	s.Set(&ss)
	c.Set(&cs)
}

// negligible reports whether adding term to sum can no longer change sum at
// prec bits.
func negligible(term, sum *big.Float, prec uint) bool {
	if term.Sign() == 0 {
		return true
	}
	if sum.Sign() == 0 {
		return false
	}
	return term.MantExp(nil) < sum.MantExp(nil)-int(prec)
}

// DomainError is the reason an expression has no real value at a point:
// an argument outside a function's domain, a division by zero, or a result
// too large to represent.
type DomainError struct {
	// X is the out-of-domain argument.
	X string
	// Func is a name identifying the function or operator.
	Func string
}

func (err *DomainError) Error() string {
	r := err.X + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	return r
}
