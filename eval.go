package fplot

import (
	"errors"
	"math"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// Context is a context for evaluating expressions. It is not safe to use a
// Context concurrently, but any number of contexts may evaluate the same Expr
// at once.
type Context struct {
	stack []*num
	// consts caches the constants at prec.
	consts map[string]*big.Float
	x      big.Rat
	prec   uint
	res    num
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type precopt uint

func (precopt) ctxOption() {}

// Prec sets the precision in bits of calculations that cannot be done exactly.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// DefaultPrec is the precision of a context created without Prec.
const DefaultPrec = 128

// NewContext creates a new evaluation context.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{consts: make(map[string]*big.Float), prec: DefaultPrec}
	return ctx.Clone(opts...)
}

// Clone creates a copy of a context and applies options to it.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		consts: make(map[string]*big.Float, len(ctx.consts)),
		prec:   ctx.prec,
	}
	for _, opt := range opts {
		switch opt := opt.(type) {
		case nil:
		case precopt:
			n.prec = uint(opt)
		default:
			panic("fplot: unknown option type")
		}
	}
	if n.prec == 0 {
		n.prec = DefaultPrec
	}
	// Constants are immutable once computed, so share them if the precision
	// is the same.
	if n.prec == ctx.prec {
		for k, v := range ctx.consts {
			n.consts[k] = v
		}
	}
	return &n
}

// Prec returns the precision to which inexact values are computed.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// Eval evaluates an expression at x and returns its value converted to the
// nearest float64. If the expression has no finite real value at x, the
// result is a *DomainError.
func (ctx *Context) Eval(e *Expr, x *big.Rat) (r float64, err error) {
	if len(ctx.stack) != 0 {
		panic("fplot: Eval during Eval")
	}
	defer func() {
		ctx.stack = ctx.stack[:0]
		p := recover()
		if p == nil {
			return
		}
		// big.Float panics on undefined operations involving infinities,
		// which we get from overflow.
		if nan, ok := p.(big.ErrNaN); ok {
			ctx.res.exact = false
			r, err = 0, &DomainError{X: nan.Error(), Func: "arithmetic"}
			return
		}
		panic(p)
	}()
	ctx.x.Set(x)
	if err := e.n.eval(ctx); err != nil {
		ctx.res.exact = false
		return 0, err
	}
	ctx.res.set(ctx.top())
	return ctx.res.toFloat64()
}

// Rat returns the exact value of the last successful evaluation, or nil if
// that value was inexact.
func (ctx *Context) Rat() *big.Rat {
	if !ctx.res.exact {
		return nil
	}
	return new(big.Rat).Set(&ctx.res.r)
}

// toFloat64 converts n to the nearest float64, or returns a *DomainError if
// it is too large.
func (n *num) toFloat64() (float64, error) {
	var f float64
	if n.exact {
		f, _ = n.r.Float64()
	} else {
		if n.f.IsInf() {
			return 0, &DomainError{X: n.String(), Func: "float64"}
		}
		f, _ = n.f.Float64()
	}
	if math.IsInf(f, 0) {
		return 0, &DomainError{X: n.String(), Func: "float64"}
	}
	return f, nil
}

// push ensures a settable value on the stack.
func (ctx *Context) push() *num {
	if len(ctx.stack) < cap(ctx.stack) {
		ctx.stack = ctx.stack[:len(ctx.stack)+1]
		if ctx.stack[len(ctx.stack)-1] == nil {
			ctx.stack[len(ctx.stack)-1] = new(num)
		}
	} else {
		ctx.stack = append(ctx.stack, new(num))
	}
	return ctx.stack[len(ctx.stack)-1]
}

// pop removes the top from the stack and returns it. The returned value may be
// modified by future node evaluations.
func (ctx *Context) pop() *num {
	r := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return r
}

// top is a shortcut to get the top element of the stack.
func (ctx *Context) top() *num {
	return ctx.stack[len(ctx.stack)-1]
}

// constant gets a constant at the context's precision, computing it on first
// use.
func (ctx *Context) constant(name string) *big.Float {
	if r := ctx.consts[name]; r != nil {
		return r
	}
	r := new(big.Float).SetPrec(ctx.prec)
	switch name {
	case "π":
		bigfloat.Pi(r)
	case "e":
		var one big.Float
		one.SetPrec(ctx.prec).SetInt64(1)
		bigfloat.Exp(r, &one)
	default:
		panic("fplot: unknown constant " + strconv.Quote(name))
	}
	ctx.consts[name] = r
	return r
}

// eval pushes the node's value to the context's stack.
func (n *node) eval(ctx *Context) error {
	switch n.kind {
	case nodeNum:
		ctx.push().setRat(n.num)
	case nodeVar:
		ctx.push().setRat(&ctx.x)
	case nodeConst:
		ctx.push().setFloat(ctx.constant(n.name), ctx.prec)
	case nodeCall:
		r := ctx.push()
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		x := ctx.pop()
		if err := n.fn.call(ctx, x, r); err != nil {
			return err
		}
	case nodeNeg:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		v := ctx.top()
		if v.exact {
			v.r.Neg(&v.r)
		} else {
			v.f.Neg(&v.f)
		}
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		if err := n.right.eval(ctx); err != nil {
			return err
		}
		r := ctx.pop()
		l := ctx.top()
		return ctx.arith(n.kind, l, r)
	default:
		panic("fplot: invalid AST node " + n.kind.String())
	}
	return nil
}

// arith sets l to l op r.
func (ctx *Context) arith(op nodeKind, l, r *num) error {
	if op == nodePow {
		return ctx.pow(l, r)
	}
	if op == nodeDiv && r.sign() == 0 {
		return &DomainError{X: l.String() + "/0", Func: "/"}
	}
	if l.exact && r.exact {
		switch op {
		case nodeAdd:
			l.r.Add(&l.r, &r.r)
		case nodeSub:
			l.r.Sub(&l.r, &r.r)
		case nodeMul:
			l.r.Mul(&l.r, &r.r)
		case nodeDiv:
			l.r.Quo(&l.r, &r.r)
		}
		return nil
	}
	lf, rf := l.float(ctx.prec), r.float(ctx.prec)
	l.exact = false
	switch op {
	case nodeAdd:
		lf.Add(lf, rf)
	case nodeSub:
		lf.Sub(lf, rf)
	case nodeMul:
		lf.Mul(lf, rf)
	case nodeDiv:
		lf.Quo(lf, rf)
	}
	return nil
}

// maxPowBits bounds the size of exact powers and the magnitude of inexact
// ones, as a binary exponent. Anything beyond is far outside float64 range.
const maxPowBits = 1 << 16

// pow sets x to x**y.
func (ctx *Context) pow(x, y *num) error {
	switch {
	case y.sign() == 0:
		// Including 0**0.
		x.setInt64(1)
		return nil
	case x.sign() == 0:
		if y.sign() < 0 {
			return &DomainError{X: "0**" + y.String(), Func: "**"}
		}
		x.setInt64(0)
		return nil
	case y.isInt():
		return ctx.intpow(x, y)
	case x.sign() < 0:
		// Even when the exponent is a rational with an odd denominator, the
		// principal root is not real.
		return &DomainError{X: x.String(), Func: "**"}
	}
	xf := x.float(ctx.prec)
	yf := y.float(ctx.prec)
	if xf.IsInf() || yf.IsInf() {
		return &DomainError{X: x.String() + "**" + y.String(), Func: "**"}
	}
	// Estimate log2(x**y) to avoid computing astronomically large or small
	// powers.
	if isUnit(xf) {
		x.setInt64(1)
		return nil
	}
	yy, _ := yf.Float64()
	switch est := yy * log2(xf); {
	case est > maxPowBits:
		return &DomainError{X: x.String() + "**" + y.String(), Func: "**"}
	case est < -maxPowBits:
		x.setInt64(0)
		return nil
	}
	var z big.Float
	z.SetPrec(ctx.prec)
	bigfloat.Pow(&z, xf, yf)
	x.setFloat(&z, ctx.prec)
	return nil
}

// intpow sets x to x**y for nonzero x and integer y.
func (ctx *Context) intpow(x, y *num) error {
	var n big.Int
	if y.exact {
		n.Set(y.r.Num())
	} else {
		y.f.Int(&n)
	}
	if x.exact {
		num, den := x.r.Num(), x.r.Denom()
		if x.r.IsInt() && num.CmpAbs(big.NewInt(1)) == 0 {
			// ±1
			if n.Bit(0) == 0 {
				x.r.Abs(&x.r)
			}
			return nil
		}
		bits := max(num.BitLen(), den.BitLen())
		if n.BitLen() <= 32 && int64(bits)*abs(n.Int64()) <= maxPowBits {
			var a, b big.Int
			e := new(big.Int).Abs(&n)
			a.Exp(num, e, nil)
			b.Exp(den, e, nil)
			if n.Sign() < 0 {
				a, b = b, a
			}
			x.r.SetFrac(&a, &b)
			return nil
		}
		// The exact power is too long to build, but its magnitude may still
		// be modest, as for bases near 1.
		x.float(ctx.prec)
		x.exact = false
	}
	if x.f.IsInf() {
		return &DomainError{X: x.String(), Func: "**"}
	}
	if isUnit(&x.f) {
		// ±1
		if n.Bit(0) == 0 {
			x.f.Abs(&x.f)
		}
		return nil
	}
	nf, _ := new(big.Float).SetInt(&n).Float64()
	switch est := nf * log2(&x.f); {
	case est > maxPowBits:
		return &DomainError{X: x.String() + "**" + n.String(), Func: "**"}
	case est < -maxPowBits:
		x.setInt64(0)
		return nil
	}
	neg := n.Sign() < 0
	n.Abs(&n)
	var z, b big.Float
	z.SetPrec(ctx.prec).SetInt64(1)
	b.SetPrec(ctx.prec).Set(&x.f)
	for i := n.BitLen() - 1; i >= 0; i-- {
		z.Mul(&z, &z)
		if n.Bit(i) != 0 {
			z.Mul(&z, &b)
		}
	}
	if neg {
		b.SetInt64(1)
		z.Quo(&b, &z)
	}
	x.setFloat(&z, ctx.prec)
	return nil
}

// log2 approximates the base-2 logarithm of |x| for finite nonzero x.
func log2(x *big.Float) float64 {
	var m big.Float
	e := x.MantExp(&m)
	f, _ := m.Float64()
	return float64(e) + math.Log2(math.Abs(f))
}

// isUnit reports whether |x| is exactly 1.
func isUnit(x *big.Float) bool {
	var a big.Float
	return a.Abs(x).Cmp(big.NewFloat(1)) == 0
}

func abs(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

// EvalString is a shortcut to compile an expression and evaluate it at x.
func EvalString(src string, x *big.Rat, opts ...ContextOption) (float64, error) {
	e, err := Compile(src)
	if err != nil {
		return 0, err
	}
	return NewContext(opts...).Eval(e, x)
}

// IsUndefined reports whether err means that an expression has no real value
// at a point, as opposed to being invalid.
func IsUndefined(err error) bool {
	var d *DomainError
	return errors.As(err, &d)
}
