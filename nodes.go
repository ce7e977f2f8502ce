package fplot

import (
	"math/big"
	"strings"
)

// node is a node in the abstract syntax tree of an expression.
type node struct {
	kind nodeKind

	// num is the value of a nodeNum.
	num *big.Rat
	// name is the constant or function name of a nodeConst or nodeCall.
	name string
	fn   function

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum   // push num
	nodeVar   // push x
	nodeConst // push the constant called name

	nodeCall // evaluate left, apply fn

	nodeNeg // evaluate left, then negate
	nodeAdd // evaluate left, add right
	nodeSub // evaluate left, sub right
	nodeMul // evaluate left, mul right
	nodeDiv // evaluate left, div by right
	nodePow // evaluate left, exp by right
)

//go:generate go run golang.org/x/tools/cmd/stringer@v0.21.0 -type=nodeKind -trimprefix=node

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

// fmt writes n with every subexpression grouped, alternating round and square
// brackets by depth.
func (n *node) fmt(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	switch n.kind {
	case nodeNum:
		b.WriteString(ratString(n.num))
	case nodeVar:
		b.WriteByte('x')
	case nodeConst:
		b.WriteString(n.name)
	case nodeCall:
		b.WriteString(n.name)
		n.left.fmt(b, !square)
	case nodeNeg:
		b.WriteByte('-')
		n.left.fmt(b, !square)
	case nodeAdd:
		n.binfmt(b, " + ", square)
	case nodeSub:
		n.binfmt(b, " - ", square)
	case nodeMul:
		n.binfmt(b, " * ", square)
	case nodeDiv:
		n.binfmt(b, " / ", square)
	case nodePow:
		n.binfmt(b, " ** ", square)
	default:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
	}
}

func (n *node) binfmt(b *strings.Builder, op string, square bool) {
	n.left.fmt(b, !square)
	b.WriteString(op)
	n.right.fmt(b, !square)
}

// ratString formats an exact literal the way it would be typed, as a
// terminating decimal.
func ratString(r *big.Rat) string {
	m := new(big.Rat).Set(r)
	ten := big.NewRat(10, 1)
	for prec := 0; prec <= 64; prec++ {
		if m.IsInt() {
			return r.FloatString(prec)
		}
		m.Mul(m, ten)
	}
	return r.RatString()
}
