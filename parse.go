package fplot

import (
	"strings"
)

// Expr = num | 'x' | const | Call | Neg | Plus | Add | Sub | Mul | Div | Pow | '(' Expr ')'
// Call = funcname '(' Expr ')'
// Neg = '-' Expr
// Plus = '+' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr
// Div = Expr '/' Expr
// Pow = Expr '**' Expr | Expr '^' Expr

// Expr is a parsed expression of x. An Expr is immutable, so it is safe to
// evaluate concurrently with separate contexts.
type Expr struct {
	// n is the root node of the expression.
	n *node
}

// Compile normalizes, tokenizes, and parses a raw expression. The positions
// in any returned InputError refer to the normalized expression.
func Compile(raw string) (*Expr, error) {
	toks, err := Tokenize(Normalize(raw))
	if err != nil {
		return nil, err
	}
	return Parse(toks)
}

// parser is a cursor over a token sequence.
type parser struct {
	toks []Token
	k    int
	// end is the position just past the last token.
	end int
}

// peek returns the next token without consuming it. The second result is
// false at the end of input.
func (p *parser) peek() (Token, bool) {
	if p.k >= len(p.toks) {
		return Token{}, false
	}
	return p.toks[p.k], true
}

// next consumes and returns the next token.
func (p *parser) next() (Token, bool) {
	tok, ok := p.peek()
	if ok {
		p.k++
	}
	return tok, ok
}

// Parse parses a token sequence into an expression.
func Parse(tokens []Token) (*Expr, error) {
	p := parser{toks: tokens}
	if len(tokens) > 0 {
		p.end = tokens[len(tokens)-1].end()
	}
	n, err := parseterm(&p, exprprec)
	if err != nil {
		return nil, err
	}
	// parseterm stops only at the end of input or a close parenthesis, and
	// at the top level there is no open one for it to match.
	if tok, ok := p.peek(); ok {
		return nil, itShouldNotHaveEndedThisWay(tok)
	}
	return &Expr{n: n}, nil
}

// parseterm parses a subexpression containing only operators more binding
// than until. It stops before the first token it does not consume, which is
// always a lower-precedence operator, a close parenthesis, or the end of the
// input.
func parseterm(p *parser, until operator) (*node, error) {
	n, err := parselhs(p, until)
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.peek()
		if !ok {
			return n, nil
		}
		switch tok.Kind {
		case TokenOp:
			prec := binop(tok.Text)
			if !prec.moreBinding(until) {
				return n, nil
			}
			p.next()
			rhs, err := parseterm(p, prec)
			if err != nil {
				return nil, err
			}
			n = &node{kind: prec.op, left: n, right: rhs}
		case TokenRParen:
			return n, nil
		default:
			// An operand following a complete operand, e.g. "x x" or
			// "2 sin(x)". There is no multiplication by juxtaposition.
			return nil, unexpected(tok)
		}
	}
}

// parselhs parses the first operand of a term, including any unary operators
// applied to it.
func parselhs(p *parser, until operator) (*node, error) {
	tok, ok := p.next()
	if !ok {
		return nil, &ParseError{Kind: UnexpectedEnd, Col: p.end}
	}
	switch tok.Kind {
	case TokenNum:
		return &node{kind: nodeNum, num: tok.Num}, nil
	case TokenVar:
		return &node{kind: nodeVar}, nil
	case TokenConst:
		return &node{kind: nodeConst, name: tok.Text}, nil
	case TokenFunc:
		return parsecall(p, tok)
	case TokenLParen:
		rhs, err := parseterm(p, exprprec)
		if err != nil {
			return nil, err
		}
		if err := closeparen(p, tok); err != nil {
			return nil, err
		}
		return rhs, nil
	case TokenOp:
		prec := unop(tok.Text)
		if prec.op == nodeNone {
			return nil, unexpected(tok)
		}
		if !prec.moreBinding(until) {
			// x**-y -> x**(-y)
			// Just use the new operator's precedence to simplify.
			prec.prec, prec.right = until.prec, until.right
		}
		rhs, err := parseterm(p, prec)
		if err != nil {
			return nil, err
		}
		if prec.op == nodeAdd {
			// Unary plus is a no-op.
			return rhs, nil
		}
		return &node{kind: prec.op, left: rhs}, nil
	default:
		// A close parenthesis where an operand belongs.
		return nil, unexpected(tok)
	}
}

// parsecall parses the parenthesized argument of a function call. name is the
// function name token, already consumed.
func parsecall(p *parser, name Token) (*node, error) {
	open, ok := p.next()
	if !ok {
		return nil, &ParseError{Kind: UnexpectedEnd, Col: p.end}
	}
	if open.Kind != TokenLParen {
		return nil, unexpected(open)
	}
	if tok, ok := p.peek(); ok && tok.Kind == TokenRParen {
		return nil, &ParseError{Kind: EmptyFunctionArg, Col: open.Pos, Text: name.Text}
	}
	arg, err := parseterm(p, exprprec)
	if err != nil {
		return nil, err
	}
	if err := closeparen(p, open); err != nil {
		return nil, err
	}
	fn := funcs[name.Text]
	if fn == nil {
		panic("fplot: lexed unknown function " + name.Text)
	}
	return &node{kind: nodeCall, name: name.Text, fn: fn, left: arg}, nil
}

// closeparen consumes the close parenthesis matching open.
func closeparen(p *parser, open Token) error {
	end, ok := p.next()
	if !ok {
		return &ParseError{Kind: UnbalancedParens, Col: open.Pos, Text: open.Text}
	}
	if end.Kind != TokenRParen {
		panic("fplot: parseterm ended on " + end.String())
	}
	return nil
}

// unexpected returns an error for a token that cannot appear where it does.
func unexpected(tok Token) error {
	return &ParseError{Kind: UnexpectedToken, Col: tok.Pos, Text: tok.Text}
}

// itShouldNotHaveEndedThisWay returns an error appropriate for a token left
// over after a complete expression.
func itShouldNotHaveEndedThisWay(tok Token) error {
	if tok.Kind == TokenRParen {
		return &ParseError{Kind: UnbalancedParens, Col: tok.Pos, Text: tok.Text}
	}
	return unexpected(tok)
}

// String creates a string representation of the parsed expression, with
// alternating round and square brackets grouping each term.
func (e *Expr) String() string {
	var b strings.Builder
	e.n.fmt(&b, false)
	return b.String()
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, nodeAdd}
	case "-":
		return operator{1, false, nodeSub}
	case "*":
		return operator{5, false, nodeMul}
	case "/":
		return operator{5, false, nodeDiv}
	case "**", "^":
		return operator{15, true, nodePow}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result has an op of nodeNone. Unary plus uses nodeAdd as
// a marker and produces no node.
func unop(text string) operator {
	switch text {
	case "+":
		return operator{10, true, nodeAdd}
	case "-":
		return operator{10, true, nodeNeg}
	default:
		return operator{}
	}
}

var (
	// exprprec is the precedence required to parse an entire subexpression.
	exprprec = operator{-128, true, nodeNone}
)
