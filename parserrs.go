package fplot

import "strconv"

// ParseErrorKind classifies a ParseError.
type ParseErrorKind int

const (
	// UnexpectedToken is a token that cannot appear where it does, e.g. a
	// binary operator where an operand is needed or a second operand with no
	// operator between.
	UnexpectedToken ParseErrorKind = iota + 1 // unexpected token
	// UnbalancedParens is an open parenthesis that is never closed or a close
	// parenthesis with no open one.
	UnbalancedParens // unbalanced parentheses
	// UnexpectedEnd is the end of input where an operand is needed.
	UnexpectedEnd // unexpected end of expression
	// EmptyFunctionArg is a function call with nothing between the
	// parentheses.
	EmptyFunctionArg // empty function argument
)

//go:generate go run golang.org/x/tools/cmd/stringer@v0.21.0 -type=ParseErrorKind -linecomment

// ParseError is an error indicating a token sequence that is not a valid
// expression. It implements InputError.
type ParseError struct {
	// Kind is the kind of problem.
	Kind ParseErrorKind
	// Col is the 0-based rune offset of the offending token, or the length of
	// the input if the problem is that it ended.
	Col int
	// Text is the offending token's text, or empty at the end of input.
	Text string
}

func (err *ParseError) Error() string {
	switch {
	case err.Kind == UnbalancedParens && err.Text == "(":
		return errpos(err.Col, "open parenthesis with no close parenthesis")
	case err.Kind == UnbalancedParens:
		return errpos(err.Col, "close parenthesis with no open parenthesis")
	case err.Text == "":
		return errpos(err.Col, err.Kind.String())
	default:
		return errpos(err.Col, err.Kind.String()+" "+strconv.Quote(err.Text))
	}
}

func (err *ParseError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the 0-based rune offset in the normalized expression of the
	// token or character that caused the error.
	Pos() int
}

var (
	_ InputError = (*ParseError)(nil)
	_ InputError = (*LexError)(nil)
)
