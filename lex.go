package fplot

import (
	"math/big"
	"strconv"
	"strings"
	"unicode"
)

// Token is a lexical token of a normalized expression.
type Token struct {
	// Kind is the token's class.
	Kind TokenKind
	// Text is the source text of the token.
	Text string
	// Pos is the 0-based rune offset of the token in the tokenized string.
	Pos int
	// Num is the exact value of a TokenNum token, otherwise nil.
	Num *big.Rat
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// end returns the rune offset just past the token.
func (t Token) end() int {
	return t.Pos + len([]rune(t.Text))
}

// TokenKind is the class of a token.
type TokenKind int

const (
	tokenNone TokenKind = iota
	// TokenNum is a decimal number literal.
	TokenNum
	// TokenVar is the variable x.
	TokenVar
	// TokenConst is one of the constants e or π.
	TokenConst
	// TokenOp is one of the operators + - * / ** or ^.
	TokenOp
	// TokenFunc is one of the function names sin, cos, tan, sqrt, ln.
	TokenFunc
	// TokenLParen is (.
	TokenLParen
	// TokenRParen is ).
	TokenRParen
)

//go:generate go run golang.org/x/tools/cmd/stringer@v0.21.0 -type=TokenKind -trimprefix=Token

// Operators contains the runes which begin operator tokens. ^ is another
// spelling of **.
const Operators = "+-*/^"

// funcnames lists the names lexed as function tokens. Matching tries them in
// order, so no name may be a prefix of a later one.
var funcnames = []string{"sqrt", "sin", "cos", "tan", "ln"}

type lexer struct {
	src  []rune
	rune int
}

func lex(src string) *lexer {
	return &lexer{src: []rune(src)}
}

// Tokenize splits a normalized expression into tokens. The first rune that
// cannot start or continue a token produces a *LexError.
func Tokenize(s string) ([]Token, error) {
	l := lex(s)
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == tokenNone {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

// peek returns the rune at offset k from the current position, or -1 past the
// end of the input.
func (l *lexer) peek(k int) rune {
	if l.rune+k >= len(l.src) {
		return -1
	}
	return l.src[l.rune+k]
}

// next scans the next token from the input. At the end of the input, the
// result is a token of kind tokenNone.
func (l *lexer) next() (Token, error) {
	for unicode.IsSpace(l.peek(0)) {
		l.rune++
	}
	tok := Token{Pos: l.rune}
	r := l.peek(0)
	switch {
	case r < 0:
		return tok, nil
	case '0' <= r && r <= '9', r == '.':
		text, err := l.scanNum()
		if err != nil {
			return Token{}, err
		}
		tok.Text = text
		tok.Kind = TokenNum
		tok.Num = decimal(text)
		return tok, nil
	case r == '*' && l.peek(1) == '*':
		tok.Kind = TokenOp
		tok.Text = "**"
	case strings.ContainsRune(Operators, r):
		tok.Kind = TokenOp
		tok.Text = string(r)
	case r == '(':
		tok.Kind = TokenLParen
		tok.Text = "("
	case r == ')':
		tok.Kind = TokenRParen
		tok.Text = ")"
	case unicode.IsLetter(r):
		return l.scanName()
	default:
		return Token{}, l.error(l.rune)
	}
	l.rune += len(tok.Text)
	return tok, nil
}

// scanNum scans a run of digits with at most one decimal point.
func (l *lexer) scanNum() (string, error) {
	start := l.rune
	var dig, dot bool
	for {
		r := l.peek(0)
		if r == '.' {
			if dot {
				return "", l.error(l.rune)
			}
			dot = true
		} else if '0' <= r && r <= '9' {
			dig = true
		} else {
			break
		}
		l.rune++
	}
	if !dig {
		// A lone decimal point.
		return "", l.error(start)
	}
	return string(l.src[start:l.rune]), nil
}

// decimal converts a run of digits with at most one decimal point to its
// exact value.
func decimal(text string) *big.Rat {
	var num, den big.Int
	frac := 0
	if k := strings.IndexByte(text, '.'); k >= 0 {
		frac = len(text) - k - 1
		text = text[:k] + text[k+1:]
	}
	num.SetString(text, 10)
	den.Exp(big.NewInt(10), big.NewInt(int64(frac)), nil)
	return new(big.Rat).SetFrac(&num, &den)
}

// scanName scans a function name, the variable, or a constant.
func (l *lexer) scanName() (Token, error) {
	tok := Token{Pos: l.rune}
	for _, name := range funcnames {
		if l.hasPrefix(name) {
			tok.Kind = TokenFunc
			tok.Text = name
			l.rune += len(name)
			return tok, nil
		}
	}
	switch r := l.peek(0); r {
	case 'x':
		tok.Kind = TokenVar
	case 'e', 'π':
		tok.Kind = TokenConst
	default:
		return Token{}, l.error(l.rune)
	}
	tok.Text = string(l.src[l.rune])
	l.rune++
	return tok, nil
}

// hasPrefix reports whether the unscanned input begins with the ASCII word.
func (l *lexer) hasPrefix(word string) bool {
	if len(l.src)-l.rune < len(word) {
		return false
	}
	for i := 0; i < len(word); i++ {
		if l.src[l.rune+i] != rune(word[i]) {
			return false
		}
	}
	return true
}

func (l *lexer) error(at int) error {
	return &LexError{Col: at, Char: l.src[at]}
}

// LexError indicates a rune that cannot begin or continue any token. It
// implements InputError.
type LexError struct {
	// Col is the 0-based rune offset of Char in the tokenized string.
	Col int
	// Char is the offending rune.
	Char rune
}

func (err *LexError) Error() string {
	return errpos(err.Col, "invalid character "+strconv.QuoteRune(err.Char))
}

func (err *LexError) Pos() int {
	return err.Col
}
