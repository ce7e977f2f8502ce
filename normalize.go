package fplot

import "strings"

// Normalize rewrites keypad shorthand into the canonical grammar understood by
// Tokenize. A digit directly followed by x, e, or π gets an explicit *,
// superscripts ² and ³ become **2 and **3, and √ becomes sqrt. Everything else
// passes through unchanged, including characters Tokenize will reject.
//
// Normalize is idempotent.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw) + len(raw)/4)
	// last is the last byte written, so that digits produced by expanding
	// superscripts also trigger implicit multiplication.
	var last byte
	for _, r := range raw {
		switch r {
		case '²':
			b.WriteString("**2")
			last = '2'
			continue
		case '³':
			b.WriteString("**3")
			last = '3'
			continue
		case '√':
			b.WriteString("sqrt")
			last = 't'
			continue
		case 'x', 'e', 'π':
			if '0' <= last && last <= '9' {
				b.WriteByte('*')
			}
		}
		b.WriteRune(r)
		if r < 0x80 {
			last = byte(r)
		} else {
			last = 0
		}
	}
	return b.String()
}
