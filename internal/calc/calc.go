// Package calc cleans free-text round input and evaluates it to a score.
//
// The evaluator is a deliberately tiny recursive-descent parser that only
// understands numeric literals and + - * / ( ). Input from the scoreboard
// must never reach anything capable of executing code, so no expression
// library is used here.
package calc

import (
	"math"
	"strconv"
	"strings"
)

// StripInvalid removes every character that is not a digit or one of the
// operators + - * / ( ). Unlike Sanitize it keeps partial expressions
// intact, which is what an input cell needs while the user is typing.
func StripInvalid(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		// Compare the rune itself: a multi-byte rune must never pass
		// the digit check via its low byte.
		if (r >= '0' && r <= '9') || strings.ContainsRune("+-*/()", r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Sanitize strips everything except digits and the operators + - * / ( ),
// trims leading characters that are not digits or '(', trims trailing
// characters that are not digits or ')', and collapses a run of leading
// zeros. A lone "0" is kept as-is. Sanitize is idempotent.
func Sanitize(raw string) string {
	s := StripInvalid(raw)

	// Trim to a plausible expression boundary.
	start := 0
	for start < len(s) && !isDigit(s[start]) && s[start] != '(' {
		start++
	}
	s = s[start:]

	end := len(s)
	for end > 0 && !isDigit(s[end-1]) && s[end-1] != ')' {
		end--
	}
	s = s[:end]

	// Collapse leading zeros: "007" becomes "7", "0" stays "0".
	for len(s) > 1 && s[0] == '0' && isDigit(s[1]) {
		s = s[1:]
	}

	return s
}

// Evaluate parses expr as an arithmetic expression over + - * / ( ) and
// numeric literals, and returns the floored result. Any lex, parse or
// evaluation failure yields 0; Evaluate never panics.
func Evaluate(expr string) int {
	p := &parser{input: expr}
	v, ok := p.parse()
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	f := math.Floor(v)
	// Results outside the int range are failures, not garbage values.
	if f < math.MinInt || f >= math.MaxInt {
		return 0
	}
	return int(f)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// parser is a recursive-descent parser for the grammar:
//
//	expr   = term   { ("+" | "-") term }
//	term   = factor { ("*" | "/") factor }
//	factor = number | "(" expr ")" | ("+" | "-") factor
type parser struct {
	input string
	pos   int
}

func (p *parser) parse() (float64, bool) {
	if strings.TrimSpace(p.input) == "" {
		return 0, false
	}
	v, ok := p.expr()
	if !ok || p.pos != len(p.input) {
		return 0, false
	}
	return v, true
}

func (p *parser) peek() (byte, bool) {
	if p.pos >= len(p.input) {
		return 0, false
	}
	return p.input[p.pos], true
}

func (p *parser) expr() (float64, bool) {
	left, ok := p.term()
	if !ok {
		return 0, false
	}
	for {
		c, ok := p.peek()
		if !ok || (c != '+' && c != '-') {
			return left, true
		}
		p.pos++
		right, ok := p.term()
		if !ok {
			return 0, false
		}
		if c == '+' {
			left += right
		} else {
			left -= right
		}
	}
}

func (p *parser) term() (float64, bool) {
	left, ok := p.factor()
	if !ok {
		return 0, false
	}
	for {
		c, ok := p.peek()
		if !ok || (c != '*' && c != '/') {
			return left, true
		}
		p.pos++
		right, ok := p.factor()
		if !ok {
			return 0, false
		}
		if c == '*' {
			left *= right
		} else {
			if right == 0 {
				return 0, false
			}
			left /= right
		}
	}
}

func (p *parser) factor() (float64, bool) {
	c, ok := p.peek()
	if !ok {
		return 0, false
	}

	switch {
	case c == '+':
		p.pos++
		return p.factor()
	case c == '-':
		p.pos++
		v, ok := p.factor()
		return -v, ok
	case c == '(':
		p.pos++
		v, ok := p.expr()
		if !ok {
			return 0, false
		}
		if c, ok := p.peek(); !ok || c != ')' {
			return 0, false
		}
		p.pos++
		return v, true
	default:
		return p.number()
	}
}

func (p *parser) number() (float64, bool) {
	start := p.pos
	for {
		c, ok := p.peek()
		if !ok || !isDigit(c) {
			break
		}
		p.pos++
	}
	// Optional decimal part.
	if c, ok := p.peek(); ok && c == '.' {
		p.pos++
		for {
			c, ok := p.peek()
			if !ok || !isDigit(c) {
				break
			}
			p.pos++
		}
	}

	lit := p.input[start:p.pos]
	if lit == "" || lit == "." {
		return 0, false
	}

	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
