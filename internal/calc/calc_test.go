package calc

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type CalcSuite struct {
	suite.Suite
}

func TestCalcSuite(t *testing.T) {
	suite.Run(t, new(CalcSuite))
}

// Sanitize tests

func (s *CalcSuite) TestSanitizeStripsInvalidChars() {
	s.Equal("20+5", Sanitize("20 + 5 darts"))
	s.Equal("60", Sanitize("t60"))
	s.Equal("3*19", Sanitize("3 x* 19"))
	s.Equal("", Sanitize("ııı"))
	s.Equal("60", Sanitize("6ı0"))
}

func (s *CalcSuite) TestStripInvalidDropsMultiByteRunes() {
	// Runes whose low byte happens to be an ASCII digit (dotless i is
	// U+0131, low byte '1') must not survive as that digit.
	s.Equal("", StripInvalid("ııı"))
	s.Equal("", StripInvalid("ıİĲ"))
	s.Equal("", StripInvalid("²³½"))
	s.Equal("60", StripInvalid("6ı0"))
	s.Equal(0, Evaluate(Sanitize(StripInvalid("ıİĲ"))))
}

func (s *CalcSuite) TestSanitizeTrimsEdges() {
	s.Equal("20+5", Sanitize("+20+5-"))
	s.Equal("(20+5)", Sanitize("*(20+5)/"))
	s.Equal("5", Sanitize("--5++"))
}

func (s *CalcSuite) TestSanitizeLeadingZeros() {
	s.Equal("7", Sanitize("007"))
	s.Equal("0", Sanitize("0"))
	s.Equal("0+5", Sanitize("0+5"))
}

func (s *CalcSuite) TestSanitizeEmpty() {
	s.Equal("", Sanitize(""))
	s.Equal("", Sanitize("abc"))
	s.Equal("", Sanitize("+-*/"))
}

func (s *CalcSuite) TestSanitizeIdempotent() {
	inputs := []string{"20+5", "007", "x(1+2)y", "triple 20", "", "0", "60*3"}
	for _, in := range inputs {
		once := Sanitize(in)
		s.Equal(once, Sanitize(once), "sanitize should be idempotent for %q", in)
	}
}

// Evaluate tests

func (s *CalcSuite) TestEvaluateBasicArithmetic() {
	s.Equal(60, Evaluate("60"))
	s.Equal(25, Evaluate("20+5"))
	s.Equal(57, Evaluate("3*19"))
	s.Equal(15, Evaluate("20-5"))
	s.Equal(10, Evaluate("20/2"))
}

func (s *CalcSuite) TestEvaluatePrecedenceAndParens() {
	s.Equal(26, Evaluate("20+3*2"))
	s.Equal(46, Evaluate("(20+3)*2"))
	s.Equal(11, Evaluate("20-3*(4-1)"))
}

func (s *CalcSuite) TestEvaluateFloorsResult() {
	s.Equal(3, Evaluate("7/2"))
	s.Equal(0, Evaluate("1/3"))
	s.Equal(-4, Evaluate("(0-7)/2"))
}

func (s *CalcSuite) TestEvaluateUnaryMinus() {
	s.Equal(-5, Evaluate("-5"))
	s.Equal(15, Evaluate("20+(-5)"))
	s.Equal(5, Evaluate("--5"))
}

func (s *CalcSuite) TestEvaluateFailureReturnsZero() {
	s.Equal(0, Evaluate(""))
	s.Equal(0, Evaluate("20+"))
	s.Equal(0, Evaluate("(20+5"))
	s.Equal(0, Evaluate("()"))
	s.Equal(0, Evaluate("5/0"))
	s.Equal(0, Evaluate("abc"))
	s.Equal(0, Evaluate("1+*2"))
}

func (s *CalcSuite) TestEvaluateOutOfRangeReturnsZero() {
	s.Equal(0, Evaluate("99999999999999999999*9"))
	s.Equal(0, Evaluate("0-99999999999999999999*9"))
	s.Equal(0, Evaluate("99999999999999999999*99999999999999999999"))
}

func (s *CalcSuite) TestEvaluateNeverPanics() {
	inputs := []string{
		"", ")", "(", "))((", "++++", "1..2", ".",
		"99999999999999999999*99999999999999999999",
		"((((((((((1))))))))))",
	}
	for _, in := range inputs {
		s.NotPanics(func() { Evaluate(in) }, "input %q", in)
	}
}

func (s *CalcSuite) TestSumDerivableFromCalculation() {
	// The stored sum must always equal evaluate(sanitize(raw)).
	raws := []string{"t60", "20 + 5", "007", "3x*19", "", "0"}
	for _, raw := range raws {
		sanitized := Sanitize(raw)
		s.Equal(Evaluate(sanitized), Evaluate(Sanitize(sanitized)))
	}
}
