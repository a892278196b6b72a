package extract

import "regexp"

// legacyExpressionRe splits "resolution=<token>&(<selector>)". The first group is
// greedy, so the split happens at the last "&(" in the expression.
var legacyExpressionRe = regexp.MustCompile(`=(.+)&(\(.+)`)

// LegacyExpression is the parsed form of a tile's free-text metric expression.
type LegacyExpression struct {
	Resolution string
	// Selector keeps its enclosing parentheses; it is sent to the metrics API verbatim.
	Selector string
}

// Body returns the selector without one enclosing pair of parentheses.
func (l LegacyExpression) Body() string {
	s := l.Selector
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return s
	}

	depth := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(s)-1 {
				// the opening paren closes before the end: not a single wrapper
				return s
			}
		}
	}
	return s[1 : len(s)-1]
}

// ParseExpression extracts the resolution token and selector from a legacy
// metric expression. ok is false when the expression does not have the
// expected shape; callers treat that as a tile without metrics.
func ParseExpression(expr string) (LegacyExpression, bool) {
	m := legacyExpressionRe.FindStringSubmatch(expr)
	if m == nil {
		return LegacyExpression{}, false
	}
	return LegacyExpression{
		Resolution: m[1],
		Selector:   m[2],
	}, true
}
