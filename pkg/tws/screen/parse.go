package screen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/twsefilter/tws/pkg/tws/catalog"
)

// ParseRule builds a rule from a compact expression, as passed on the
// command line:
//
//	close > 100
//	ma5 cross_up ma20
//	pe_ratio <= 15
//
// The left side must be a catalog field (the category is inferred
// from it). The right side is a field-reference when it names a
// catalog field, otherwise a numeric literal.
func ParseRule(expr string) (Rule, error) {
	field, op, target, err := splitRule(expr)
	if err != nil {
		return Rule{}, err
	}

	def, ok := catalog.Lookup(field)
	if !ok {
		return Rule{}, fmt.Errorf("unknown field %q in rule %q", field, expr)
	}
	if _, ok := catalog.LookupOperator(op); !ok {
		return Rule{}, fmt.Errorf("unknown operator %q in rule %q", op, expr)
	}

	r := Rule{Category: def.Category, Field: def.Key, Operator: op}
	if _, ok := catalog.Lookup(target); ok {
		r.Target = FieldOf(target)
		return r, nil
	}
	v, err := strconv.ParseFloat(target, 64)
	if err != nil {
		return Rule{}, fmt.Errorf("target %q in rule %q is neither a number nor a catalog field", target, expr)
	}
	r.Target = ValueOf(v)
	return r, nil
}

// symbolic operators ordered so two-character codes match first
var symbolOps = []string{catalog.OpGTE, catalog.OpLTE, catalog.OpGT, catalog.OpLT, catalog.OpEQ}

func splitRule(expr string) (field, op, target string, err error) {
	s := strings.TrimSpace(expr)
	if s == "" {
		return "", "", "", fmt.Errorf("empty rule expression")
	}

	// Word operators need whitespace around them: "ma5 cross_up ma20".
	fields := strings.Fields(s)
	if len(fields) == 3 {
		switch strings.ToUpper(fields[1]) {
		case catalog.OpCrossUp:
			return fields[0], catalog.OpCrossUp, fields[2], nil
		case catalog.OpCrossDown:
			return fields[0], catalog.OpCrossDown, fields[2], nil
		}
	}

	for _, o := range symbolOps {
		if i := strings.Index(s, o); i > 0 {
			left := strings.TrimSpace(s[:i])
			right := strings.TrimSpace(s[i+len(o):])
			if left == "" || right == "" {
				return "", "", "", fmt.Errorf("malformed rule %q", expr)
			}
			return left, o, right, nil
		}
	}
	return "", "", "", fmt.Errorf("no operator found in rule %q", expr)
}

// ParseFormula builds a formula from "name=expression", e.g.
// "avg=(ma5+ma10)/2". Validation beyond the split is the backend's
// job.
func ParseFormula(s string) (Formula, error) {
	name, expr, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(name) == "" || strings.TrimSpace(expr) == "" {
		return Formula{}, fmt.Errorf("formula %q must look like name=expression", s)
	}
	return Formula{Name: strings.TrimSpace(name), Expression: strings.TrimSpace(expr)}, nil
}
