package screen

import (
	"fmt"

	"github.com/twsefilter/tws/pkg/tws/api"
	"github.com/twsefilter/tws/pkg/tws/catalog"
)

// TargetKind discriminates the two target shapes on a rule.
type TargetKind string

const (
	// TargetValue compares the field against a numeric literal.
	TargetValue TargetKind = "value"
	// TargetField compares the field against another catalog field.
	TargetField TargetKind = "field"
)

// Target is the right-hand side of a rule. The kind and the stored
// shape always agree: a value target carries a number, a field target
// carries a catalog field key.
type Target struct {
	kind  TargetKind
	value float64
	field string
}

// ValueOf makes a literal numeric target.
func ValueOf(v float64) Target {
	return Target{kind: TargetValue, value: v}
}

// FieldOf makes a field-reference target.
func FieldOf(key string) Target {
	return Target{kind: TargetField, field: key}
}

func (t Target) Kind() TargetKind { return t.kind }

// Value returns the numeric literal; zero for field targets.
func (t Target) Value() float64 { return t.value }

// FieldKey returns the referenced field key; "" for value targets.
func (t Target) FieldKey() string { return t.field }

func (t Target) String() string {
	if t.kind == TargetField {
		return t.field
	}
	return fmt.Sprintf("%g", t.value)
}

// Rule is one screening condition.
type Rule struct {
	Category catalog.Category
	Field    string
	Operator string
	Target   Target
}

// DefaultRule is the rule a fresh container starts with and AddRule
// appends: first indicator field, greater-than, literal zero.
func DefaultRule() Rule {
	return Rule{
		Category: catalog.Indicator,
		Field:    catalog.FirstKey(catalog.Indicator),
		Operator: catalog.OpGT,
		Target:   ValueOf(0),
	}
}

// wire converts the rule to its request payload form.
func (r Rule) wire() api.Rule {
	w := api.Rule{
		Type:       string(r.Category),
		Field:      r.Field,
		Operator:   r.Operator,
		TargetType: string(r.Target.Kind()),
	}
	if r.Target.Kind() == TargetField {
		w.TargetValue = api.TargetValue{Field: r.Target.FieldKey()}
	} else {
		w.TargetValue = api.TargetValue{Value: r.Target.Value()}
	}
	return w
}

// Formula is a named expression evaluated server side. Entries with
// an empty name or expression are kept while editing and dropped when
// a request is built.
type Formula struct {
	Name       string
	Expression string
}

// RulePatch is a partial rule update. Nil fields are left untouched.
type RulePatch struct {
	Category    *catalog.Category
	Field       *string
	Operator    *string
	TargetKind  *TargetKind
	TargetValue *float64
	TargetField *string
}

// FormulaPatch is a partial formula update.
type FormulaPatch struct {
	Name       *string
	Expression *string
}
