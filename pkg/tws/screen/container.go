package screen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/twsefilter/tws/pkg/tws/api"
	"github.com/twsefilter/tws/pkg/tws/catalog"
)

// Logic is the combinator applied across all rules of one request.
type Logic string

const (
	LogicAnd Logic = "AND"
	LogicOr  Logic = "OR"
)

// Index and enum violations are caller-contract errors and fail fast;
// they indicate the caller referenced a position or value that does
// not exist. They are never clamped silently.
var (
	ErrOutOfRange      = errors.New("index out of range")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Backend runs a screen request. *api.Client satisfies it; tests plug
// in stubs.
type Backend interface {
	Screen(ctx context.Context, req api.ScreenRequest) (*api.ScreenResponse, error)
}

// Container holds the editable screen: rule list, combinator,
// formulas and the last result set. All mutation goes through its
// methods. Overlapping Execute calls are not coalesced; the response
// that lands last wins, and callers are expected to gate on Loading
// instead.
type Container struct {
	mu      sync.Mutex
	backend Backend

	logic        Logic
	rules        []Rule
	formulas     []Formula
	results      []api.TickerResult
	matchedCount int
	loading      bool
	errMsg       string
}

// New returns a container holding one default rule and no formulas.
func New(backend Backend) *Container {
	return &Container{
		backend: backend,
		logic:   LogicAnd,
		rules:   []Rule{DefaultRule()},
	}
}

// SetLogic replaces the combinator. Values outside the two-member
// enumeration are rejected rather than stored.
func (c *Container) SetLogic(l Logic) error {
	if l != LogicAnd && l != LogicOr {
		return fmt.Errorf("%w: logic %q", ErrInvalidArgument, l)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logic = l
	return nil
}

// AddRule appends one default rule. The container does not cap the
// rule count; oversized requests are the backend's concern.
func (c *Container) AddRule() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rules = append(c.rules, DefaultRule())
}

// UpdateRule merges patch into the rule at index, re-applying the
// category/field and target-kind consistency invariants.
func (c *Container) UpdateRule(index int, patch RulePatch) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.rules) {
		return fmt.Errorf("%w: rule %d of %d", ErrOutOfRange, index, len(c.rules))
	}
	r := c.rules[index]

	if patch.Category != nil {
		cat := *patch.Category
		if !catalog.ValidCategory(cat) {
			return fmt.Errorf("%w: category %q", ErrInvalidArgument, cat)
		}
		if cat != r.Category {
			r.Category = cat
			r.Field = catalog.FirstKey(cat)
		}
	}
	if patch.Field != nil {
		f, ok := catalog.Lookup(*patch.Field)
		if !ok || f.Category != r.Category {
			return fmt.Errorf("%w: field %q not in category %q", ErrInvalidArgument, *patch.Field, r.Category)
		}
		r.Field = f.Key
	}
	if patch.Operator != nil {
		if _, ok := catalog.LookupOperator(*patch.Operator); !ok {
			return fmt.Errorf("%w: operator %q", ErrInvalidArgument, *patch.Operator)
		}
		r.Operator = *patch.Operator
	}
	if patch.TargetKind != nil {
		switch k := *patch.TargetKind; k {
		case TargetValue, TargetField:
			if k != r.Target.Kind() {
				if k == TargetValue {
					r.Target = ValueOf(0)
				} else {
					r.Target = FieldOf(catalog.Fields[0].Key)
				}
			}
		default:
			return fmt.Errorf("%w: target kind %q", ErrInvalidArgument, k)
		}
	}
	if patch.TargetValue != nil {
		if r.Target.Kind() != TargetValue {
			return fmt.Errorf("%w: numeric target on a field-reference rule", ErrInvalidArgument)
		}
		r.Target = ValueOf(*patch.TargetValue)
	}
	if patch.TargetField != nil {
		if r.Target.Kind() != TargetField {
			return fmt.Errorf("%w: field target on a literal-value rule", ErrInvalidArgument)
		}
		if _, ok := catalog.Lookup(*patch.TargetField); !ok {
			return fmt.Errorf("%w: target field %q", ErrInvalidArgument, *patch.TargetField)
		}
		r.Target = FieldOf(*patch.TargetField)
	}

	c.rules[index] = r
	return nil
}

// RemoveRule deletes the rule at index. Removing the last rule leaves
// an empty list; whether an empty screen may run is the caller's
// call, not this container's.
func (c *Container) RemoveRule(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.rules) {
		return fmt.Errorf("%w: rule %d of %d", ErrOutOfRange, index, len(c.rules))
	}
	c.rules = append(c.rules[:index], c.rules[index+1:]...)
	return nil
}

// AddFormula appends an empty formula for the caller to fill in.
func (c *Container) AddFormula() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.formulas = append(c.formulas, Formula{})
}

// UpdateFormula merges patch into the formula at index.
func (c *Container) UpdateFormula(index int, patch FormulaPatch) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.formulas) {
		return fmt.Errorf("%w: formula %d of %d", ErrOutOfRange, index, len(c.formulas))
	}
	if patch.Name != nil {
		c.formulas[index].Name = *patch.Name
	}
	if patch.Expression != nil {
		c.formulas[index].Expression = *patch.Expression
	}
	return nil
}

// RemoveFormula deletes the formula at index.
func (c *Container) RemoveFormula(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.formulas) {
		return fmt.Errorf("%w: formula %d of %d", ErrOutOfRange, index, len(c.formulas))
	}
	c.formulas = append(c.formulas[:index], c.formulas[index+1:]...)
	return nil
}

// buildRequestLocked serializes the current state. Formulas missing a
// name or expression are dropped here, at submission time only.
func (c *Container) buildRequestLocked() api.ScreenRequest {
	req := api.ScreenRequest{
		Logic:          string(c.logic),
		Rules:          make([]api.Rule, 0, len(c.rules)),
		CustomFormulas: make([]api.Formula, 0, len(c.formulas)),
	}
	for _, r := range c.rules {
		req.Rules = append(req.Rules, r.wire())
	}
	for _, f := range c.formulas {
		if strings.TrimSpace(f.Name) == "" || strings.TrimSpace(f.Expression) == "" {
			continue
		}
		req.CustomFormulas = append(req.CustomFormulas, api.Formula{Name: f.Name, Formula: f.Expression})
	}
	return req
}

// BuildRequest returns the payload Execute would submit right now.
func (c *Container) BuildRequest() api.ScreenRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buildRequestLocked()
}

// Execute submits the current screen. On success the result set and
// matched count are replaced wholesale; on failure the error message
// is recorded and the previous results stay untouched.
func (c *Container) Execute(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.errMsg = ""
	req := c.buildRequestLocked()
	backend := c.backend
	c.mu.Unlock()

	resp, err := backend.Screen(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.errMsg = api.Message(err)
		return err
	}
	c.results = resp.Data
	c.matchedCount = resp.MatchedCount
	return nil
}

// Reset restores the initial editing state: AND, one default rule, no
// formulas, no results. Loading is deliberately left alone so an
// in-flight call still reports itself.
func (c *Container) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logic = LogicAnd
	c.rules = []Rule{DefaultRule()}
	c.formulas = nil
	c.results = nil
	c.matchedCount = 0
	c.errMsg = ""
}

func (c *Container) Logic() Logic {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.logic
}

// Rules returns a copy of the rule list in edit order.
func (c *Container) Rules() []Rule {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Formulas returns a copy of the formula list in edit order.
func (c *Container) Formulas() []Formula {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Formula, len(c.formulas))
	copy(out, c.formulas)
	return out
}

// Results returns a copy of the last successful result set.
func (c *Container) Results() []api.TickerResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]api.TickerResult, len(c.results))
	copy(out, c.results)
	return out
}

func (c *Container) MatchedCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.matchedCount
}

func (c *Container) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// ErrMessage returns the display message from the last failed
// Execute, or "" when the last call succeeded.
func (c *Container) ErrMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}
