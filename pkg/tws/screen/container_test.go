package screen

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twsefilter/tws/pkg/tws/api"
	"github.com/twsefilter/tws/pkg/tws/catalog"
)

// stubBackend records the last request and replays a canned response.
type stubBackend struct {
	mu   sync.Mutex
	req  api.ScreenRequest
	resp *api.ScreenResponse
	err  error
}

func (s *stubBackend) Screen(_ context.Context, req api.ScreenRequest) (*api.ScreenResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.req = req
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func (s *stubBackend) lastRequest() api.ScreenRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.req
}

func ptr[T any](v T) *T { return &v }

func TestNewStartsWithOneDefaultRule(t *testing.T) {
	c := New(&stubBackend{})
	rules := c.Rules()
	require.Len(t, rules, 1)
	assert.Equal(t, DefaultRule(), rules[0])
	assert.Equal(t, LogicAnd, c.Logic())
	assert.Empty(t, c.Formulas())
	assert.Empty(t, c.Results())
	assert.Zero(t, c.MatchedCount())
	assert.False(t, c.Loading())
	assert.Empty(t, c.ErrMessage())
}

func TestRuleCountTracksAddsAndRemoves(t *testing.T) {
	c := New(&stubBackend{})
	for i := 0; i < 5; i++ {
		c.AddRule()
	}
	require.Len(t, c.Rules(), 6)
	for i := 0; i < 3; i++ {
		require.NoError(t, c.RemoveRule(0))
	}
	assert.Len(t, c.Rules(), 3)
}

func TestRemoveRuleAllowsEmptyList(t *testing.T) {
	c := New(&stubBackend{})
	require.NoError(t, c.RemoveRule(0))
	assert.Empty(t, c.Rules())

	err := c.RemoveRule(0)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestSetLogicRejectsUnknownValues(t *testing.T) {
	c := New(&stubBackend{})
	require.NoError(t, c.SetLogic(LogicOr))
	assert.Equal(t, LogicOr, c.Logic())

	err := c.SetLogic(Logic("XOR"))
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, LogicOr, c.Logic())
}

func TestUpdateRuleCategoryChangeResetsField(t *testing.T) {
	c := New(&stubBackend{})
	require.NoError(t, c.UpdateRule(0, RulePatch{Category: ptr(catalog.Fundamental)}))

	r := c.Rules()[0]
	assert.Equal(t, catalog.Fundamental, r.Category)
	assert.Equal(t, "pe_ratio", r.Field)
}

func TestUpdateRuleSameCategoryKeepsField(t *testing.T) {
	c := New(&stubBackend{})
	require.NoError(t, c.UpdateRule(0, RulePatch{Field: ptr("ma5")}))
	require.NoError(t, c.UpdateRule(0, RulePatch{Category: ptr(catalog.Indicator)}))
	assert.Equal(t, "ma5", c.Rules()[0].Field)
}

func TestUpdateRuleRejectsFieldOutsideCategory(t *testing.T) {
	c := New(&stubBackend{})
	err := c.UpdateRule(0, RulePatch{Field: ptr("pe_ratio")})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, "close", c.Rules()[0].Field)
}

func TestUpdateRuleRejectsUnknownOperator(t *testing.T) {
	c := New(&stubBackend{})
	err := c.UpdateRule(0, RulePatch{Operator: ptr("!=")})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestUpdateRuleTargetKindSwitch(t *testing.T) {
	c := New(&stubBackend{})

	// Literal target on a fresh rule.
	require.NoError(t, c.UpdateRule(0, RulePatch{TargetValue: ptr(100.0)}))
	assert.Equal(t, 100.0, c.Rules()[0].Target.Value())

	// Switching kinds resets the target to the first catalog field.
	require.NoError(t, c.UpdateRule(0, RulePatch{TargetKind: ptr(TargetField)}))
	r := c.Rules()[0]
	assert.Equal(t, TargetField, r.Target.Kind())
	assert.Equal(t, catalog.Fields[0].Key, r.Target.FieldKey())

	// A numeric patch now disagrees with the kind.
	err := c.UpdateRule(0, RulePatch{TargetValue: ptr(5.0)})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	require.NoError(t, c.UpdateRule(0, RulePatch{TargetField: ptr("ma20")}))
	assert.Equal(t, "ma20", c.Rules()[0].Target.FieldKey())

	err = c.UpdateRule(0, RulePatch{TargetField: ptr("nope")})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// Switching back lands on literal zero.
	require.NoError(t, c.UpdateRule(0, RulePatch{TargetKind: ptr(TargetValue)}))
	assert.Equal(t, 0.0, c.Rules()[0].Target.Value())
}

func TestUpdateRuleOutOfRange(t *testing.T) {
	c := New(&stubBackend{})
	assert.ErrorIs(t, c.UpdateRule(1, RulePatch{}), ErrOutOfRange)
	assert.ErrorIs(t, c.UpdateRule(-1, RulePatch{}), ErrOutOfRange)
}

func TestBuildRequestDropsIncompleteFormulas(t *testing.T) {
	c := New(&stubBackend{})
	c.AddFormula()
	c.AddFormula()
	c.AddFormula()
	require.NoError(t, c.UpdateFormula(0, FormulaPatch{Name: ptr("gap")})) // no expression
	require.NoError(t, c.UpdateFormula(1, FormulaPatch{Name: ptr("avg"), Expression: ptr("(ma5+ma10)/2")}))
	require.NoError(t, c.UpdateFormula(2, FormulaPatch{Expression: ptr("close-open")})) // no name

	req := c.BuildRequest()
	require.Len(t, req.CustomFormulas, 1)
	assert.Equal(t, "avg", req.CustomFormulas[0].Name)
	assert.Equal(t, "(ma5+ma10)/2", req.CustomFormulas[0].Formula)

	// Editing state keeps all three.
	assert.Len(t, c.Formulas(), 3)
}

func TestBuildRequestWireShape(t *testing.T) {
	c := New(&stubBackend{})
	require.NoError(t, c.SetLogic(LogicOr))
	require.NoError(t, c.UpdateRule(0, RulePatch{Field: ptr("ma5"), Operator: ptr(catalog.OpCrossUp), TargetKind: ptr(TargetField)}))
	require.NoError(t, c.UpdateRule(0, RulePatch{TargetField: ptr("ma20")}))

	req := c.BuildRequest()
	assert.Equal(t, "OR", req.Logic)
	require.Len(t, req.Rules, 1)
	w := req.Rules[0]
	assert.Equal(t, "indicator", w.Type)
	assert.Equal(t, "ma5", w.Field)
	assert.Equal(t, "CROSS_UP", w.Operator)
	assert.Equal(t, "field", w.TargetType)
	assert.Equal(t, "ma20", w.TargetValue.Field)
}

func TestExecuteSuccessReplacesResults(t *testing.T) {
	backend := &stubBackend{resp: &api.ScreenResponse{
		MatchedCount: 3,
		Data: []api.TickerResult{
			{TickerID: "2330", Name: "台積電"},
			{TickerID: "2317", Name: "鴻海"},
			{TickerID: "2454", Name: "聯發科"},
		},
		Logic: "OR",
	}}
	c := New(backend)
	require.NoError(t, c.SetLogic(LogicOr))
	c.AddRule()
	c.AddRule()

	require.NoError(t, c.Execute(context.Background()))

	assert.Len(t, c.Results(), 3)
	assert.Equal(t, 3, c.MatchedCount())
	assert.False(t, c.Loading())
	assert.Empty(t, c.ErrMessage())
	assert.Len(t, backend.lastRequest().Rules, 3)
	assert.Equal(t, "OR", backend.lastRequest().Logic)
}

func TestExecuteFailureKeepsPreviousResults(t *testing.T) {
	backend := &stubBackend{resp: &api.ScreenResponse{
		MatchedCount: 1,
		Data:         []api.TickerResult{{TickerID: "2330", Name: "台積電"}},
	}}
	c := New(backend)
	require.NoError(t, c.Execute(context.Background()))
	require.Len(t, c.Results(), 1)

	backend.err = &api.ServerError{StatusCode: 500, Detail: "bad formula"}
	err := c.Execute(context.Background())
	require.Error(t, err)

	assert.Equal(t, "bad formula", c.ErrMessage())
	assert.Len(t, c.Results(), 1)
	assert.Equal(t, 1, c.MatchedCount())
	assert.False(t, c.Loading())
}

func TestExecuteClearsStaleError(t *testing.T) {
	backend := &stubBackend{err: errors.New("connection refused")}
	c := New(backend)
	require.Error(t, c.Execute(context.Background()))
	require.NotEmpty(t, c.ErrMessage())

	backend.err = nil
	backend.resp = &api.ScreenResponse{}
	require.NoError(t, c.Execute(context.Background()))
	assert.Empty(t, c.ErrMessage())
}

func TestResetRestoresInitialState(t *testing.T) {
	backend := &stubBackend{resp: &api.ScreenResponse{
		MatchedCount: 2,
		Data:         []api.TickerResult{{TickerID: "2330", Name: "台積電"}, {TickerID: "2317", Name: "鴻海"}},
	}}
	c := New(backend)
	require.NoError(t, c.SetLogic(LogicOr))
	c.AddRule()
	c.AddFormula()
	require.NoError(t, c.UpdateFormula(0, FormulaPatch{Name: ptr("x"), Expression: ptr("close*2")}))
	require.NoError(t, c.Execute(context.Background()))

	c.Reset()

	assert.Equal(t, LogicAnd, c.Logic())
	require.Len(t, c.Rules(), 1)
	assert.Equal(t, DefaultRule(), c.Rules()[0])
	assert.Empty(t, c.Formulas())
	assert.Empty(t, c.Results())
	assert.Zero(t, c.MatchedCount())
	assert.Empty(t, c.ErrMessage())
}
