package screen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twsefilter/tws/pkg/tws/catalog"
)

func TestParseRule(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want Rule
	}{
		{
			name: "literal comparison",
			expr: "close > 100",
			want: Rule{Category: catalog.Indicator, Field: "close", Operator: ">", Target: ValueOf(100)},
		},
		{
			name: "no spaces around operator",
			expr: "volume>=5000",
			want: Rule{Category: catalog.Indicator, Field: "volume", Operator: ">=", Target: ValueOf(5000)},
		},
		{
			name: "two-character operator wins over one",
			expr: "pe_ratio <= 15",
			want: Rule{Category: catalog.Fundamental, Field: "pe_ratio", Operator: "<=", Target: ValueOf(15)},
		},
		{
			name: "field reference target",
			expr: "close > ma20",
			want: Rule{Category: catalog.Indicator, Field: "close", Operator: ">", Target: FieldOf("ma20")},
		},
		{
			name: "word operator lower case",
			expr: "ma5 cross_up ma20",
			want: Rule{Category: catalog.Indicator, Field: "ma5", Operator: "CROSS_UP", Target: FieldOf("ma20")},
		},
		{
			name: "word operator upper case",
			expr: "ma5 CROSS_DOWN ma60",
			want: Rule{Category: catalog.Indicator, Field: "ma5", Operator: "CROSS_DOWN", Target: FieldOf("ma60")},
		},
		{
			name: "chip field with negative literal",
			expr: "foreign_buy < -1000",
			want: Rule{Category: catalog.Chip, Field: "foreign_buy", Operator: "<", Target: ValueOf(-1000)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRule(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRuleErrors(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{name: "empty", expr: "   "},
		{name: "no operator", expr: "close 100"},
		{name: "unknown field", expr: "dividend > 2"},
		{name: "target neither number nor field", expr: "close > cheap"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRule(tt.expr)
			assert.Error(t, err)
		})
	}
}

func TestParseFormula(t *testing.T) {
	f, err := ParseFormula("avg=(ma5+ma10)/2")
	require.NoError(t, err)
	assert.Equal(t, Formula{Name: "avg", Expression: "(ma5+ma10)/2"}, f)

	f, err = ParseFormula(" gap = close-open ")
	require.NoError(t, err)
	assert.Equal(t, Formula{Name: "gap", Expression: "close-open"}, f)

	_, err = ParseFormula("no-equals-sign")
	assert.Error(t, err)
	_, err = ParseFormula("=close")
	assert.Error(t, err)
	_, err = ParseFormula("name=")
	assert.Error(t, err)
}
