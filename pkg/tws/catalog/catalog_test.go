package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByCategory(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		wantKeys []string
	}{
		{
			name:     "indicator preserves catalog order",
			category: Indicator,
			wantKeys: []string{
				"close", "open", "high", "low", "volume", "change_percent",
				"ma5", "ma10", "ma20", "ma60", "rsi14",
			},
		},
		{
			name:     "fundamental",
			category: Fundamental,
			wantKeys: []string{"pe_ratio", "eps"},
		},
		{
			name:     "chip",
			category: Chip,
			wantKeys: []string{"foreign_buy", "trust_buy", "margin_balance"},
		},
		{
			name:     "unknown category yields empty",
			category: Category("bogus"),
			wantKeys: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ByCategory(tt.category)
			keys := make([]string, 0, len(got))
			for _, f := range got {
				keys = append(keys, f.Key)
			}
			assert.Equal(t, tt.wantKeys, keys)
		})
	}
}

func TestByCategoryDoesNotMutateCatalog(t *testing.T) {
	before := make([]Field, len(Fields))
	copy(before, Fields)
	_ = ByCategory(Indicator)
	_ = ByCategory(Chip)
	_ = ByCategory(Category("nope"))
	assert.Equal(t, before, Fields)
}

func TestFirstKey(t *testing.T) {
	assert.Equal(t, "close", FirstKey(Indicator))
	assert.Equal(t, "pe_ratio", FirstKey(Fundamental))
	assert.Equal(t, "foreign_buy", FirstKey(Chip))
	assert.Equal(t, "", FirstKey(Category("bogus")))
}

func TestLookup(t *testing.T) {
	f, ok := Lookup("ma20")
	require.True(t, ok)
	assert.Equal(t, Indicator, f.Category)
	assert.Equal(t, "20日均線", f.Label)

	_, ok = Lookup("not_a_field")
	assert.False(t, ok)
}

func TestLookupOperator(t *testing.T) {
	o, ok := LookupOperator(OpCrossUp)
	require.True(t, ok)
	assert.Equal(t, "黃金交叉", o.Label)

	_, ok = LookupOperator("!=")
	assert.False(t, ok)
}

func TestValidCategory(t *testing.T) {
	assert.True(t, ValidCategory(Indicator))
	assert.True(t, ValidCategory(Fundamental))
	assert.True(t, ValidCategory(Chip))
	assert.False(t, ValidCategory(Category("")))
	assert.False(t, ValidCategory(Category("Indicator")))
}
