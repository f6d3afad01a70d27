package catalog

// Category scopes the selectable screening fields.
type Category string

const (
	Indicator   Category = "indicator"
	Fundamental Category = "fundamental"
	Chip        Category = "chip"
)

// Field is one selectable screening field.
type Field struct {
	Label    string
	Key      string
	Category Category
}

// Operator is one comparison operator with its wire code.
type Operator struct {
	Label string
	Code  string
}

// Operator wire codes understood by the screen endpoint.
const (
	OpGT        = ">"
	OpLT        = "<"
	OpEQ        = "="
	OpGTE       = ">="
	OpLTE       = "<="
	OpCrossUp   = "CROSS_UP"
	OpCrossDown = "CROSS_DOWN"
)

// Fields is the full catalog in display order. Keys match the
// backend's formula whitelist.
var Fields = []Field{
	{Label: "收盤價", Key: "close", Category: Indicator},
	{Label: "開盤價", Key: "open", Category: Indicator},
	{Label: "最高價", Key: "high", Category: Indicator},
	{Label: "最低價", Key: "low", Category: Indicator},
	{Label: "成交量", Key: "volume", Category: Indicator},
	{Label: "漲跌幅", Key: "change_percent", Category: Indicator},
	{Label: "5日均線", Key: "ma5", Category: Indicator},
	{Label: "10日均線", Key: "ma10", Category: Indicator},
	{Label: "20日均線", Key: "ma20", Category: Indicator},
	{Label: "60日均線", Key: "ma60", Category: Indicator},
	{Label: "RSI(14)", Key: "rsi14", Category: Indicator},
	{Label: "本益比", Key: "pe_ratio", Category: Fundamental},
	{Label: "每股盈餘", Key: "eps", Category: Fundamental},
	{Label: "外資買賣超", Key: "foreign_buy", Category: Chip},
	{Label: "投信買賣超", Key: "trust_buy", Category: Chip},
	{Label: "融資餘額", Key: "margin_balance", Category: Chip},
}

// Operators lists the supported comparisons in display order.
var Operators = []Operator{
	{Label: "大於", Code: OpGT},
	{Label: "小於", Code: OpLT},
	{Label: "等於", Code: OpEQ},
	{Label: "大於等於", Code: OpGTE},
	{Label: "小於等於", Code: OpLTE},
	{Label: "黃金交叉", Code: OpCrossUp},
	{Label: "死亡交叉", Code: OpCrossDown},
}

// ByCategory returns the catalog subsequence for c, preserving catalog
// order. Unrecognized categories yield an empty slice rather than an
// error; the category enum is closed but upstream values may be
// malformed.
func ByCategory(c Category) []Field {
	out := make([]Field, 0, len(Fields))
	for _, f := range Fields {
		if f.Category == c {
			out = append(out, f)
		}
	}
	return out
}

// FirstKey returns the key of the first catalog entry for c, or ""
// when the category has no entries.
func FirstKey(c Category) string {
	for _, f := range Fields {
		if f.Category == c {
			return f.Key
		}
	}
	return ""
}

// Lookup finds a catalog entry by field key.
func Lookup(key string) (Field, bool) {
	for _, f := range Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// LookupOperator finds an operator by wire code.
func LookupOperator(code string) (Operator, bool) {
	for _, o := range Operators {
		if o.Code == code {
			return o, true
		}
	}
	return Operator{}, false
}

// ValidCategory reports whether c is a member of the closed category
// enumeration.
func ValidCategory(c Category) bool {
	switch c {
	case Indicator, Fundamental, Chip:
		return true
	}
	return false
}
