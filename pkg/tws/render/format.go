package render

import (
	"fmt"
	"strings"
)

// Placeholder printed for absent optional values.
const Placeholder = "-"

// FormatValue renders one cell. Pointers are dereferenced; nil and
// empty values become the placeholder.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return Placeholder
	case string:
		if t == "" {
			return Placeholder
		}
		return t
	case *string:
		if t == nil {
			return Placeholder
		}
		return FormatValue(*t)
	case float64:
		return formatFloatComma(t, 2)
	case *float64:
		if t == nil {
			return Placeholder
		}
		return formatFloatComma(*t, 2)
	case int:
		return formatIntComma(int64(t))
	case int64:
		return formatIntComma(t)
	case *int:
		if t == nil {
			return Placeholder
		}
		return formatIntComma(int64(*t))
	case *int64:
		if t == nil {
			return Placeholder
		}
		return formatIntComma(*t)
	case bool:
		if t {
			return "✓"
		}
		return ""
	case *bool:
		if t == nil {
			return Placeholder
		}
		return FormatValue(*t)
	default:
		return fmt.Sprint(v)
	}
}

// formatIntComma formats an integer with comma thousand separators.
func formatIntComma(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	out := make([]byte, 0, len(s)+len(s)/3)
	rem := len(s) % 3
	if rem == 0 {
		rem = 3
	}
	out = append(out, s[:rem]...)
	for i := rem; i < len(s); i += 3 {
		out = append(out, ',')
		out = append(out, s[i:i+3]...)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

// formatFloatComma formats a float with fixed decimals and comma
// separators on the integer part.
func formatFloatComma(v float64, decimals int) string {
	fmtSpec := fmt.Sprintf("%%.%df", decimals)
	s := fmt.Sprintf(fmtSpec, v)
	dot := strings.IndexByte(s, '.')
	if dot == -1 {
		return s
	}
	intPart := s[:dot]
	fracPart := s[dot:]
	sign := ""
	if strings.HasPrefix(intPart, "-") || strings.HasPrefix(intPart, "+") {
		sign = intPart[:1]
		intPart = intPart[1:]
	}
	n := len(intPart)
	if n <= 3 {
		return sign + intPart + fracPart
	}
	out := make([]byte, 0, n+n/3)
	rem := n % 3
	if rem == 0 {
		rem = 3
	}
	out = append(out, intPart[:rem]...)
	for i := rem; i < n; i += 3 {
		out = append(out, ',')
		out = append(out, intPart[i:i+3]...)
	}
	return sign + string(out) + fracPart
}
