package providers

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FirstString returns the first non-empty value among keys, rendered as a
// string. Providers are loose about types, so JSON numbers are formatted
// without exponent or trailing zeros rather than dropped.
func FirstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := stringValue(m[k]); s != "" {
			return s
		}
	}
	return ""
}

func stringValue(v any) string {
	switch v := v.(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
