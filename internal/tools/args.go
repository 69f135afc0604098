package tools

import "strconv"

// stringArg reads a string argument, tolerating absent values
func stringArg(args map[string]any, name string) string {
	v, ok := args[name]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// floatArg reads a numeric argument, tolerating absent values and
// numbers the model sent as strings.
func floatArg(args map[string]any, name string, def float64) float64 {
	v, ok := args[name]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		if parsed, err := strconv.ParseFloat(n, 64); err == nil {
			return parsed
		}
	}
	return def
}
