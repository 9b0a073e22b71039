package shared

import (
	"net/url"
	"strings"
)

// ParseBool implements the loose boolean contract shared by every endpoint
// that reads query parameters:
//
//   - absent, "null", or "any": the given default
//   - "false", "no" (case-insensitive), or "0": false
//   - anything else, including the empty string: true
//
// The default is a *bool so "no filter" (nil) stays distinguishable from an
// explicit false.
func ParseBool(params url.Values, key string, def *bool) *bool {
	values, present := params[key]
	if !present || len(values) == 0 {
		return def
	}

	raw := values[0]
	if raw == "null" || raw == "any" {
		return def
	}

	lower := strings.ToLower(raw)
	result := !(lower == "false" || lower == "no" || raw == "0")
	return &result
}

// ParseBoolFlag is ParseBool for parameters that always need a concrete
// value, such as expand.
func ParseBoolFlag(params url.Values, key string, def bool) bool {
	if v := ParseBool(params, key, &def); v != nil {
		return *v
	}
	return def
}
