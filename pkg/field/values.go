package field

import (
	"strconv"
	"strings"
)

// Typed accessors over the dynamically typed data bag. Values round-trip
// through JSON persistence, so each accessor tolerates both the native shape
// written by the editors and the decoded map/slice shape JSON hands back.

// String returns the value under key as a string, or "" when unset or of an
// unexpected type. Date and time values are opaque strings here; no timezone
// normalization happens in the engine.
func String(data map[string]any, key string) string {
	if data == nil {
		return ""
	}
	switch v := data[key].(type) {
	case string:
		return v
	}
	return ""
}

// Bool returns the value under key, defaulting to false.
func Bool(data map[string]any, key string) bool {
	if data == nil {
		return false
	}
	v, _ := data[key].(bool)
	return v
}

// Number returns the numeric value under key. The second return reports
// whether a usable value was present.
func Number(data map[string]any, key string) (float64, bool) {
	if data == nil {
		return 0, false
	}
	switch v := data[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}

// Images returns the ordered image references under key.
func Images(data map[string]any, key string) []string {
	if data == nil {
		return nil
	}
	switch v := data[key].(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// IsEmpty reports whether the value under key should count as absent for
// required-ness: nil, whitespace-only strings, and empty collections are all
// empty. Booleans are never empty; a toggle always carries a value.
func IsEmpty(data map[string]any, key string) bool {
	if data == nil {
		return true
	}
	switch v := data[key].(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case bool:
		return false
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	case []ScheduleEntry:
		return len(v) == 0
	}
	return false
}
