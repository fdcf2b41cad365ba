// Package normalize shapes raw model replies into wire types. Its
// functions are total: malformed content degrades field by field and is
// recorded in a Report, it never becomes an error.
package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Report records the liberties taken while shaping a model reply.
type Report struct {
	// StrictParse is true when the reply parsed as-is after fence stripping.
	StrictParse bool
	// Fallbacks counts sub-items that received placeholder content.
	Fallbacks int
	Notes     []string
}

// Degraded reports whether the reply needed anything beyond a strict parse.
func (r *Report) Degraded() bool {
	return !r.StrictParse || r.Fallbacks > 0 || len(r.Notes) > 0
}

// Summary joins the notes for a single log field.
func (r *Report) Summary() string {
	return strings.Join(r.Notes, "; ")
}

func (r *Report) note(format string, args ...any) {
	r.Notes = append(r.Notes, fmt.Sprintf(format, args...))
}

var (
	objectFragmentRegex = regexp.MustCompile(`\{[^{}]*\}`)
	numberRegex         = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
)

// stripFences removes a surrounding markdown code fence, with or without
// a language tag, and trims the remainder.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")

	return strings.TrimSpace(s)
}

// extractBalanced returns the first balanced JSON block opened by open,
// skipping brackets that occur inside string literals.
func extractBalanced(s string, open, close byte) (string, bool) {
	start := strings.IndexByte(s, open)
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	return "", false
}

// objectFragments harvests flat JSON objects out of otherwise malformed text.
func objectFragments(s string) []map[string]any {
	var out []map[string]any
	for _, frag := range objectFragmentRegex.FindAllString(s, -1) {
		var m map[string]any
		if err := json.Unmarshal([]byte(frag), &m); err == nil && len(m) > 0 {
			out = append(out, m)
		}
	}
	return out
}

// pick returns the first of keys present in m, trying exact matches
// before case-insensitive ones.
func pick(m map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v, true
		}
	}
	for _, k := range keys {
		for mk, v := range m {
			if strings.EqualFold(mk, k) {
				return v, true
			}
		}
	}
	return nil, false
}

// coerceScore accepts the shapes models produce for a numeric score:
// a JSON number, a numeric string, or strings like "8/10" and "8 out of 10".
func coerceScore(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return f, true
		}
		if m := numberRegex.FindString(val); m != "" {
			if f, err := strconv.ParseFloat(m, 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

func coerceBool(v any) (bool, bool) {
	switch val := v.(type) {
	case bool:
		return val, true
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "yes", "correct", "1":
			return true, true
		case "false", "no", "incorrect", "0":
			return false, true
		}
	case float64:
		return val != 0, true
	}
	return false, false
}

// coerceString flattens scalar and string-array values into a string;
// anything else becomes "".
func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok && s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "\n")
	default:
		return ""
	}
}

// clampScore bounds a score to [0, 10]; non-finite values become 0.
func clampScore(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f < 0 {
		return 0
	}
	if f > 10 {
		return 10
	}
	return f
}
