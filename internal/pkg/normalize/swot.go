package normalize

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/gradewise/eval-backend/internal/entity"
)

const swotUnavailable = "Analysis unavailable"

var swotKeys = []string{"strengths", "weaknesses", "opportunities", "threats"}

var swotKeyPatterns = map[string]*regexp.Regexp{
	"strengths":     quotedValuePattern("strengths"),
	"weaknesses":    quotedValuePattern("weaknesses"),
	"opportunities": quotedValuePattern("opportunities"),
	"threats":       quotedValuePattern("threats"),
}

func quotedValuePattern(key string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)"` + key + `"\s*:\s*"((?:[^"\\]|\\.)*)"`)
}

// SWOTResponse shapes a model SWOT reply. Missing sections degrade to
// empty strings; a reply with no recoverable section at all yields the
// unavailable placeholder in every section.
func SWOTResponse(raw string) (*entity.SWOTResponse, *Report) {
	report := &Report{}
	content := stripFences(raw)

	if obj, strict, wrapped := decodeSWOTObject(content); obj != nil {
		report.StrictParse = strict
		if !strict {
			report.note("extracted JSON object from surrounding text")
		}
		if wrapped {
			report.note("analysis sections found under a wrapper key")
		}
		return swotFromMap(obj, report), report
	}

	if resp, ok := swotFromPatterns(content, report); ok {
		report.note("recovered analysis sections by pattern matching")
		return resp, report
	}

	report.Fallbacks = len(swotKeys)
	report.note("no analysis sections found in model reply")
	return &entity.SWOTResponse{
		Strengths:     swotUnavailable,
		Weaknesses:    swotUnavailable,
		Opportunities: swotUnavailable,
		Threats:       swotUnavailable,
	}, report
}

// decodeSWOTObject parses the reply as a JSON object carrying at least
// one analysis key, descending one level into wrapper objects.
func decodeSWOTObject(content string) (obj map[string]any, strict, wrapped bool) {
	var parsed map[string]any
	if err := json.Unmarshal([]byte(content), &parsed); err == nil {
		if found, inner := findSWOTKeys(parsed); found != nil {
			return found, true, inner
		}
		return nil, false, false
	}

	if block, ok := extractBalanced(content, '{', '}'); ok {
		if err := json.Unmarshal([]byte(block), &parsed); err == nil {
			if found, inner := findSWOTKeys(parsed); found != nil {
				return found, false, inner
			}
		}
	}

	return nil, false, false
}

func findSWOTKeys(obj map[string]any) (map[string]any, bool) {
	if hasSWOTKey(obj) {
		return obj, false
	}
	for _, v := range obj {
		if inner, ok := v.(map[string]any); ok && hasSWOTKey(inner) {
			return inner, true
		}
	}
	return nil, false
}

func hasSWOTKey(obj map[string]any) bool {
	for _, key := range swotKeys {
		if _, ok := pick(obj, key); ok {
			return true
		}
	}
	return false
}

func swotFromMap(obj map[string]any, report *Report) *entity.SWOTResponse {
	section := func(key string) string {
		v, ok := pick(obj, key)
		if !ok {
			report.note("missing %q section", key)
			return ""
		}
		return strings.TrimSpace(coerceString(v))
	}

	return &entity.SWOTResponse{
		Strengths:     section("strengths"),
		Weaknesses:    section("weaknesses"),
		Opportunities: section("opportunities"),
		Threats:       section("threats"),
	}
}

// swotFromPatterns salvages individual quoted sections out of malformed
// text. It reports ok only when at least one section was found.
func swotFromPatterns(content string, report *Report) (*entity.SWOTResponse, bool) {
	sections := make(map[string]string, len(swotKeys))
	for _, key := range swotKeys {
		if m := swotKeyPatterns[key].FindStringSubmatch(content); m != nil {
			sections[key] = strings.TrimSpace(unquoteJSON(m[1]))
		}
	}
	if len(sections) == 0 {
		return nil, false
	}

	for _, key := range swotKeys {
		if _, ok := sections[key]; !ok {
			report.note("missing %q section", key)
		}
	}

	return &entity.SWOTResponse{
		Strengths:     sections["strengths"],
		Weaknesses:    sections["weaknesses"],
		Opportunities: sections["opportunities"],
		Threats:       sections["threats"],
	}, true
}

// unquoteJSON decodes the escape sequences of a raw JSON string body.
func unquoteJSON(raw string) string {
	var s string
	if err := json.Unmarshal([]byte(`"`+raw+`"`), &s); err != nil {
		return raw
	}
	return s
}
