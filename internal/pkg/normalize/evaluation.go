package normalize

import (
	"encoding/json"
	"strings"

	"github.com/gradewise/eval-backend/internal/entity"
)

const fallbackFeedback = "Unable to parse evaluation"

// ScoreResponse shapes a model grading reply against the submitted items.
// The result always has exactly one detail per item, in input order, with
// scores clamped to [0, 10]; gaps in the reply degrade to fallback details.
func ScoreResponse(raw string, items []entity.SubmissionItem) (*entity.ScoreResponse, *Report) {
	report := &Report{}
	entries := decodeEntries(raw, report)
	details := matchDetails(entries, items, report)

	resp := &entity.ScoreResponse{Details: details}
	for _, d := range details {
		resp.TotalScore += d.Score
	}

	return resp, report
}

// decodeEntries runs the parse ladder: strict array, extracted array,
// wrapping object, then fragment harvest.
func decodeEntries(raw string, report *Report) []map[string]any {
	content := stripFences(raw)
	if content == "" {
		report.note("empty model reply")
		return nil
	}

	var entries []map[string]any
	if err := json.Unmarshal([]byte(content), &entries); err == nil {
		report.StrictParse = true
		return entries
	}

	if block, ok := extractBalanced(content, '[', ']'); ok {
		if err := json.Unmarshal([]byte(block), &entries); err == nil {
			report.note("extracted JSON array from surrounding text")
			return entries
		}
	}

	var single map[string]any
	if err := json.Unmarshal([]byte(content), &single); err == nil {
		report.note("model returned a JSON object instead of an array")
		return entriesFromObject(single)
	}

	if frags := objectFragments(content); len(frags) > 0 {
		report.note("recovered %d object fragments from malformed reply", len(frags))
		return frags
	}

	report.note("model reply is not parseable JSON")
	return nil
}

// entriesFromObject unwraps an object that carries the entry array under
// some key; an object with no such array is treated as a single entry.
func entriesFromObject(obj map[string]any) []map[string]any {
	for _, v := range obj {
		arr, ok := v.([]any)
		if !ok {
			continue
		}
		var entries []map[string]any
		for _, item := range arr {
			if m, ok := item.(map[string]any); ok {
				entries = append(entries, m)
			}
		}
		if len(entries) > 0 {
			return entries
		}
	}
	return []map[string]any{obj}
}

// matchDetails pairs model entries with submitted items: by the echoed
// question_id first, then positionally with whatever entries remain.
// Items left without an entry get a fallback detail.
func matchDetails(entries []map[string]any, items []entity.SubmissionItem, report *Report) []entity.ScoreDetail {
	details := make([]entity.ScoreDetail, len(items))
	used := make([]bool, len(entries))

	byID := make(map[string]int, len(entries))
	for i, e := range entries {
		v, _ := pick(e, "question_id", "id")
		id := strings.TrimSpace(coerceString(v))
		if id == "" {
			continue
		}
		if _, dup := byID[id]; !dup {
			byID[id] = i
		}
	}

	matched := make([]int, len(items))
	for i, item := range items {
		matched[i] = -1
		if j, ok := byID[item.QuestionID]; ok && !used[j] {
			matched[i] = j
			used[j] = true
		}
	}

	next := 0
	for i := range items {
		if matched[i] >= 0 {
			continue
		}
		for next < len(entries) && used[next] {
			next++
		}
		if next < len(entries) {
			matched[i] = next
			used[next] = true
		}
	}

	for i, item := range items {
		if matched[i] < 0 {
			report.Fallbacks++
			report.note("no model entry for question %q", item.QuestionID)
			details[i] = entity.ScoreDetail{
				QuestionID: item.QuestionID,
				Question:   item.Question,
				Feedback:   fallbackFeedback,
			}
			continue
		}
		details[i] = detailFromEntry(entries[matched[i]], item, report)
	}

	if extra := len(entries) - len(items); extra > 0 {
		report.note("model returned %d extra entries", extra)
	}

	return details
}

// detailFromEntry builds one detail, echoing the submitted question text
// rather than whatever the model repeated back.
func detailFromEntry(entry map[string]any, item entity.SubmissionItem, report *Report) entity.ScoreDetail {
	detail := entity.ScoreDetail{
		QuestionID: item.QuestionID,
		Question:   item.Question,
	}

	rawScore, _ := pick(entry, "score")
	score, ok := coerceScore(rawScore)
	if !ok {
		report.note("unparseable score for question %q", item.QuestionID)
	}
	detail.Score = clampScore(score)
	if ok && detail.Score != score {
		report.note("score %v for question %q clamped to %v", score, item.QuestionID, detail.Score)
	}

	rawCorrect, _ := pick(entry, "correct")
	detail.Correct, _ = coerceBool(rawCorrect)

	rawFeedback, _ := pick(entry, "feedback")
	detail.Feedback = strings.TrimSpace(coerceString(rawFeedback))

	return detail
}
