package aigen

import (
	"encoding/json"
	"strings"
)

// StripThinking splits a model response into the visible answer and the
// chain-of-thought some reasoning models emit inside <think> tags. The
// reasoning is kept for audit, never shown as content.
func StripThinking(raw string) (content, reasoning string) {
	lower := strings.ToLower(raw)
	start := strings.Index(lower, "<think>")
	if start == -1 {
		return strings.TrimSpace(raw), ""
	}
	end := strings.Index(lower, "</think>")
	if end == -1 || end < start {
		// Unclosed tag: treat everything after it as reasoning.
		return strings.TrimSpace(raw[:start]), strings.TrimSpace(raw[start+len("<think>"):])
	}
	reasoning = strings.TrimSpace(raw[start+len("<think>") : end])
	content = strings.TrimSpace(raw[:start] + raw[end+len("</think>"):])
	return content, reasoning
}

// StripFences removes a wrapping markdown code fence when the model
// ignores the "no other text" instruction and fences its whole answer.
func StripFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	// Drop an optional language hint on the fence line.
	if nl := strings.Index(trimmed, "\n"); nl != -1 {
		firstLine := strings.TrimSpace(trimmed[:nl])
		if firstLine == "" || !strings.ContainsAny(firstLine, " \t{[") {
			trimmed = trimmed[nl+1:]
		}
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

// FeatureItem is one entry of a generated feature list.
type FeatureItem struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Priority        string `json:"priority"`
	Phase           string `json:"phase"`
	EstimatedEffort string `json:"estimated_effort"`
}

// TaskItem is one entry of a generated task breakdown.
type TaskItem struct {
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Priority       string  `json:"priority"`
	Role           string  `json:"role"`
	EstimatedHours float64 `json:"estimated_hours"`
}

// ParseFeatureList decodes a feature array from model output, tolerating
// code fences and prose around the JSON.
func ParseFeatureList(raw string) ([]FeatureItem, error) {
	var items []FeatureItem
	if err := json.Unmarshal([]byte(extractJSONArray(raw)), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ParseTaskList decodes a task array from model output, tolerating code
// fences and prose around the JSON.
func ParseTaskList(raw string) ([]TaskItem, error) {
	var items []TaskItem
	if err := json.Unmarshal([]byte(extractJSONArray(raw)), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// extractJSONArray pulls the outermost [...] span out of a response that
// may carry fences or leading commentary.
func extractJSONArray(raw string) string {
	cleaned := StripFences(raw)
	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start == -1 || end == -1 || end < start {
		return cleaned
	}
	return cleaned[start : end+1]
}
