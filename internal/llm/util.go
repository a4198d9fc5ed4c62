// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import "strings"

// CleanJSONBlock strips a markdown code fence from around a JSON reply.
// Models emit ```json ... ``` wrappers even when told not to, including in
// JSON mode.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	body := strings.TrimPrefix(text, "```")
	body = strings.TrimPrefix(body, "json")
	// A short bare word on the fence line is a language tag, not content.
	if nl := strings.Index(body, "\n"); nl >= 0 {
		tag := body[:nl]
		if len(tag) < 20 && !strings.ContainsAny(tag, " {") {
			body = body[nl+1:]
		}
	}
	if end := strings.LastIndex(body, "```"); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}

// FirstJSONObject returns the first balanced top-level JSON object in text,
// or "" when none is found. Brace matching skips braces inside strings, so
// values like "Hello {name}" do not break it. Used as a fallback when a
// model prepends prose despite the JSON instructions.
func FirstJSONObject(text string) string {
	start := strings.Index(text, "{")
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}
