package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/8kvgxvbj2w-byte/Photo-Prep-App/internal/model"
)

var (
	fencedJSONRe = regexp.MustCompile("(?s)```json\\s*(.+?)\\s*```")
	fencedRe     = regexp.MustCompile("(?s)```\\s*(.+?)\\s*```")
)

// envelopeKeys are the object keys detector dumps use for their prediction list
var envelopeKeys = []string{"detections", "predictions", "objects"}

// DecodeDetections extracts a detection list from detector output that may be:
// - a bare JSON array of detections
// - an object wrapping the array under "detections", "predictions" or "objects"
// - either of the above inside a markdown code block or surrounded by text
//
// Detections are decoded strictly once located: malformed boxes or
// out-of-range confidences are errors wrapping model.ErrInvalidDetection.
func DecodeDetections(input string) ([]model.DetectedObject, error) {
	payload := extractPayload(input)
	if payload == "" {
		return nil, fmt.Errorf("no JSON found in input: %s", truncateString(strings.TrimSpace(input), 100))
	}

	raw := []byte(payload)
	if bytes.HasPrefix(raw, []byte("{")) {
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return nil, fmt.Errorf("failed to parse detection envelope: %w", err)
		}
		raw = nil
		for _, key := range envelopeKeys {
			if list, ok := envelope[key]; ok {
				raw = list
				break
			}
		}
		if raw == nil {
			return nil, fmt.Errorf("detection envelope has none of %v", envelopeKeys)
		}
	}

	var objects []model.DetectedObject
	if err := json.Unmarshal(raw, &objects); err != nil {
		return nil, fmt.Errorf("failed to parse detections: %w", err)
	}
	if err := model.ValidateDetections(objects); err != nil {
		return nil, err
	}
	if objects == nil {
		objects = []model.DetectedObject{}
	}
	return objects, nil
}

// extractPayload locates the JSON document inside detector output
func extractPayload(input string) string {
	s := strings.TrimPrefix(strings.TrimSpace(input), "\ufeff")
	if s == "" {
		return ""
	}

	if (strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{")) && json.Valid([]byte(s)) {
		return s
	}

	if extracted := extractFromMarkdown(s); extracted != "" {
		return extracted
	}

	return extractJSONFromText(s)
}

// extractFromMarkdown extracts JSON from markdown code blocks
// Supports: ```json {...} ```, ```{...}```, or ```\n[...]\n```
func extractFromMarkdown(input string) string {
	if matches := fencedJSONRe.FindStringSubmatch(input); len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	if matches := fencedRe.FindStringSubmatch(input); len(matches) > 1 {
		content := strings.TrimSpace(matches[1])
		if strings.HasPrefix(content, "{") || strings.HasPrefix(content, "[") {
			return content
		}
	}

	return ""
}

// extractJSONFromText finds the first JSON object or array in surrounding text
func extractJSONFromText(input string) string {
	objStart := strings.Index(input, "{")
	arrStart := strings.Index(input, "[")

	// An array that opens before the first object is the outer document.
	if arrStart >= 0 && (objStart < 0 || arrStart < objStart) {
		if extracted := extractBalancedBraces(input[arrStart:], '[', ']'); extracted != "" {
			return extracted
		}
	}

	if objStart >= 0 {
		if extracted := extractBalancedBraces(input[objStart:], '{', '}'); extracted != "" {
			return extracted
		}
	}

	return ""
}

// extractBalancedBraces extracts content with balanced braces
func extractBalancedBraces(input string, open, close rune) string {
	if len(input) == 0 {
		return ""
	}

	depth := 0
	inString := false
	escape := false
	start := 0

	for i, ch := range input {
		if escape {
			escape = false
			continue
		}

		if ch == '\\' {
			escape = true
			continue
		}

		if ch == '"' {
			inString = !inString
			continue
		}

		if inString {
			continue
		}

		if ch == open {
			if depth == 0 {
				start = i
			}
			depth++
		} else if ch == close {
			depth--
			if depth == 0 {
				return input[start : i+1]
			}
		}
	}

	return ""
}

// truncateString truncates a string to maxLen characters
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
