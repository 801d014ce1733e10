package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// ErrNoJSONFound is returned when no valid JSON object/array is found in the input
var ErrNoJSONFound = errors.New("no valid JSON object or array found in response")

// ExtractJSON extracts and validates JSON from LLM responses that may contain
// garbage characters, markdown formatting, or other non-JSON content.
//
// It handles common issues like:
// - Markdown code blocks (```json ... ```)
// - Garbage characters before/after valid JSON
// - Mixed content with valid JSON embedded
//
// Returns the cleaned JSON string or an error if no valid JSON is found.
func ExtractJSON(response string) (string, error) {
	if response == "" {
		return "", ErrNoJSONFound
	}

	// Step 1: Try to extract from markdown code blocks first
	cleaned := extractFromMarkdown(response)

	// Step 2: Try to find valid JSON by bracket matching
	jsonStr := extractJSONByBrackets(cleaned)
	if jsonStr != "" && json.Valid([]byte(jsonStr)) {
		return jsonStr, nil
	}

	// Step 3: Try the cleaned response as-is
	if json.Valid([]byte(cleaned)) {
		return cleaned, nil
	}

	// Step 4: Aggressive extraction, first { or [ through last } or ]
	jsonStr = aggressiveExtract(response)
	if jsonStr != "" && json.Valid([]byte(jsonStr)) {
		return jsonStr, nil
	}

	// Step 5: Try to fix common JSON issues
	jsonStr = tryFixJSON(cleaned)
	if jsonStr != "" && json.Valid([]byte(jsonStr)) {
		return jsonStr, nil
	}

	return "", fmt.Errorf("%w: response length=%d", ErrNoJSONFound, len(response))
}

// ExtractJSONTo extracts JSON from response and unmarshals it into the target
func ExtractJSONTo(response string, target interface{}) error {
	jsonStr, err := ExtractJSON(response)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(jsonStr), target)
}

// extractFromMarkdown removes markdown code block formatting
func extractFromMarkdown(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
	}

	// Also try regex for inline code blocks
	re := regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")
	matches := re.FindStringSubmatch(s)
	if len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	return strings.TrimSpace(s)
}

// extractJSONByBrackets uses bracket matching to find complete JSON
func extractJSONByBrackets(s string) string {
	startObj := strings.Index(s, "{")
	startArr := strings.Index(s, "[")

	var start int
	var openChar, closeChar rune

	if startObj == -1 && startArr == -1 {
		return ""
	} else if startObj == -1 {
		start = startArr
		openChar = '['
		closeChar = ']'
	} else if startArr == -1 {
		start = startObj
		openChar = '{'
		closeChar = '}'
	} else if startObj < startArr {
		start = startObj
		openChar = '{'
		closeChar = '}'
	} else {
		start = startArr
		openChar = '['
		closeChar = ']'
	}

	depth := 0
	inString := false
	escaped := false
	end := -1

	for i := start; i < len(s); i++ {
		c := rune(s[i])

		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		if c == openChar {
			depth++
		} else if c == closeChar {
			depth--
			if depth == 0 {
				end = i + 1
				break
			}
		}
	}

	if end == -1 {
		return ""
	}
	return s[start:end]
}

// aggressiveExtract tries to find JSON by looking for first { and last }
func aggressiveExtract(s string) string {
	firstBrace := strings.Index(s, "{")
	lastBrace := strings.LastIndex(s, "}")
	if firstBrace != -1 && lastBrace > firstBrace {
		candidate := s[firstBrace : lastBrace+1]
		if json.Valid([]byte(candidate)) {
			return candidate
		}
	}

	firstBracket := strings.Index(s, "[")
	lastBracket := strings.LastIndex(s, "]")
	if firstBracket != -1 && lastBracket > firstBracket {
		candidate := s[firstBracket : lastBracket+1]
		if json.Valid([]byte(candidate)) {
			return candidate
		}
	}

	return ""
}

// tryFixJSON attempts to fix common JSON issues. Model output here is mostly
// Korean, so only control characters are stripped, never non-ASCII runes.
func tryFixJSON(s string) string {
	lastBrace := strings.LastIndex(s, "}")
	if lastBrace > 0 {
		s = s[:lastBrace+1]
	}
	firstBrace := strings.Index(s, "{")
	if firstBrace > 0 {
		s = s[firstBrace:]
	}

	var cleaned strings.Builder
	for _, r := range s {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			continue
		}
		cleaned.WriteRune(r)
	}
	return cleaned.String()
}
