package utils

import (
	"errors"
	"testing"
)

func TestExtractJSONMarkdownBlock(t *testing.T) {
	input := "```json\n{\"summary\": \"졸업 후 전망이 좋습니다\"}\n```"
	got, err := ExtractJSON(input)
	if err != nil {
		t.Fatalf("ExtractJSON: %v", err)
	}
	if got != `{"summary": "졸업 후 전망이 좋습니다"}` {
		t.Errorf("got %s", got)
	}
}

func TestExtractJSONSurroundingProse(t *testing.T) {
	input := "분석 결과는 다음과 같습니다.\n{\"description\": \"우수한 학과입니다\"}\n추가 문의는 어렵습니다."
	got, err := ExtractJSON(input)
	if err != nil {
		t.Fatalf("ExtractJSON: %v", err)
	}
	if got != `{"description": "우수한 학과입니다"}` {
		t.Errorf("got %s", got)
	}
}

func TestExtractJSONBracketMatching(t *testing.T) {
	// Braces inside string values must not terminate the match early.
	input := `garbage {"a": "closing } inside", "b": {"nested": true}} trailing`
	got, err := ExtractJSON(input)
	if err != nil {
		t.Fatalf("ExtractJSON: %v", err)
	}
	if got != `{"a": "closing } inside", "b": {"nested": true}}` {
		t.Errorf("got %s", got)
	}
}

func TestExtractJSONArray(t *testing.T) {
	got, err := ExtractJSON(`결과: [1, 2, 3]`)
	if err != nil {
		t.Fatalf("ExtractJSON: %v", err)
	}
	if got != "[1, 2, 3]" {
		t.Errorf("got %s", got)
	}
}

func TestExtractJSONNoJSON(t *testing.T) {
	for _, input := range []string{"", "JSON이 없는 일반 텍스트 응답", "{broken"} {
		if _, err := ExtractJSON(input); !errors.Is(err, ErrNoJSONFound) {
			t.Errorf("ExtractJSON(%q) err = %v, want ErrNoJSONFound", input, err)
		}
	}
}

func TestExtractJSONTo(t *testing.T) {
	var payload struct {
		Summary     string `json:"summary"`
		Description string `json:"description"`
	}
	input := "```json\n{\"summary\": \"두 줄 요약\", \"description\": \"상세 설명입니다\"}\n```"
	if err := ExtractJSONTo(input, &payload); err != nil {
		t.Fatalf("ExtractJSONTo: %v", err)
	}
	if payload.Summary != "두 줄 요약" || payload.Description != "상세 설명입니다" {
		t.Errorf("payload = %+v", payload)
	}
}

func TestExtractJSONKeepsKoreanAfterFixup(t *testing.T) {
	// A stray control character invalidates the raw JSON; the fixup pass
	// must drop it without touching the Korean text.
	input := "{\"summary\": \"의학 계열\x07 분석\"}"
	var payload struct {
		Summary string `json:"summary"`
	}
	if err := ExtractJSONTo(input, &payload); err != nil {
		t.Fatalf("ExtractJSONTo: %v", err)
	}
	if payload.Summary != "의학 계열 분석" {
		t.Errorf("Summary = %q", payload.Summary)
	}
}
