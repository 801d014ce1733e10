package digitalocean

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func stubInferenceServer(t *testing.T, choices []InferenceChoice) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req InferenceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("undecodable request body: %v", err)
		}
		json.NewEncoder(w).Encode(InferenceResponse{Choices: choices})
	}))
}

func TestSimpleCompletionReturnsContent(t *testing.T) {
	srv := stubInferenceServer(t, []InferenceChoice{
		{Message: InferenceMessage{Role: "assistant", Content: "분석 결과"}},
	})
	defer srv.Close()

	client := NewInferenceClient(InferenceConfig{APIKey: "test", BaseURL: srv.URL})
	got, err := client.SimpleCompletion(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("SimpleCompletion failed: %v", err)
	}
	if got != "분석 결과" {
		t.Errorf("content = %q, want 분석 결과", got)
	}
}

func TestSimpleCompletionEmptyChoices(t *testing.T) {
	srv := stubInferenceServer(t, nil)
	defer srv.Close()

	client := NewInferenceClient(InferenceConfig{APIKey: "test", BaseURL: srv.URL})
	if _, err := client.SimpleCompletion(context.Background(), "system", "user"); err == nil {
		t.Fatal("expected an error for a response without choices")
	}
}

func TestExtractContentEmptyResponse(t *testing.T) {
	var r InferenceResponse
	if got := r.ExtractContent(); got != "" {
		t.Errorf("ExtractContent on empty response = %q, want empty", got)
	}
}
