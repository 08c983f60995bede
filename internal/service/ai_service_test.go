package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"souschef_backend/internal/config"
	"testing"
)

func fakeAI(t *testing.T, handler http.HandlerFunc) (*AIService, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	ai := NewAIService(config.AIConfig{BaseURL: srv.URL, APIKey: "test-key", Model: "test-model"})
	return ai, srv
}

func chatReply(content string) string {
	resp := map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	}
	raw, _ := json.Marshal(resp)
	return string(raw)
}

func TestAIService_CompleteReturnsContent(t *testing.T) {
	var gotAuth string
	ai, _ := fakeAI(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(chatReply("hello")))
	})

	out, err := ai.Complete(context.Background(), "sys", "user", 0.7)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if out != "hello" {
		t.Fatalf("unexpected content %q", out)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("missing bearer auth, got %q", gotAuth)
	}
}

func TestAIService_CompleteJSONSendsSchema(t *testing.T) {
	var gotBody ChatCompletionRequest
	ai, _ := fakeAI(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(chatReply(`{"ok":true}`)))
	})

	_, err := ai.CompleteJSON(context.Background(), "sys", "user", "my_schema", map[string]interface{}{"type": "object"})
	if err != nil {
		t.Fatalf("completeJSON: %v", err)
	}
	if gotBody.ResponseFormat == nil || gotBody.ResponseFormat.Type != "json_schema" {
		t.Fatalf("response_format not sent: %+v", gotBody.ResponseFormat)
	}
	if gotBody.ResponseFormat.JSONSchema.Name != "my_schema" {
		t.Fatalf("schema name lost: %+v", gotBody.ResponseFormat.JSONSchema)
	}
}

func TestAIService_UpstreamErrorBecomesAPIError(t *testing.T) {
	ai, _ := fakeAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"Rate limit exceeded"}}`))
	})

	_, err := ai.Complete(context.Background(), "s", "u", 0.5)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests || apiErr.Message != "Rate limit exceeded" {
		t.Fatalf("unexpected APIError: %+v", apiErr)
	}
}

func TestAIService_NoChoices(t *testing.T) {
	ai, _ := fakeAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	})
	if _, err := ai.Complete(context.Background(), "s", "u", 0.5); err == nil {
		t.Fatalf("expected error for empty choices")
	}
}

func TestStripFences(t *testing.T) {
	in := "```json\n{\"a\":1}\n```"
	if out := StripFences(in); out != `{"a":1}` {
		t.Fatalf("fences not stripped: %q", out)
	}
	if out := StripFences(`{"a":1}`); out != `{"a":1}` {
		t.Fatalf("plain JSON mangled: %q", out)
	}
}

func TestExtractErrorMessage_NeverFails(t *testing.T) {
	if got := ExtractErrorMessage(nil); got != genericAIErrorMessage {
		t.Fatalf("nil error should yield generic message, got %q", got)
	}

	if got := ExtractErrorMessage(&APIError{StatusCode: 500, Message: "upstream exploded"}); got != "upstream exploded" {
		t.Fatalf("APIError message lost: %q", got)
	}

	if got := ExtractErrorMessage(&APIError{StatusCode: 503}); got != "Error 503: the AI service rejected the request." {
		t.Fatalf("unexpected status fallback: %q", got)
	}

	nested := errors.New(`{"error":{"message":"Invalid API key"}}`)
	if got := ExtractErrorMessage(nested); got != "Invalid API key" {
		t.Fatalf("nested JSON message not extracted: %q", got)
	}

	plain := errors.New("connection refused")
	if got := ExtractErrorMessage(plain); got != "connection refused" {
		t.Fatalf("plain error message lost: %q", got)
	}

	if got := ExtractErrorMessage(errors.New("  ")); got != genericAIErrorMessage {
		t.Fatalf("blank message should fall back, got %q", got)
	}
}
