package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Treedy2020/FinalCheck/internal/domain"
)

func newTestClient(t *testing.T, baseURL string, attempts int) *Client {
	t.Helper()
	c, err := NewClient(Config{
		APIKey:       "test-key",
		BaseURL:      baseURL,
		MaxAttempts:  attempts,
		RetryBackoff: time.Millisecond,
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func completionResponse(content string) string {
	resp := Response{
		ID: "test",
		Choices: []Choice{
			{Message: ChoiceMessage{Role: "assistant", Content: content}, FinishReason: "stop"},
		},
	}
	data, _ := json.Marshal(resp)
	return string(data)
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	if _, err := NewClient(Config{}, nil); err == nil {
		t.Fatal("expected error for missing API key")
	} else if !domain.IsKind(err, domain.KindConfig) {
		t.Errorf("error = %v, want config kind", err)
	}
}

func TestComplete_SendsImageAndPrompt(t *testing.T) {
	var gotAuth string
	var gotReq Request

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(completionResponse("verdict text")))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 1)

	out, err := c.Complete(context.Background(), "system prompt", "check this label", []byte("png-bytes"))
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if out != "verdict text" {
		t.Errorf("output = %q", out)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if len(gotReq.Messages) != 2 {
		t.Fatalf("len(messages) = %d, want 2", len(gotReq.Messages))
	}
	if gotReq.Messages[0].Role != "system" {
		t.Errorf("first message role = %s, want system", gotReq.Messages[0].Role)
	}
	user := gotReq.Messages[1]
	if user.Role != "user" || len(user.Content) != 2 {
		t.Fatalf("unexpected user message: %+v", user)
	}
	if user.Content[1].ImageURL == nil ||
		!strings.HasPrefix(user.Content[1].ImageURL.URL, "data:image/png;base64,") {
		t.Errorf("image not sent as PNG data URL: %+v", user.Content[1])
	}
	if gotReq.Stream {
		t.Error("verdict requests must not stream")
	}
}

func TestComplete_RetriesOnServerError(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(completionResponse("ok")))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 3)

	out, err := c.Complete(context.Background(), "", "prompt", []byte("img"))
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if out != "ok" {
		t.Errorf("output = %q", out)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestComplete_GivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 3)

	_, err := c.Complete(context.Background(), "", "prompt", []byte("img"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !domain.IsKind(err, domain.KindEvaluation) {
		t.Errorf("error = %v, want evaluation kind", err)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestComplete_NonRetryableStatus(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 3)

	if _, err := c.Complete(context.Background(), "", "prompt", []byte("img")); err == nil {
		t.Fatal("expected error")
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1 (401 must not be retried)", calls.Load())
	}
}

func TestComplete_ContextCancelledDuringBackoff(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, err := NewClient(Config{
		APIKey:       "test-key",
		BaseURL:      srv.URL,
		MaxAttempts:  5,
		RetryBackoff: time.Hour, // would stall without cancellation
	}, nil)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = c.Complete(ctx, "", "prompt", []byte("img"))
	if err == nil {
		t.Fatal("expected error")
	}
	if time.Since(start) > 5*time.Second {
		t.Error("cancellation did not interrupt backoff")
	}
}

func TestComplete_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"x","choices":[]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 1)

	if _, err := c.Complete(context.Background(), "", "prompt", []byte("img")); err == nil {
		t.Fatal("expected error for empty choices")
	}
}
