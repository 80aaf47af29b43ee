package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/chrono-task/backend/internal/llm"
	"github.com/chrono-task/backend/internal/search"
)

type stubAssistant struct {
	reply      string
	err        error
	configured bool
	gotMessage string
	gotCtx     llm.ChatContext
	gotHistory []llm.ChatTurn
}

func (s *stubAssistant) Chat(_ context.Context, message string, chatCtx llm.ChatContext, history []llm.ChatTurn) (string, error) {
	s.gotMessage = message
	s.gotCtx = chatCtx
	s.gotHistory = history
	return s.reply, s.err
}

func (s *stubAssistant) Configured() bool { return s.configured }

type stubSearcher struct {
	results []search.Result
	err     error
	calls   int
}

func (s *stubSearcher) Search(_ context.Context, _ string) ([]search.Result, error) {
	s.calls++
	return s.results, s.err
}

func TestChatWithDocumentContext(t *testing.T) {
	assistant := &stubAssistant{configured: true, reply: "Goroutines are lightweight threads."}
	searcher := &stubSearcher{}
	h := NewChatHandler(assistant, searcher)

	rec := postJSON(t, h.Chat, "/api/chat",
		`{"message":"tell me about goroutines","transcript":"lecture text","videoTitle":"Go Concurrency","history":[{"role":"user","content":"hi"}]}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["message"] != assistant.reply {
		t.Errorf("message = %q", body["message"])
	}
	// Video aliases map onto the document fields
	if assistant.gotCtx.Content != "lecture text" {
		t.Errorf("content = %q", assistant.gotCtx.Content)
	}
	if assistant.gotCtx.DocumentTitle != "Go Concurrency" {
		t.Errorf("title = %q", assistant.gotCtx.DocumentTitle)
	}
	if len(assistant.gotHistory) != 1 {
		t.Errorf("history length = %d", len(assistant.gotHistory))
	}
	// Document context suppresses web search even for lookup phrasing
	if searcher.calls != 0 {
		t.Errorf("searcher called %d times, want 0", searcher.calls)
	}
}

func TestChatSearchWithoutContext(t *testing.T) {
	assistant := &stubAssistant{configured: true, reply: "ok"}
	searcher := &stubSearcher{results: []search.Result{
		{Title: "Go blog", Description: "Official blog", URL: "https://go.dev/blog"},
	}}
	h := NewChatHandler(assistant, searcher)

	rec := postJSON(t, h.Chat, "/api/chat", `{"message":"what is the latest Go release"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if searcher.calls != 1 {
		t.Fatalf("searcher called %d times, want 1", searcher.calls)
	}
	if !strings.Contains(assistant.gotCtx.SearchContext, "Go blog") {
		t.Errorf("search context = %q", assistant.gotCtx.SearchContext)
	}
}

func TestChatSearchFailureIsNotFatal(t *testing.T) {
	assistant := &stubAssistant{configured: true, reply: "still works"}
	searcher := &stubSearcher{err: errors.New("brave is down")}
	h := NewChatHandler(assistant, searcher)

	rec := postJSON(t, h.Chat, "/api/chat", `{"message":"what is a monad"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if assistant.gotCtx.SearchContext != "" {
		t.Errorf("search context = %q, want empty", assistant.gotCtx.SearchContext)
	}
}

func TestChatMissingMessage(t *testing.T) {
	h := NewChatHandler(&stubAssistant{configured: true}, nil)

	rec := postJSON(t, h.Chat, "/api/chat", `{"message":""}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestChatNotConfigured(t *testing.T) {
	h := NewChatHandler(&stubAssistant{configured: false}, nil)

	rec := postJSON(t, h.Chat, "/api/chat", `{"message":"hello"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestNeedsSearch(t *testing.T) {
	tests := []struct {
		message    string
		hasContext bool
		want       bool
	}{
		{"what is Go", false, true},
		{"tell me about channels", false, true},
		{"search for generics examples", false, true},
		{"hello there", false, false},
		{"what is Go", true, false},
	}

	for _, tt := range tests {
		if got := needsSearch(tt.message, tt.hasContext); got != tt.want {
			t.Errorf("needsSearch(%q, %v) = %v, want %v", tt.message, tt.hasContext, got, tt.want)
		}
	}
}
