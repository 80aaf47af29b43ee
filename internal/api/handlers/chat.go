package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/chrono-task/backend/internal/llm"
	"github.com/chrono-task/backend/internal/search"
)

// ChatAssistant runs one turn of the learning assistant conversation.
type ChatAssistant interface {
	Chat(ctx context.Context, message string, chatCtx llm.ChatContext, history []llm.ChatTurn) (string, error)
	Configured() bool
}

// WebSearcher finds web results to ground answers outside the document.
type WebSearcher interface {
	Search(ctx context.Context, query string) ([]search.Result, error)
}

type ChatHandler struct {
	assistant ChatAssistant
	searcher  WebSearcher
}

func NewChatHandler(assistant ChatAssistant, searcher WebSearcher) *ChatHandler {
	return &ChatHandler{assistant: assistant, searcher: searcher}
}

type chatRequest struct {
	Message       string         `json:"message"`
	Content       string         `json:"content"`
	Transcript    string         `json:"transcript"`
	Concepts      []string       `json:"concepts"`
	DocumentTitle string         `json:"documentTitle"`
	VideoTitle    string         `json:"videoTitle"`
	History       []llm.ChatTurn `json:"history"`
}

var searchKeywords = []string{"search", "find", "what", "how", "tell", "about"}

// needsSearch reports whether a message with no document context looks
// like a lookup the assistant should ground with web results.
func needsSearch(message string, hasContext bool) bool {
	if hasContext {
		return false
	}
	lower := strings.ToLower(message)
	for _, kw := range searchKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Chat serves POST /api/chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if !h.assistant.Configured() {
		jsonError(w, "OpenAI API key is not configured", http.StatusInternalServerError)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		jsonError(w, "Message is required", http.StatusBadRequest)
		return
	}

	content := req.Content
	if content == "" {
		content = req.Transcript
	}
	title := req.DocumentTitle
	if title == "" {
		title = req.VideoTitle
	}

	hasContext := content != "" || len(req.Concepts) > 0 || title != ""

	var searchContext string
	if h.searcher != nil && needsSearch(req.Message, hasContext) {
		results, err := h.searcher.Search(r.Context(), req.Message)
		if err != nil {
			// Search is best-effort context, never a chat failure
			log.Printf("[chat] search failed: %v", err)
		} else {
			searchContext = search.FormatContext(results)
		}
	}

	reply, err := h.assistant.Chat(r.Context(), req.Message, llm.ChatContext{
		Content:       content,
		Concepts:      req.Concepts,
		DocumentTitle: title,
		SearchContext: searchContext,
	}, req.History)
	if err != nil {
		log.Printf("[chat] completion failed: %v", err)
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	jsonResponse(w, map[string]string{"message": reply}, http.StatusOK)
}
