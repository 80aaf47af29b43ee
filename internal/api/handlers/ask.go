package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/chrono-task/backend/internal/llm"
)

// QuestionAnswerer answers a question against document context.
type QuestionAnswerer interface {
	Ask(ctx context.Context, question string, askCtx llm.AskContext) (string, error)
	Configured() bool
}

type AskHandler struct {
	answerer QuestionAnswerer
}

func NewAskHandler(answerer QuestionAnswerer) *AskHandler {
	return &AskHandler{answerer: answerer}
}

type askRequest struct {
	Question      string   `json:"question"`
	Content       string   `json:"content"`
	Concepts      []string `json:"concepts"`
	DocumentTitle string   `json:"documentTitle"`
}

// Ask serves POST /api/ask.
func (h *AskHandler) Ask(w http.ResponseWriter, r *http.Request) {
	if !h.answerer.Configured() {
		log.Println("[ask] MINIMAX_API_KEY is not configured")
		jsonError(w, "MiniMax API key is not configured", http.StatusInternalServerError)
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		jsonError(w, "Question is required", http.StatusBadRequest)
		return
	}

	answer, err := h.answerer.Ask(r.Context(), req.Question, llm.AskContext{
		Content:       req.Content,
		Concepts:      req.Concepts,
		DocumentTitle: req.DocumentTitle,
	})
	if err != nil {
		log.Printf("[ask] answering failed: %v", err)
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	jsonResponse(w, map[string]string{"answer": answer}, http.StatusOK)
}
