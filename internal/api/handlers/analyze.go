package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/chrono-task/backend/internal/llm"
)

// StudyPlanner extracts a study plan from document text.
type StudyPlanner interface {
	AnalyzeStudyPlan(ctx context.Context, content, documentTitle string) (*llm.StudyPlan, error)
	Configured() bool
}

type AnalyzeHandler struct {
	planner StudyPlanner
}

func NewAnalyzeHandler(planner StudyPlanner) *AnalyzeHandler {
	return &AnalyzeHandler{planner: planner}
}

type analyzeRequest struct {
	Content       string `json:"content"`
	Transcript    string `json:"transcript"`
	DocumentTitle string `json:"documentTitle"`
}

// Analyze serves POST /api/analyze.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	if !h.planner.Configured() {
		log.Println("[analyze] MINIMAX_API_KEY is not configured")
		jsonError(w, "MiniMax API key is not configured", http.StatusInternalServerError)
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// Video flows send "transcript", document flows send "content"
	content := req.Content
	if content == "" {
		content = req.Transcript
	}
	if content == "" {
		jsonError(w, "Document content is required", http.StatusBadRequest)
		return
	}

	plan, err := h.planner.AnalyzeStudyPlan(r.Context(), content, req.DocumentTitle)
	if err != nil {
		log.Printf("[analyze] analysis failed: %v", err)
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	jsonResponse(w, plan, http.StatusOK)
}
