package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/chrono-task/backend/internal/search"
)

type SearchHandler struct {
	searcher WebSearcher
}

func NewSearchHandler(searcher WebSearcher) *SearchHandler {
	return &SearchHandler{searcher: searcher}
}

type searchRequest struct {
	Query string `json:"query"`
}

type searchResponse struct {
	Results []search.Result `json:"results"`
	Error   string          `json:"error,omitempty"`
}

// Search serves POST /api/search. Upstream problems degrade to empty
// results with HTTP 200 so the chat flow never breaks on a missing key.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		jsonError(w, "Search query is required", http.StatusBadRequest)
		return
	}

	results, err := h.searcher.Search(r.Context(), req.Query)
	if err != nil {
		if errors.Is(err, search.ErrNotConfigured) {
			log.Println("[search] BRAVE_SEARCH_API_KEY is not configured")
			jsonResponse(w, searchResponse{Results: []search.Result{}, Error: "Search API not configured"}, http.StatusOK)
			return
		}
		log.Printf("[search] search failed: %v", err)
		jsonResponse(w, searchResponse{Results: []search.Result{}, Error: "Search failed"}, http.StatusOK)
		return
	}

	if results == nil {
		results = []search.Result{}
	}
	jsonResponse(w, searchResponse{Results: results}, http.StatusOK)
}
