package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/chrono-task/backend/internal/transcript"
)

// TranscriptAcquirer fetches a transcript for a video.
type TranscriptAcquirer interface {
	Acquire(ctx context.Context, videoID string) (*transcript.Result, error)
}

type TranscriptHandler struct {
	acquirer   TranscriptAcquirer
	production bool
}

func NewTranscriptHandler(acquirer TranscriptAcquirer, production bool) *TranscriptHandler {
	return &TranscriptHandler{acquirer: acquirer, production: production}
}

type transcriptSuccessResponse struct {
	Success       bool   `json:"success"`
	HasTranscript bool   `json:"hasTranscript"`
	Transcript    string `json:"transcript"`
	Title         string `json:"title"`
}

type transcriptErrorResponse struct {
	Success       bool                 `json:"success"`
	HasTranscript bool                 `json:"hasTranscript"`
	Error         string               `json:"error"`
	Code          transcript.ErrorCode `json:"code"`
	Details       string               `json:"details,omitempty"`
}

// Get serves GET /api/transcript?videoId=<id>.
func (h *TranscriptHandler) Get(w http.ResponseWriter, r *http.Request) {
	videoID := r.URL.Query().Get("videoId")
	if videoID == "" {
		jsonError(w, "Video ID is required", http.StatusBadRequest)
		return
	}

	result, err := h.acquirer.Acquire(r.Context(), videoID)
	if err == nil {
		jsonResponse(w, transcriptSuccessResponse{
			Success:       true,
			HasTranscript: true,
			Transcript:    result.Transcript,
			Title:         result.Title,
		}, http.StatusOK)
		return
	}

	var classified *transcript.ClassifiedError
	if !errors.As(err, &classified) {
		classified = transcript.Classify(err)
	}

	if classified.HTTPStatus >= 500 {
		log.Printf("[transcript] all fetch methods failed for %s: %s", videoID, classified.RawMessage)
	} else {
		log.Printf("[transcript] unavailable for %s (%s): %s", videoID, classified.Code, classified.RawMessage)
	}

	body := transcriptErrorResponse{
		Error: classified.UserMessage,
		Code:  classified.Code,
	}
	// Raw upstream messages stay out of production responses
	if !h.production {
		body.Details = classified.RawMessage
	}

	jsonResponse(w, body, classified.HTTPStatus)
}
