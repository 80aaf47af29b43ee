package transcript

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
)

// ErrorCode identifies why transcript acquisition ultimately failed.
// Codes are stable: the frontend keys kind-specific guidance off them.
type ErrorCode string

const (
	CodeMissingCaptions ErrorCode = "MISSING_CAPTIONS"
	CodeVideoNotFound   ErrorCode = "VIDEO_NOT_FOUND"
	CodeRateLimited     ErrorCode = "RATE_LIMITED"
	CodeBlocked         ErrorCode = "BLOCKED"
	CodeBadRequest      ErrorCode = "BAD_REQUEST"
	CodeUpstreamError   ErrorCode = "UPSTREAM_ERROR"
	CodeInternalError   ErrorCode = "INTERNAL_ERROR"
)

// UpstreamError is a provider failure that carries an HTTP-like status.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream status %d", e.Status)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// ClassifiedError is the single error produced for a failed acquisition.
// HTTPStatus is the status the API boundary returns to its caller;
// MISSING_CAPTIONS and VIDEO_NOT_FOUND map to 200 because a video
// without captions is an expected outcome, not a system failure.
type ClassifiedError struct {
	Code        ErrorCode
	HTTPStatus  int
	UserMessage string
	RawMessage  string
}

func (e *ClassifiedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.RawMessage)
}

var statusPattern = regexp.MustCompile(`(?i)status(?: code)?\s+(\d{3})`)

// extractStatus pulls an HTTP-like status out of an arbitrary provider
// error: a typed UpstreamError if present, otherwise a "status NNN"
// marker in the message. Returns 0 when no status can be found.
func extractStatus(err error) int {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Status
	}
	if m := statusPattern.FindStringSubmatch(err.Error()); m != nil {
		if n, convErr := strconv.Atoi(m[1]); convErr == nil {
			return n
		}
	}
	return 0
}

// Classify maps a raw provider error to a stable (code, status, message)
// triple. Pure function, checked in a fixed order; the first matching
// rule wins.
func Classify(err error) *ClassifiedError {
	rawMessage := err.Error()
	status := extractStatus(err)
	msg := strings.ToLower(rawMessage)

	missingCaptions := strings.Contains(msg, "no transcript") ||
		strings.Contains(msg, "captions") ||
		strings.Contains(msg, "subtitles") ||
		strings.Contains(msg, "transcript is disabled") ||
		strings.Contains(msg, "transcripts are disabled") ||
		(status == http.StatusBadRequest && strings.Contains(msg, "get_transcript"))

	if missingCaptions {
		return &ClassifiedError{
			Code:        CodeMissingCaptions,
			HTTPStatus:  http.StatusOK,
			UserMessage: "No captions/transcript are available for this video.",
			RawMessage:  rawMessage,
		}
	}

	videoNotFound := status == http.StatusNotFound ||
		strings.Contains(msg, "video unavailable") ||
		strings.Contains(msg, "not found") ||
		strings.Contains(msg, "private") ||
		strings.Contains(msg, "unavailable")

	if videoNotFound {
		return &ClassifiedError{
			Code:        CodeVideoNotFound,
			HTTPStatus:  http.StatusOK,
			UserMessage: "This video is unavailable (private, removed, or not found).",
			RawMessage:  rawMessage,
		}
	}

	if status == http.StatusTooManyRequests || strings.Contains(msg, "429") {
		return &ClassifiedError{
			Code:        CodeRateLimited,
			HTTPStatus:  http.StatusTooManyRequests,
			UserMessage: "YouTube is rate limiting transcript requests. Please try again in a bit.",
			RawMessage:  rawMessage,
		}
	}

	if status == http.StatusForbidden || strings.Contains(msg, "403") || strings.Contains(msg, "blocked") {
		return &ClassifiedError{
			Code:        CodeBlocked,
			HTTPStatus:  http.StatusForbidden,
			UserMessage: "YouTube blocked this transcript request. Try again later or configure a proxy (YOUTUBE_TRANSCRIPT_PROXY).",
			RawMessage:  rawMessage,
		}
	}

	if status == http.StatusBadRequest {
		return &ClassifiedError{
			Code:        CodeBadRequest,
			HTTPStatus:  http.StatusBadRequest,
			UserMessage: "Invalid request. Please double-check the YouTube video URL/ID and try again.",
			RawMessage:  rawMessage,
		}
	}

	if status >= 500 {
		return &ClassifiedError{
			Code:        CodeUpstreamError,
			HTTPStatus:  http.StatusBadGateway,
			UserMessage: "YouTube returned an upstream error while fetching the transcript. Please try again later.",
			RawMessage:  rawMessage,
		}
	}

	return &ClassifiedError{
		Code:        CodeInternalError,
		HTTPStatus:  http.StatusInternalServerError,
		UserMessage: "Failed to fetch transcript.",
		RawMessage:  rawMessage,
	}
}
