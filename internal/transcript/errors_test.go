package transcript

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   ErrorCode
		wantStatus int
	}{
		{
			name:       "captions disabled message",
			err:        errors.New("Transcripts are disabled for this video"),
			wantCode:   CodeMissingCaptions,
			wantStatus: http.StatusOK,
		},
		{
			name:       "no transcript data",
			err:        errors.New("no transcript data received"),
			wantCode:   CodeMissingCaptions,
			wantStatus: http.StatusOK,
		},
		{
			name:       "subtitles mention",
			err:        errors.New("subtitles not present on this track"),
			wantCode:   CodeMissingCaptions,
			wantStatus: http.StatusOK,
		},
		{
			name:       "400 with transcript marker",
			err:        &UpstreamError{Status: 400, Message: "get_transcript rejected"},
			wantCode:   CodeMissingCaptions,
			wantStatus: http.StatusOK,
		},
		{
			name:       "upstream 404",
			err:        &UpstreamError{Status: 404, Message: "watch page"},
			wantCode:   CodeVideoNotFound,
			wantStatus: http.StatusOK,
		},
		{
			name:       "video unavailable message",
			err:        errors.New("video unavailable: This video is private"),
			wantCode:   CodeVideoNotFound,
			wantStatus: http.StatusOK,
		},
		{
			name:       "upstream 429",
			err:        &UpstreamError{Status: 429, Message: "slow down"},
			wantCode:   CodeRateLimited,
			wantStatus: http.StatusTooManyRequests,
		},
		{
			name:       "429 in message",
			err:        errors.New("request failed with code 429"),
			wantCode:   CodeRateLimited,
			wantStatus: http.StatusTooManyRequests,
		},
		{
			name:       "upstream 403",
			err:        &UpstreamError{Status: 403, Message: "forbidden"},
			wantCode:   CodeBlocked,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "blocked message",
			err:        errors.New("request was blocked by consent wall"),
			wantCode:   CodeBlocked,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "plain 400",
			err:        &UpstreamError{Status: 400, Message: "malformed id"},
			wantCode:   CodeBadRequest,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "upstream 500",
			err:        &UpstreamError{Status: 500, Message: "server exploded"},
			wantCode:   CodeUpstreamError,
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "upstream 503",
			err:        &UpstreamError{Status: 503, Message: "overloaded"},
			wantCode:   CodeUpstreamError,
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "status embedded in message text",
			err:        errors.New("request failed with status code 503"),
			wantCode:   CodeUpstreamError,
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "unclassifiable error",
			err:        errors.New("something odd happened"),
			wantCode:   CodeInternalError,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "missing captions wins over rate limit status",
			err:        &UpstreamError{Status: 429, Message: "subtitles are disabled"},
			wantCode:   CodeMissingCaptions,
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrapped upstream error",
			err:        fmt.Errorf("timedtext fetch: %w", &UpstreamError{Status: 429}),
			wantCode:   CodeRateLimited,
			wantStatus: http.StatusTooManyRequests,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("Classify() code = %s, want %s", got.Code, tt.wantCode)
			}
			if got.HTTPStatus != tt.wantStatus {
				t.Errorf("Classify() status = %d, want %d", got.HTTPStatus, tt.wantStatus)
			}
			if got.RawMessage != tt.err.Error() {
				t.Errorf("Classify() raw = %q, want %q", got.RawMessage, tt.err.Error())
			}
			if got.UserMessage == "" {
				t.Error("Classify() produced empty user message")
			}
		})
	}
}

func TestClassify_VideoNotFoundMentionsUnavailable(t *testing.T) {
	got := Classify(&UpstreamError{Status: 404})
	if !strings.Contains(got.UserMessage, "unavailable") {
		t.Errorf("VIDEO_NOT_FOUND user message = %q, want it to mention %q", got.UserMessage, "unavailable")
	}
}

func TestExtractStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "typed upstream error", err: &UpstreamError{Status: 502}, want: 502},
		{name: "status code in message", err: errors.New("Request failed with status code 404"), want: 404},
		{name: "bare status in message", err: errors.New("upstream returned status 429"), want: 429},
		{name: "no status anywhere", err: errors.New("connection reset"), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractStatus(tt.err); got != tt.want {
				t.Errorf("extractStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}
