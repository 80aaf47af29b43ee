package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// TimedtextStrategy fetches captions from YouTube's timedtext API.
// This is the primary retrieval path.
type TimedtextStrategy struct {
	httpClient *http.Client
	baseURL    string
	lang       string
}

func NewTimedtextStrategy(client *http.Client) *TimedtextStrategy {
	return &TimedtextStrategy{
		httpClient: client,
		baseURL:    "https://www.youtube.com/api/timedtext",
		lang:       "en",
	}
}

func (s *TimedtextStrategy) Name() string { return "timedtext" }

func (s *TimedtextStrategy) Fetch(ctx context.Context, videoID string) ([]Segment, error) {
	params := url.Values{}
	params.Set("v", videoID)
	params.Set("lang", s.lang)
	params.Set("fmt", "json3")

	req, err := http.NewRequestWithContext(ctx, "GET", s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("timedtext request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{Status: resp.StatusCode, Message: "timedtext request for video " + videoID}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read timedtext response: %w", err)
	}

	// The timedtext endpoint answers 200 with an empty body when the
	// video has no caption track in the requested language.
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, fmt.Errorf("no captions track for video %s in language %s", videoID, s.lang)
	}

	segments, err := parseTimedtext(body)
	if err != nil {
		return nil, fmt.Errorf("parse timedtext response: %w", err)
	}
	return segments, nil
}

// timedtextResponse is the json3 caption payload.
type timedtextResponse struct {
	Events []timedtextEvent `json:"events"`
}

type timedtextEvent struct {
	TStartMs    int64          `json:"tStartMs"`
	DDurationMs int64          `json:"dDurationMs"`
	Segs        []timedtextSeg `json:"segs"`
}

type timedtextSeg struct {
	UTF8 string `json:"utf8"`
}

func parseTimedtext(data []byte) ([]Segment, error) {
	var resp timedtextResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}

	var segments []Segment
	for _, event := range resp.Events {
		// Window-definition events carry no segs
		if len(event.Segs) == 0 {
			continue
		}
		var text strings.Builder
		for _, seg := range event.Segs {
			text.WriteString(seg.UTF8)
		}
		segments = append(segments, Segment{
			Text:     text.String(),
			Start:    float64(event.TStartMs) / 1000.0,
			Duration: float64(event.DDurationMs) / 1000.0,
		})
	}
	return segments, nil
}
