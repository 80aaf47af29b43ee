package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	innertubePlayerEndpoint = "https://www.youtube.com/youtubei/v1/player"
	innertubeClientName     = "WEB"
	innertubeClientVersion  = "2.20240101.00.00"
)

// InnertubeStrategy fetches captions via YouTube's internal Innertube
// player API. Used as a fallback when the timedtext path is exhausted;
// it reaches caption tracks the plain timedtext endpoint sometimes
// refuses to serve.
type InnertubeStrategy struct {
	httpClient *http.Client
	endpoint   string
	lang       string
}

func NewInnertubeStrategy(client *http.Client) *InnertubeStrategy {
	return &InnertubeStrategy{
		httpClient: client,
		endpoint:   innertubePlayerEndpoint,
		lang:       "en",
	}
}

func (s *InnertubeStrategy) Name() string { return "innertube" }

type innertubePlayerRequest struct {
	Context innertubeContext `json:"context"`
	VideoID string           `json:"videoId"`
}

type innertubeContext struct {
	Client innertubeClient `json:"client"`
}

type innertubeClient struct {
	ClientName    string `json:"clientName"`
	ClientVersion string `json:"clientVersion"`
	HL            string `json:"hl"`
	GL            string `json:"gl"`
}

type innertubePlayerResponse struct {
	PlayabilityStatus struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	Captions struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" for auto-generated tracks
}

func (s *InnertubeStrategy) Fetch(ctx context.Context, videoID string) ([]Segment, error) {
	info, err := s.playerInfo(ctx, videoID)
	if err != nil {
		return nil, err
	}

	switch info.PlayabilityStatus.Status {
	case "", "OK":
	case "ERROR", "UNPLAYABLE", "LOGIN_REQUIRED":
		reason := info.PlayabilityStatus.Reason
		if reason == "" {
			reason = info.PlayabilityStatus.Status
		}
		return nil, fmt.Errorf("video unavailable: %s", reason)
	default:
		return nil, fmt.Errorf("unexpected playability status %s", info.PlayabilityStatus.Status)
	}

	track := pickCaptionTrack(info.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks, s.lang)
	if track == nil {
		return nil, fmt.Errorf("no captions available for video %s via innertube", videoID)
	}

	return s.fetchTrack(ctx, track.BaseURL)
}

func (s *InnertubeStrategy) playerInfo(ctx context.Context, videoID string) (*innertubePlayerResponse, error) {
	reqBody := innertubePlayerRequest{
		Context: innertubeContext{
			Client: innertubeClient{
				ClientName:    innertubeClientName,
				ClientVersion: innertubeClientVersion,
				HL:            "en",
				GL:            "US",
			},
		},
		VideoID: videoID,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("innertube request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{Status: resp.StatusCode, Message: "innertube player request for video " + videoID}
	}

	var info innertubePlayerResponse
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("parse innertube response: %w", err)
	}
	return &info, nil
}

// pickCaptionTrack prefers a manually-authored track in lang, then an
// auto-generated one in lang, then whatever track exists.
func pickCaptionTrack(tracks []captionTrack, lang string) *captionTrack {
	if len(tracks) == 0 {
		return nil
	}
	var asr *captionTrack
	for i := range tracks {
		t := &tracks[i]
		if t.LanguageCode != lang && !strings.HasPrefix(t.LanguageCode, lang+"-") {
			continue
		}
		if t.Kind == "asr" {
			if asr == nil {
				asr = t
			}
			continue
		}
		return t
	}
	if asr != nil {
		return asr
	}
	return &tracks[0]
}

func (s *InnertubeStrategy) fetchTrack(ctx context.Context, baseURL string) ([]Segment, error) {
	trackURL := baseURL
	if !strings.Contains(trackURL, "fmt=") {
		sep := "?"
		if strings.Contains(trackURL, "?") {
			sep = "&"
		}
		trackURL += sep + "fmt=json3"
	}

	req, err := http.NewRequestWithContext(ctx, "GET", trackURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("caption track request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{Status: resp.StatusCode, Message: "caption track request"}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read caption track: %w", err)
	}

	segments, err := parseTimedtext(body)
	if err != nil {
		return nil, fmt.Errorf("parse caption track: %w", err)
	}
	return segments, nil
}
