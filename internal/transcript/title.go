package transcript

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

// TitleResolver looks up a video's display title through YouTube's
// public oEmbed endpoint. Lookups are best-effort: any failure yields
// an empty string and is never surfaced to the caller.
type TitleResolver struct {
	httpClient *http.Client
	baseURL    string
}

func NewTitleResolver(client *http.Client) *TitleResolver {
	return &TitleResolver{
		httpClient: client,
		baseURL:    "https://www.youtube.com/oembed",
	}
}

func (r *TitleResolver) Resolve(ctx context.Context, videoID string) string {
	params := url.Values{}
	params.Set("url", "https://www.youtube.com/watch?v="+videoID)
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, "GET", r.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return ""
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	var data struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return ""
	}
	return strings.TrimSpace(data.Title)
}

// PlaceholderTitle is the deterministic fallback used when the real
// title cannot be resolved.
func PlaceholderTitle(videoID string) string {
	return "Video " + videoID
}
