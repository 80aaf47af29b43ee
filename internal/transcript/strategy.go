package transcript

import "context"

// Segment is one caption fragment as returned by an upstream provider.
type Segment struct {
	Text     string
	Start    float64 // seconds
	Duration float64 // seconds
}

// Strategy is one independent way of retrieving a video's caption
// track. Strategies are tried in priority order; each gets its own
// retry budget.
type Strategy interface {
	// Fetch retrieves the caption segments for a video, in order.
	Fetch(ctx context.Context, videoID string) ([]Segment, error)
	// Name returns the strategy name for logging.
	Name() string
}
