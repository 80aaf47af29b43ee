package transcript

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Result is a successfully acquired transcript. Transcript is never
// empty or whitespace-only; Title may be a placeholder.
type Result struct {
	Transcript string
	Title      string
}

type titleResolver interface {
	Resolve(ctx context.Context, videoID string) string
}

// Options configures a Service.
type Options struct {
	// MaxRetries is the per-strategy retry budget (default 3, so 4
	// attempts per strategy).
	MaxRetries int
	// InitialDelay is the first backoff delay; it doubles after each
	// failed attempt (default 1s).
	InitialDelay time.Duration
	// ProxyURL routes strategy traffic through an HTTP proxy. Used
	// when YouTube blocks direct requests. Title lookups stay direct.
	ProxyURL string
	// Sleep overrides the backoff sleep. Tests inject a recorder here.
	Sleep SleepFunc
}

// Service acquires transcripts by trying an ordered list of retrieval
// strategies, each with its own retry budget. Safe for concurrent use;
// every Acquire call keeps its own state.
type Service struct {
	strategies []Strategy
	titles     titleResolver
	retry      RetryConfig
}

func NewService(opts Options) *Service {
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	if opts.InitialDelay == 0 {
		opts.InitialDelay = time.Second
	}

	strategyClient := &http.Client{
		Timeout:   30 * time.Second,
		Transport: proxyTransport(opts.ProxyURL),
	}
	titleClient := &http.Client{Timeout: 10 * time.Second}

	return &Service{
		strategies: []Strategy{
			NewTimedtextStrategy(strategyClient),
			NewInnertubeStrategy(strategyClient),
		},
		titles: NewTitleResolver(titleClient),
		retry: RetryConfig{
			MaxRetries:   opts.MaxRetries,
			InitialDelay: opts.InitialDelay,
			Sleep:        opts.Sleep,
		},
	}
}

func proxyTransport(proxyURL string) http.RoundTripper {
	if proxyURL == "" {
		return http.DefaultTransport
	}
	u, err := url.Parse(proxyURL)
	if err != nil {
		log.Printf("[transcript] invalid YOUTUBE_TRANSCRIPT_PROXY %q, using direct connection: %v", proxyURL, err)
		return http.DefaultTransport
	}
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.Proxy = http.ProxyURL(u)
	return t
}

// Acquire fetches a normalized transcript and best-effort title for
// videoID. Strategies run strictly one at a time in priority order.
// On failure the error is always a *ClassifiedError built from the
// final attempt of the final strategy.
func (s *Service) Acquire(ctx context.Context, videoID string) (*Result, error) {
	var lastErr error

	for _, strategy := range s.strategies {
		var transcript string

		cfg := s.retry
		name := strategy.Name()
		cfg.OnRetry = func(attempt int, err error, delay time.Duration) {
			log.Printf("[transcript] %s attempt %d/%d failed for %s: %v, retrying in %s",
				name, attempt+1, cfg.MaxRetries+1, videoID, err, delay)
		}

		err := Retry(ctx, cfg, func(ctx context.Context) error {
			segments, err := strategy.Fetch(ctx, videoID)
			if err != nil {
				return err
			}
			text := joinSegments(segments)
			if text == "" {
				return errors.New("empty transcript after processing")
			}
			transcript = text
			return nil
		})
		if err == nil {
			title := s.titles.Resolve(ctx, videoID)
			if title == "" {
				title = PlaceholderTitle(videoID)
			}
			log.Printf("[transcript] fetched transcript for %s via %s (%d chars)", videoID, name, len(transcript))
			return &Result{Transcript: transcript, Title: title}, nil
		}

		lastErr = err
		log.Printf("[transcript] strategy %s exhausted for %s: %v", name, videoID, err)
	}

	return nil, Classify(lastErr)
}

// joinSegments concatenates segment texts in order with single spaces,
// collapses runs of whitespace, and trims.
func joinSegments(segments []Segment) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg.Text != "" {
			parts = append(parts, seg.Text)
		}
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}
