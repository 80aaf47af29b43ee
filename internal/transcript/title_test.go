package transcript

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTitleResolver_Resolve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("format"); got != "json" {
			t.Errorf("format = %q, want json", got)
		}
		w.Write([]byte(`{"title": "  A Video Title ", "author_name": "someone"}`))
	}))
	defer server.Close()

	resolver := NewTitleResolver(server.Client())
	resolver.baseURL = server.URL

	if got := resolver.Resolve(context.Background(), "abc123"); got != "A Video Title" {
		t.Errorf("Resolve() = %q, want %q", got, "A Video Title")
	}
}

func TestTitleResolver_FailuresYieldEmpty(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name:    "non-200 status",
			handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) },
		},
		{
			name:    "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("not json")) },
		},
		{
			name:    "missing title field",
			handler: func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"author_name": "x"}`)) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			resolver := NewTitleResolver(server.Client())
			resolver.baseURL = server.URL

			if got := resolver.Resolve(context.Background(), "abc123"); got != "" {
				t.Errorf("Resolve() = %q, want empty string", got)
			}
		})
	}
}

func TestPlaceholderTitle(t *testing.T) {
	if got := PlaceholderTitle("abc123"); got != "Video abc123" {
		t.Errorf("PlaceholderTitle() = %q, want %q", got, "Video abc123")
	}
}
