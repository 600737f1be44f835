package crawler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestProbeText_BodyOnSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/robots.txt" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte("User-agent: *\nAllow: /\n"))
	}))
	defer srv.Close()

	got := probeText(context.Background(), newClient(), srv.URL, "/robots.txt", IdentityHeaders(ProfileChrome))
	if got != "User-agent: *\nAllow: /\n" {
		t.Errorf("probe = %q", got)
	}
}

func TestProbeText_NotFoundSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if got := probeText(context.Background(), newClient(), srv.URL, "/llms.txt", nil); got != probeNotFound {
		t.Errorf("404 probe = %q, want %q", got, probeNotFound)
	}
}

func TestProbeText_ServerErrorSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if got := probeText(context.Background(), newClient(), srv.URL, "/robots.txt", nil); got != probeNotFound {
		t.Errorf("500 probe = %q, want %q", got, probeNotFound)
	}
}

func TestProbeText_NetworkErrorSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead := srv.URL
	srv.Close()

	if got := probeText(context.Background(), newClient(), dead, "/robots.txt", nil); got != probeError {
		t.Errorf("refused probe = %q, want %q", got, probeError)
	}
}

func TestNormalizeProfile(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"gptbot", ProfileGPTBot},
		{"chrome", ProfileChrome},
		{"", ProfileComprehensive},
		{"something-else", ProfileChrome},
		{"GPTBot", ProfileChrome},
	}
	for _, tc := range cases {
		if got := NormalizeProfile(tc.in); got != tc.want {
			t.Errorf("NormalizeProfile(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
