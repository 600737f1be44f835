package webhook

import (
	"context"
	"crypto/hmac"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func testEvent() *Event {
	return &Event{
		Type:      "batch.completed",
		JobID:     "batch-abc123",
		Timestamp: 1700000000,
		Data:      map[string]any{"successful": 3, "failed": 2},
	}
}

func TestDeliver_SignatureVerifiesAgainstBody(t *testing.T) {
	var gotBody []byte
	var gotSig, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		gotBody, err = io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read body: %v", err)
		}
		gotSig = r.Header.Get("X-Quoted-Signature")
		gotUA = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	if err := Deliver(context.Background(), srv.URL, "hush", testEvent()); err != nil {
		t.Fatalf("deliver: %v", err)
	}

	if !strings.HasPrefix(gotSig, "sha256=") {
		t.Fatalf("signature = %q, want sha256= prefix", gotSig)
	}
	want, err := hex.DecodeString(strings.TrimPrefix(gotSig, "sha256="))
	if err != nil {
		t.Fatalf("signature is not hex: %v", err)
	}
	got, err := hex.DecodeString(Sign(gotBody, "hush"))
	if err != nil {
		t.Fatalf("recomputed signature is not hex: %v", err)
	}
	if !hmac.Equal(want, got) {
		t.Error("signature does not verify against the delivered body")
	}
	if gotUA != "Quoted-Webhook/1.0" {
		t.Errorf("user agent = %q", gotUA)
	}

	var event Event
	if err := json.Unmarshal(gotBody, &event); err != nil {
		t.Fatalf("body is not an event: %v", err)
	}
	if event.Type != "batch.completed" || event.JobID != "batch-abc123" {
		t.Errorf("event = %+v", event)
	}
}

func TestDeliver_NoSecretNoSignature(t *testing.T) {
	var gotSig string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSig = r.Header.Get("X-Quoted-Signature")
	}))
	defer srv.Close()

	if err := Deliver(context.Background(), srv.URL, "", testEvent()); err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if gotSig != "" {
		t.Errorf("signature = %q, want none without a secret", gotSig)
	}
}

func TestDeliver_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if err := Deliver(context.Background(), srv.URL, "hush", testEvent()); err == nil {
		t.Error("500 endpoint should fail delivery")
	}
}

// withFastRetries collapses the retry schedule for tests.
func withFastRetries(t *testing.T) {
	t.Helper()
	saved := retrySchedule
	retrySchedule = []time.Duration{0, time.Millisecond, time.Millisecond}
	t.Cleanup(func() { retrySchedule = saved })
}

func TestDeliverWithRetry_RecoversFromFailure(t *testing.T) {
	withFastRetries(t)

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "down", http.StatusInternalServerError)
			return
		}
	}))
	defer srv.Close()

	if err := deliverWithRetry(srv.URL, "hush", testEvent()); err != nil {
		t.Fatalf("retry should recover once the endpoint comes back: %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("calls = %d, want 3 (two failures then success)", got)
	}
}

func TestDeliverWithRetry_Exhausted(t *testing.T) {
	withFastRetries(t)

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if err := deliverWithRetry(srv.URL, "hush", testEvent()); err == nil {
		t.Fatal("all attempts failing should surface the last error")
	}
	if got := calls.Load(); got != int32(len(retrySchedule)) {
		t.Errorf("calls = %d, want one per scheduled attempt", got)
	}
}
