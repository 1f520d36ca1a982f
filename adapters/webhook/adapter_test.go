package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"go.uber.org/goleak"

	"mandashop/core/order"
	"mandashop/core/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"))
}

func testConfig(provider Provider, endpoint string) *Config {
	cfg := DefaultConfig(provider)
	cfg.Endpoint = endpoint
	cfg.RetryDelay = time.Millisecond
	return cfg
}

func TestSendDiscord(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Expected JSON content type, got %q", r.Header.Get("Content-Type"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("Failed to decode body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := New(testConfig(ProviderDiscord, srv.URL)).Send(context.Background(), &Message{Content: "**📦 NEW ORDER**"})
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if got["content"] != "**📦 NEW ORDER**" {
		t.Errorf("Expected content to be forwarded, got %v", got)
	}
}

func TestSendCustomSigned(t *testing.T) {
	cfg := testConfig(ProviderCustom, "")
	cfg.Secret = "s3cret"
	cfg.Headers["X-Shop"] = "mandashop"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if !VerifySignature(body, r.Header.Get("X-Signature"), "s3cret") {
			t.Error("Signature did not verify")
		}
		if r.Header.Get("X-Shop") != "mandashop" {
			t.Errorf("Expected custom header, got %q", r.Header.Get("X-Shop"))
		}
		var msg Message
		if err := json.Unmarshal(body, &msg); err != nil {
			t.Errorf("Failed to decode body: %v", err)
		}
		if msg.OrderID != "order-1" || msg.Total != 125000 {
			t.Errorf("Unexpected message %+v", msg)
		}
	}))
	defer srv.Close()
	cfg.Endpoint = srv.URL

	err := New(cfg).Send(context.Background(), &Message{Event: "order.created", OrderID: "order-1", Total: 125000})
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
}

func TestSendRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if err := New(testConfig(ProviderDiscord, srv.URL)).Send(context.Background(), &Message{Content: "x"}); err != nil {
		t.Fatalf("Expected success on third attempt, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Errorf("Expected 3 calls, got %d", calls)
	}
}

func TestSendDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "unknown webhook", http.StatusNotFound)
	}))
	defer srv.Close()

	err := New(testConfig(ProviderDiscord, srv.URL)).Send(context.Background(), &Message{Content: "x"})
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("Expected 404 error, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("Expected a single call, got %d", calls)
	}
}

func TestSendWithoutEndpoint(t *testing.T) {
	if err := New(DefaultConfig(ProviderDiscord)).Send(context.Background(), &Message{}); err == nil {
		t.Error("Expected error without endpoint")
	}
}

func TestDiscordTruncatesLongContent(t *testing.T) {
	a := New(testConfig(ProviderDiscord, "http://unused"))
	body, err := a.formatPayload(&Message{Content: strings.Repeat("é", 2500)})
	if err != nil {
		t.Fatalf("formatPayload failed: %v", err)
	}
	var payload map[string]string
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if n := utf8.RuneCountInString(payload["content"]); n != discordContentLimit {
		t.Errorf("Expected %d runes, got %d", discordContentLimit, n)
	}
}

func TestOrderMessage(t *testing.T) {
	s := &order.Summary{
		ID:        "order-9",
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Request:   order.Request{Line: types.LineNoGender, Species: "Bronzor", Breeding: types.BreedingBreedable},
		Quote:     types.PriceQuote{BaseTier: types.TierF5, FinalTier: types.TierF5, Price: 120000},
		Total:     120000,
	}

	msg := OrderMessage(s)
	if msg.Event != "order.created" || msg.OrderID != "order-9" || msg.Line != "no-gender" {
		t.Errorf("Unexpected message %+v", msg)
	}
	if !strings.Contains(msg.Content, "NO-GENDER ORDER") || !strings.Contains(msg.Content, "120k") {
		t.Errorf("Unexpected content:\n%s", msg.Content)
	}
}
