package api

import (
	"net/http"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recordingAudit struct {
	mu      sync.Mutex
	entries []AuditEntry
}

func (a *recordingAudit) Log(e AuditEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, e)
	return nil
}

func TestOrderAudit(t *testing.T) {
	audit := &recordingAudit{}
	s := newTestServer(WithAuditLogger(audit))

	rec := do(t, s, http.MethodPost, "/orders", orderBody())
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	bad := orderBody()
	bad.IVs = "F9"
	do(t, s, http.MethodPost, "/orders", bad)

	if len(audit.entries) != 2 {
		t.Fatalf("Expected 2 audit entries, got %d", len(audit.entries))
	}

	ok := audit.entries[0]
	if !ok.Success || ok.OrderID != "order-1" || ok.Total != 195000 {
		t.Errorf("Unexpected success entry %+v", ok)
	}
	if ok.RequestID == "" || ok.InputHash == "" {
		t.Errorf("Expected request ID and input hash, got %+v", ok)
	}

	failed := audit.entries[1]
	if failed.Success || failed.Error == "" || failed.OrderID != "" {
		t.Errorf("Unexpected failure entry %+v", failed)
	}
	if failed.InputHash == ok.InputHash {
		t.Error("Different inputs must hash differently")
	}
}

func TestInputHashIgnoresContact(t *testing.T) {
	body := orderBody()
	a, err := body.toOrder()
	if err != nil {
		t.Fatal(err)
	}
	b := a
	b.Player = "Misty"
	b.Discord = "misty#0002"

	if inputHash(a) != inputHash(b) {
		t.Error("Contact fields must not change the input hash")
	}
	b.Species = "Blastoise"
	if inputHash(a) == inputHash(b) {
		t.Error("Species must change the input hash")
	}
}

func TestZapAuditLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := NewZapAuditLogger(zap.New(core))

	if err := l.Log(AuditEntry{OrderID: "order-9", Success: true, Total: 90000}); err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	entries := logs.FilterMessage("order audit").All()
	if len(entries) != 1 {
		t.Fatalf("Expected one audit line, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["order_id"]; got != "order-9" {
		t.Errorf("Expected order_id order-9, got %v", got)
	}
	if entries[0].LoggerName != "audit" {
		t.Errorf("Expected logger name audit, got %q", entries[0].LoggerName)
	}
}
