package api

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"mandashop/core/order"
	"mandashop/internal/logging"
)

// AuditEntry records one order submission, accepted or not
type AuditEntry struct {
	Timestamp  time.Time `json:"timestamp"`
	RequestID  string    `json:"request_id,omitempty"`
	OrderID    string    `json:"order_id,omitempty"`
	InputHash  string    `json:"input_hash"`
	ClientIP   string    `json:"client_ip,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty"`
	DurationMs int64     `json:"duration_ms"`
	Total      int64     `json:"total,omitempty"`
	Success    bool      `json:"success"`
	Error      string    `json:"error,omitempty"`
}

// AuditLogger stores audit entries
type AuditLogger interface {
	Log(entry AuditEntry) error
}

// ZapAuditLogger writes audit entries as structured log lines
type ZapAuditLogger struct {
	logger *zap.Logger
}

// NewZapAuditLogger creates an audit logger on top of logger
func NewZapAuditLogger(logger *zap.Logger) *ZapAuditLogger {
	return &ZapAuditLogger{logger: logging.OrNop(logger).Named("audit")}
}

// Log logs an audit entry
func (l *ZapAuditLogger) Log(e AuditEntry) error {
	l.logger.Info("order audit",
		zap.Time("timestamp", e.Timestamp),
		zap.String("request_id", e.RequestID),
		zap.String("order_id", e.OrderID),
		zap.String("input_hash", e.InputHash),
		zap.String("client_ip", e.ClientIP),
		zap.String("user_agent", e.UserAgent),
		zap.Int64("duration_ms", e.DurationMs),
		zap.Int64("total", e.Total),
		zap.Bool("success", e.Success),
		zap.String("error", e.Error))
	return nil
}

// newAuditEntry starts an entry for an order submission
func newAuditEntry(r *http.Request, requestID string, req order.Request) AuditEntry {
	return AuditEntry{
		Timestamp: time.Now().UTC(),
		RequestID: requestID,
		InputHash: inputHash(req),
		ClientIP:  clientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
	}
}

// MarkFailed marks the audit entry as failed
func (e *AuditEntry) MarkFailed(err error) {
	e.Success = false
	e.Error = err.Error()
}

// SetDuration sets the duration
func (e *AuditEntry) SetDuration(d time.Duration) {
	e.DurationMs = d.Milliseconds()
}

// inputHash identifies identical submissions. Contact fields are excluded.
func inputHash(req order.Request) string {
	req.Player = ""
	req.Discord = ""
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
