// Package webhook delivers order notifications to chat webhooks.
// Supports Discord, Slack and custom JSON targets.
package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"mandashop/core/order"
	"mandashop/internal/logging"
)

// Provider is a webhook provider type
type Provider string

const (
	ProviderDiscord Provider = "discord"
	ProviderSlack   Provider = "slack"
	ProviderCustom  Provider = "custom"
)

// discordContentLimit is the maximum message length Discord accepts
const discordContentLimit = 2000

// Config configures webhook behavior
type Config struct {
	// Provider type
	Provider Provider `json:"provider"`

	// Endpoint URL
	Endpoint string `json:"endpoint"`

	// Secret signs custom payloads (X-Signature, hex HMAC-SHA256)
	Secret string `json:"secret"`

	// Headers to include
	Headers map[string]string `json:"headers"`

	// Timeout for requests
	Timeout time.Duration `json:"timeout"`

	// RetryCount for failed requests
	RetryCount int `json:"retry_count"`

	// RetryDelay between retries
	RetryDelay time.Duration `json:"retry_delay"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig(provider Provider) *Config {
	return &Config{
		Provider:   provider,
		Timeout:    10 * time.Second,
		RetryCount: 2,
		RetryDelay: 1 * time.Second,
		Headers:    make(map[string]string),
	}
}

// Adapter is the webhook adapter
type Adapter struct {
	config     *Config
	httpClient *http.Client
	logger     *zap.Logger
}

// New creates a new webhook adapter
func New(config *Config) *Adapter {
	return &Adapter{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: logging.OrNop(nil).Named("webhook"),
	}
}

// WithLogger replaces the adapter's logger
func (a *Adapter) WithLogger(logger *zap.Logger) *Adapter {
	a.logger = logging.OrNop(logger).Named("webhook")
	return a
}

// Message is one notification
type Message struct {
	// Event type, e.g. "order.created"
	Event string `json:"event"`

	// Content is the rendered chat text
	Content string `json:"content"`

	OrderID   string    `json:"order_id,omitempty"`
	Line      string    `json:"line,omitempty"`
	Total     int64     `json:"total,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderMessage builds the notification for a newly composed order
func OrderMessage(s *order.Summary) *Message {
	return &Message{
		Event:     "order.created",
		Content:   order.FormatNotification(s),
		OrderID:   s.ID,
		Line:      s.Request.Line.String(),
		Total:     s.Total,
		Timestamp: s.CreatedAt,
	}
}

// permanentError marks a response that retrying cannot fix
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Send sends the message, retrying transient failures
func (a *Adapter) Send(ctx context.Context, msg *Message) error {
	if a.config.Endpoint == "" {
		return fmt.Errorf("webhook endpoint is not configured")
	}

	var lastErr error
	for attempt := 0; attempt <= a.config.RetryCount; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(a.config.RetryDelay):
			}
		}

		err := a.sendOnce(ctx, msg)
		if err == nil {
			a.logger.Debug("webhook delivered",
				zap.String("event", msg.Event),
				zap.String("order_id", msg.OrderID),
				zap.Int("attempt", attempt+1))
			return nil
		}

		lastErr = err
		a.logger.Warn("webhook attempt failed",
			zap.String("order_id", msg.OrderID),
			zap.Int("attempt", attempt+1),
			zap.Error(err))

		if _, ok := err.(*permanentError); ok {
			break
		}
	}

	return fmt.Errorf("webhook failed: %w", lastErr)
}

func (a *Adapter) sendOnce(ctx context.Context, msg *Message) error {
	body, err := a.formatPayload(msg)
	if err != nil {
		return &permanentError{fmt.Errorf("failed to format payload: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return &permanentError{fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range a.config.Headers {
		req.Header.Set(k, v)
	}
	if a.config.Secret != "" {
		req.Header.Set("X-Signature", a.sign(body))
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		err := fmt.Errorf("webhook returned %d: %s", resp.StatusCode, string(respBody))
		if resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return &permanentError{err}
		}
		return err
	}

	return nil
}

func (a *Adapter) formatPayload(msg *Message) ([]byte, error) {
	switch a.config.Provider {
	case ProviderDiscord, "":
		return json.Marshal(map[string]string{"content": truncate(msg.Content, discordContentLimit)})
	case ProviderSlack:
		return json.Marshal(map[string]string{"text": msg.Content})
	case ProviderCustom:
		return json.Marshal(msg)
	}
	return nil, fmt.Errorf("unknown webhook provider %q", a.config.Provider)
}

// truncate cuts s to at most limit runes
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func (a *Adapter) sign(payload []byte) string {
	mac := hmac.New(sha256.New, []byte(a.config.Secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature verifies an incoming webhook signature
func VerifySignature(payload []byte, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(signature), []byte(expected))
}
