// Package api - Thin HTTP layer over the notation parser, resolver and order composer.
// The API never prices anything itself.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mandashop/adapters/webhook"
	"mandashop/core/notation"
	"mandashop/core/order"
	"mandashop/core/pricing"
	"mandashop/core/types"
	"mandashop/internal/errors"
	"mandashop/internal/logging"
)

// maxBodySize limits request bodies
const maxBodySize = 1 << 20

// Notifier delivers order notifications to the shop
type Notifier interface {
	Send(ctx context.Context, msg *webhook.Message) error
}

// Server is the API server
type Server struct {
	resolver *pricing.Resolver
	composer *order.Composer
	notifier Notifier
	audit    AuditLogger
	logger   *zap.Logger
	mux      *http.ServeMux
	version  string
}

// Option configures a Server
type Option func(*Server)

// WithNotifier sends a notification for every composed order
func WithNotifier(n Notifier) Option {
	return func(s *Server) {
		s.notifier = n
	}
}

// WithAuditLogger records every order submission
func WithAuditLogger(a AuditLogger) Option {
	return func(s *Server) {
		s.audit = a
	}
}

// WithLogger sets the request logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		s.logger = logging.OrNop(logger).Named("api")
	}
}

// NewServer creates a new API server
func NewServer(version string, resolver *pricing.Resolver, composer *order.Composer, opts ...Option) *Server {
	s := &Server{
		resolver: resolver,
		composer: composer,
		logger:   logging.OrNop(nil).Named("api"),
		mux:      http.NewServeMux(),
		version:  version,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /validate", s.handleValidate)
	s.mux.HandleFunc("POST /quote", s.handleQuote)
	s.mux.HandleFunc("POST /orders", s.handleOrder)
	s.mux.HandleFunc("GET /pricing", s.handlePricing)

	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
}

// handleValidate handles POST /validate
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if !s.decode(w, r, &req) {
		return
	}

	line, err := parseLine(req.Line)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	spec, err := notation.Parse(req.IVs, line)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, ValidateResponse{
		Valid:     true,
		Line:      line.String(),
		Canonical: spec.Canonical(),
		Spec:      spec,
	}, http.StatusOK)
}

// handleQuote handles POST /quote
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if !s.decode(w, r, &req) {
		return
	}

	line, err := parseLine(req.Line)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	breeding, err := types.ParseBreedingChoice(req.Breeding)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.TypeInput, "invalid breeding choice", err))
		return
	}

	spec, err := notation.Parse(req.IVs, line)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	quote := s.resolver.Quote(spec, line, breeding)
	s.writeJSON(w, QuoteResponse{
		Line:         line.String(),
		Canonical:    spec.Canonical(),
		Spec:         spec,
		Quote:        quote,
		PriceDisplay: types.FormatK(quote.Price),
	}, http.StatusOK)
}

// handleOrder handles POST /orders
func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	if !s.decode(w, r, &req) {
		return
	}

	orderReq, err := req.toOrder()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	start := time.Now()
	entry := newAuditEntry(r, w.Header().Get(requestIDHeader), orderReq)
	summary, err := s.composer.Compose(r.Context(), orderReq)
	entry.SetDuration(time.Since(start))
	if err != nil {
		entry.MarkFailed(err)
		s.recordAudit(entry)
		s.writeError(w, r, err)
		return
	}
	entry.OrderID = summary.ID
	entry.Total = summary.Total
	s.recordAudit(entry)

	s.writeJSON(w, OrderResponse{
		Order:        summary,
		TotalDisplay: types.FormatKRounded(summary.Total),
		Notification: s.notify(r.Context(), summary),
	}, http.StatusCreated)
}

func (s *Server) recordAudit(entry AuditEntry) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Log(entry); err != nil {
		s.logger.Warn("failed to record audit entry",
			zap.String("request_id", entry.RequestID),
			zap.Error(err))
	}
}

// notify sends the order notification. A failed notification does not fail
// the order; the summary is already composed.
func (s *Server) notify(ctx context.Context, summary *order.Summary) NotificationStatus {
	if s.notifier == nil {
		return NotificationSkipped
	}
	if err := s.notifier.Send(ctx, webhook.OrderMessage(summary)); err != nil {
		s.logger.Error("order notification failed",
			zap.String("order_id", summary.ID),
			zap.Error(err))
		return NotificationFailed
	}
	return NotificationSent
}

// handlePricing handles GET /pricing
func (s *Server) handlePricing(w http.ResponseWriter, r *http.Request) {
	table := s.resolver.Table()
	s.writeJSON(w, PricingResponse{
		Table:   table,
		Missing: table.Missing(),
	}, http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":     s.version,
		"service":     "mandashop",
		"api_version": "v1",
	}, http.StatusOK)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(dst); err != nil {
		s.writeJSON(w, ErrorResponse{Error: ErrorBody{Code: "INVALID_JSON", Message: err.Error()}}, http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError maps domain errors onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *notation.ValidationError
	if errors.As(err, &verr) {
		s.writeJSON(w, ErrorResponse{Error: ErrorBody{
			Code:    string(verr.Kind),
			Message: verr.Message(),
			Reasons: verr.Reasons,
		}}, http.StatusUnprocessableEntity)
		return
	}

	body := ErrorBody{Code: string(errors.TypeInternal), Message: "internal error"}
	var derr *errors.Error
	if errors.As(err, &derr) {
		body.Code = string(derr.Type)
		body.Message = derr.Detail()
	}

	status := http.StatusInternalServerError
	switch errors.TypeOf(err) {
	case errors.TypeInput:
		status = http.StatusBadRequest
	case errors.TypeNotFound:
		status = http.StatusNotFound
	case errors.TypeIneligible, errors.TypeMalformedNotation, errors.TypeEmptyInput:
		status = http.StatusUnprocessableEntity
	case errors.TypeNetwork:
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", w.Header().Get(requestIDHeader)),
			zap.Error(err))
	}
	s.writeJSON(w, ErrorResponse{Error: body}, status)
}

const requestIDHeader = "X-Request-ID"

// ServeHTTP implements http.Handler. Every response carries a request ID.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set(requestIDHeader, id)

	start := time.Now()
	s.mux.ServeHTTP(w, r)
	s.logger.Debug("request",
		zap.String("request_id", id),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Duration("duration", time.Since(start)))
}

// ListenAndServe starts the server
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

func parseLine(raw string) (types.ProductLine, error) {
	if raw == "" {
		return types.LineStandard, nil
	}
	line, err := types.ParseProductLine(raw)
	if err != nil {
		return "", errors.Wrapf(errors.TypeInput, err, "invalid product line %q", raw)
	}
	return line, nil
}

func (req *OrderRequest) toOrder() (order.Request, error) {
	line, err := parseLine(req.Line)
	if err != nil {
		return order.Request{}, err
	}
	breeding, err := types.ParseBreedingChoice(req.Breeding)
	if err != nil {
		return order.Request{}, errors.Wrap(errors.TypeInput, "invalid breeding choice", err)
	}

	return order.Request{
		Player:        req.Player,
		Discord:       req.Discord,
		Line:          line,
		Species:       req.Species,
		Nature:        req.Nature,
		Ability:       req.Ability,
		Gender:        req.Gender,
		IVs:           req.IVs,
		Breeding:      breeding,
		HiddenAbility: req.HiddenAbility,
		EggMoves:      req.EggMoves,
		Level:         req.Level,
		EVs:           req.EVs,
		Megastone:     req.Megastone,
	}, nil
}
