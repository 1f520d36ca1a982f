// Package api - API types for notation validation, quoting and orders.
// Line and breeding fields accept the storefront aliases.
package api

import (
	"mandashop/core/notation"
	"mandashop/core/order"
	"mandashop/core/pricing"
	"mandashop/core/types"
)

// ValidateRequest is the input to POST /validate
type ValidateRequest struct {
	IVs  string `json:"ivs"`
	Line string `json:"line,omitempty"`
}

// ValidateResponse is returned for a valid notation
type ValidateResponse struct {
	Valid     bool          `json:"valid"`
	Line      string        `json:"line"`
	Canonical string        `json:"canonical"`
	Spec      *types.IVSpec `json:"spec"`
}

// QuoteRequest is the input to POST /quote
type QuoteRequest struct {
	IVs      string `json:"ivs"`
	Line     string `json:"line,omitempty"`
	Breeding string `json:"breeding,omitempty"`
}

// QuoteResponse is the output of POST /quote
type QuoteResponse struct {
	Line         string           `json:"line"`
	Canonical    string           `json:"canonical"`
	Spec         *types.IVSpec    `json:"spec"`
	Quote        types.PriceQuote `json:"quote"`
	PriceDisplay string           `json:"price_display"`
}

// OrderRequest is the input to POST /orders
type OrderRequest struct {
	Player        string         `json:"player"`
	Discord       string         `json:"discord"`
	Line          string         `json:"line"`
	Species       string         `json:"species"`
	Nature        string         `json:"nature,omitempty"`
	Ability       string         `json:"ability"`
	Gender        string         `json:"gender,omitempty"`
	IVs           string         `json:"ivs"`
	Breeding      string         `json:"breeding"`
	HiddenAbility bool           `json:"hidden_ability,omitempty"`
	EggMoves      []string       `json:"egg_moves,omitempty"`
	Level         int            `json:"level,omitempty"`
	EVs           types.EVSpread `json:"evs,omitempty"`
	Megastone     string         `json:"megastone,omitempty"`
}

// NotificationStatus reports what happened to the shop notification
type NotificationStatus string

const (
	NotificationSent    NotificationStatus = "sent"
	NotificationSkipped NotificationStatus = "skipped"
	NotificationFailed  NotificationStatus = "failed"
)

// OrderResponse is the output of POST /orders
type OrderResponse struct {
	Order        *order.Summary     `json:"order"`
	TotalDisplay string             `json:"total_display"`
	Notification NotificationStatus `json:"notification"`
}

// PricingResponse is the output of GET /pricing
type PricingResponse struct {
	Table   *pricing.Table `json:"table"`
	Missing []string       `json:"missing,omitempty"`
}

// ErrorBody is the error envelope payload
type ErrorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Reasons []notation.Reason `json:"reasons,omitempty"`
}

// ErrorResponse wraps every error returned by the API
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}
