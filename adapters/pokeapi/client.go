// Package pokeapi looks up species data from a PokeAPI-compatible service.
package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"mandashop/core/types"
	"mandashop/internal/errors"
	"mandashop/internal/logging"
)

// DefaultBaseURL is the public PokeAPI
const DefaultBaseURL = "https://pokeapi.co/api/v2"

// speciesResponse is the subset of /pokemon-species/{name} we read
type speciesResponse struct {
	Name        string `json:"name"`
	IsLegendary bool   `json:"is_legendary"`
	IsMythical  bool   `json:"is_mythical"`

	// GenderRate is -1 for genderless species
	GenderRate int `json:"gender_rate"`
}

// Client fetches species data
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	cache      *Cache
	logger     *zap.Logger

	// inflight collapses concurrent lookups of the same slug
	inflight singleflight.Group
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout bounds a single upstream lookup. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logging.OrNop(logger).Named("pokeapi")
	}
}

// NewClient creates a client against baseURL. cache may be nil to disable caching.
func NewClient(baseURL string, cache *Cache, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		timeout:    10 * time.Second,
		cache:      cache,
		logger:     logging.OrNop(nil).Named("pokeapi"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NormalizeName turns a display name such as "Mr. Mime" into the API slug "mr-mime".
func NormalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.NewReplacer(".", "", "'", "", "’", "", ":", "").Replace(name)
	return strings.Join(strings.Fields(name), "-")
}

// Species returns the eligibility data of a species.
func (c *Client) Species(ctx context.Context, name string) (*types.Species, error) {
	key := NormalizeName(name)
	if key == "" {
		return nil, errors.Input("species name is required")
	}

	if c.cache != nil {
		if s, ok := c.cache.Get(key); ok {
			return s, nil
		}
	}

	// The shared fetch outlives any single caller; each caller only stops waiting.
	ch := c.inflight.DoChan(key, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		return c.fetch(fetchCtx, key, name)
	})

	select {
	case <-ctx.Done():
		return nil, errors.Network("species lookup cancelled", ctx.Err()).WithContext("species", key)
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			c.logger.Debug("species lookup shared", zap.String("species", key))
		}
		return res.Val.(*types.Species), nil
	}
}

func (c *Client) fetch(ctx context.Context, key, name string) (*types.Species, error) {
	endpoint := fmt.Sprintf("%s/pokemon-species/%s", c.baseURL, url.PathEscape(key))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Internal("failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Network("species lookup failed", err).WithContext("species", key)
	}
	defer resp.Body.Close()

	c.logger.Debug("species lookup",
		zap.String("species", key),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.NotFound("species", name)
	case resp.StatusCode >= 400:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.Network(fmt.Sprintf("species lookup returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil).
			WithContext("species", key)
	}

	var raw speciesResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, errors.Network("failed to decode species response", err).WithContext("species", key)
	}

	s := &types.Species{
		Name:        raw.Name,
		IsLegendary: raw.IsLegendary,
		IsMythical:  raw.IsMythical,
		Genderless:  raw.GenderRate == -1,
	}
	if s.Name == "" {
		s.Name = key
	}
	if c.cache != nil {
		c.cache.Put(key, s)
	}
	return s, nil
}
