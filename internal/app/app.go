// Package app wires configuration into the resolver, composer and adapters
// shared by the CLI and the HTTP server.
package app

import (
	"go.uber.org/zap"

	"mandashop/adapters/pokeapi"
	"mandashop/adapters/webhook"
	"mandashop/core/order"
	"mandashop/core/pricing"
	"mandashop/core/surcharge"
	"mandashop/internal/config"
	"mandashop/internal/logging"
)

// App holds the wired components
type App struct {
	Table    *pricing.Table
	Resolver *pricing.Resolver
	Composer *order.Composer

	// Notifier is nil when no webhook URL is configured
	Notifier *webhook.Adapter

	// Species is nil when species lookups are disabled
	Species *pokeapi.Client
}

// LoadTable returns the configured price table, or the built-in one.
func LoadTable(cfg *config.Config) (*pricing.Table, error) {
	if cfg.Pricing.TablePath == "" {
		return pricing.DefaultTable(), nil
	}
	return pricing.LoadTable(cfg.Pricing.TablePath)
}

// New builds every component from cfg.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	logger = logging.OrNop(logger)

	table, err := LoadTable(cfg)
	if err != nil {
		return nil, err
	}
	if missing := table.Missing(); len(missing) > 0 {
		logger.Warn("price table is incomplete", zap.Strings("missing", missing))
	}

	a := &App{
		Table:    table,
		Resolver: pricing.NewResolver(table, logger),
	}

	var opts []order.Option
	if cfg.PokeAPI.Enabled {
		a.Species = pokeapi.NewClient(cfg.PokeAPI.BaseURL, pokeapi.NewCache(cfg.PokeAPI.CacheSize),
			pokeapi.WithTimeout(cfg.PokeAPI.Timeout()),
			pokeapi.WithLogger(logger))
		opts = append(opts, order.WithEligibility(a.Species))
	}
	a.Composer = order.NewComposer(a.Resolver, surcharge.FromTable(table), logger, opts...)

	if cfg.Notify.WebhookURL != "" {
		wc := webhook.DefaultConfig(webhook.Provider(cfg.Notify.Provider))
		wc.Endpoint = cfg.Notify.WebhookURL
		wc.Secret = cfg.Notify.Secret
		wc.RetryCount = cfg.Notify.RetryCount
		if t := cfg.Notify.Timeout(); t > 0 {
			wc.Timeout = t
		}
		a.Notifier = webhook.New(wc).WithLogger(logger)
	}

	logger.Debug("components wired",
		zap.String("pricing_table", tableSource(cfg)),
		zap.Bool("species_checks", a.Species != nil),
		zap.Bool("notifications", a.Notifier != nil))
	return a, nil
}

func tableSource(cfg *config.Config) string {
	if cfg.Pricing.TablePath == "" {
		return "built-in"
	}
	return cfg.Pricing.TablePath
}
