// Package order composes a priced order from a storefront request: required
// field checks, IV notation, species eligibility, tier price and add-ons.
package order

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mandashop/core/notation"
	"mandashop/core/pricing"
	"mandashop/core/surcharge"
	"mandashop/core/types"
	"mandashop/internal/errors"
	"mandashop/internal/logging"
)

// Status is the lifecycle state of an order
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// Request is what the storefront form submits.
type Request struct {
	Player  string `json:"player"`
	Discord string `json:"discord"`

	Line     types.ProductLine    `json:"line"`
	Species  string               `json:"species"`
	Nature   string               `json:"nature,omitempty"`
	Ability  string               `json:"ability"`
	Gender   string               `json:"gender,omitempty"`
	IVs      string               `json:"ivs"`
	Breeding types.BreedingChoice `json:"breeding"`

	HiddenAbility bool           `json:"hidden_ability,omitempty"`
	EggMoves      []string       `json:"egg_moves,omitempty"`
	Level         int            `json:"level,omitempty"`
	EVs           types.EVSpread `json:"evs,omitempty"`
	Megastone     string         `json:"megastone,omitempty"`
}

// Summary is a composed, priced order ready to be sent to the shop.
type Summary struct {
	ID        string    `json:"id"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`

	Request    Request             `json:"request"`
	Spec       *types.IVSpec       `json:"spec"`
	Quote      types.PriceQuote    `json:"quote"`
	Surcharges surcharge.Breakdown `json:"surcharges"`
	Total      int64               `json:"total"`
}

// Eligibility looks up species data. Implementations may call out to a
// remote service and should honor ctx.
type Eligibility interface {
	Species(ctx context.Context, name string) (*types.Species, error)
}

// Composer builds order summaries. Safe for concurrent use.
type Composer struct {
	resolver    *pricing.Resolver
	surcharges  *surcharge.Calculator
	eligibility Eligibility
	logger      *zap.Logger
	now         func() time.Time
	newID       func() string
}

// Option configures a Composer
type Option func(*Composer)

// WithEligibility enables species checks against e
func WithEligibility(e Eligibility) Option {
	return func(c *Composer) {
		c.eligibility = e
	}
}

// WithClock overrides the timestamp source
func WithClock(now func() time.Time) Option {
	return func(c *Composer) {
		c.now = now
	}
}

// WithIDGenerator overrides order ID generation
func WithIDGenerator(newID func() string) Option {
	return func(c *Composer) {
		c.newID = newID
	}
}

// NewComposer creates a composer. A nil surcharge calculator is built from
// the resolver's table.
func NewComposer(resolver *pricing.Resolver, surcharges *surcharge.Calculator, logger *zap.Logger, opts ...Option) *Composer {
	if surcharges == nil {
		surcharges = surcharge.FromTable(resolver.Table())
	}
	c := &Composer{
		resolver:   resolver,
		surcharges: surcharges,
		logger:     logging.OrNop(logger).Named("order"),
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose validates req and prices it. Notation problems are returned as
// *notation.ValidationError; everything else is an *errors.Error.
func (c *Composer) Compose(ctx context.Context, req Request) (*Summary, error) {
	if err := checkRequired(&req); err != nil {
		return nil, err
	}
	if !req.Line.Valid() {
		return nil, errors.Inputf("unknown product line %q", req.Line)
	}

	spec, err := notation.Parse(req.IVs, req.Line)
	if err != nil {
		return nil, err
	}

	if err := c.checkEligibility(ctx, req); err != nil {
		return nil, err
	}

	quote := c.resolver.Quote(spec, req.Line, req.Breeding)

	extras, err := c.surcharges.Calculate(surcharge.Options{
		Line:          req.Line,
		HiddenAbility: req.HiddenAbility,
		EggMoves:      req.EggMoves,
		Level:         req.Level,
		EVs:           req.EVs,
		Megastone:     req.Megastone,
	})
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		ID:         c.newID(),
		Status:     StatusPending,
		CreatedAt:  c.now().UTC(),
		Request:    req,
		Spec:       spec,
		Quote:      quote,
		Surcharges: extras,
		Total:      quote.Price + extras.Total,
	}

	c.logger.Info("order composed",
		zap.String("id", summary.ID),
		zap.Stringer("line", req.Line),
		zap.String("species", req.Species),
		zap.String("ivs", spec.Canonical()),
		zap.Stringer("final_tier", quote.FinalTier),
		zap.Int64("total", summary.Total))
	return summary, nil
}

func checkRequired(req *Request) error {
	req.Species = strings.TrimSpace(req.Species)
	req.Ability = strings.TrimSpace(req.Ability)
	req.IVs = strings.TrimSpace(req.IVs)

	switch {
	case req.Species == "":
		return errors.Input("species is required")
	case req.Ability == "":
		return errors.Input("ability is required")
	case req.IVs == "":
		return errors.Input("IVs are required")
	case req.Breeding == types.BreedingUnspecified:
		return errors.Input("breeding choice is required (breedable or castrated)")
	}
	return nil
}

// checkEligibility rejects species the product line does not sell. Lookup
// failures other than an unknown species are logged and do not block the order.
func (c *Composer) checkEligibility(ctx context.Context, req Request) error {
	if c.eligibility == nil {
		return nil
	}

	species, err := c.eligibility.Species(ctx, req.Species)
	if err != nil {
		if errors.IsType(err, errors.TypeNotFound) {
			return err
		}
		c.logger.Warn("species lookup failed, skipping eligibility check",
			zap.String("species", req.Species),
			zap.Error(err))
		return nil
	}

	switch req.Line {
	case types.LineNoGender:
		if !species.Genderless {
			return errors.Newf(errors.TypeIneligible, "%s has a gender and cannot be ordered on the no-gender line", species.Name)
		}
	default:
		if species.Restricted() {
			return errors.Newf(errors.TypeIneligible, "legendary and mythical species such as %s are not sold on the %s line", species.Name, req.Line)
		}
		if species.Genderless {
			return errors.Newf(errors.TypeIneligible, "%s is genderless and must be ordered on the no-gender line", species.Name)
		}
	}
	return nil
}
