package factor

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Strategy records which resolution tier produced a factor. It is stamped
// onto calculation results as audit provenance.
type Strategy string

const (
	StrategyExact         Strategy = "exact"
	StrategyRegion        Strategy = "region"
	StrategyGlobal        Strategy = "global"
	StrategySupplier      Strategy = "supplier_specific"
	StrategyEcoinvent     Strategy = "ecoinvent"
	StrategyDefraPhysical Strategy = "defra_physical"
	StrategyEEIOSpend     Strategy = "eeio_spend"
	StrategyGWPTable      Strategy = "gwp_table"
	StrategyNotFound      Strategy = "not_found"
)

// Confidence grades how precisely the resolved factor matches the request.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ResolutionResult is the outcome of a factor resolution: the factor (nil
// when not found), the tier that matched, the confidence grade, and a
// human-readable message describing any fallback taken.
type ResolutionResult struct {
	Factor     *EmissionFactor
	Strategy   Strategy
	Confidence Confidence
	Message    string
}

// NotFoundError is returned when every fallback tier is exhausted. It
// carries the lookup coordinates so the caller can report exactly which
// reference data is missing.
type NotFoundError struct {
	ActivityKey string
	Region      string
	Year        int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no approved emission factor for activity %q (region %s, year %d)",
		e.ActivityKey, e.Region, e.Year)
}

// Resolver finds the single authoritative emission factor for an activity,
// region, and year using a ranked fallback hierarchy.
type Resolver struct {
	store  Store
	logger zerolog.Logger
}

// NewResolver returns a Resolver backed by the given store.
func NewResolver(store Store, logger zerolog.Logger) *Resolver {
	return &Resolver{store: store, logger: logger}
}

// Resolve runs the ranked fallback, first match wins:
//
//  1. exact: activity_key + region + year            -> high / exact
//  2. region: same key + region, latest year          -> high / region
//  3. global: same key, region "Global"               -> medium / global
//  4. any-region: same key anywhere, latest year      -> high / region
//     (covers activity keys that encode a region in their name)
//  5. not found: Strategy=StrategyNotFound, nil factor.
//
// Only approved, active factors are ever returned; the governance gate is
// enforced in the store on every tier.
func (r *Resolver) Resolve(ctx context.Context, activityKey, region string, year int) (ResolutionResult, error) {
	// Tier 1: exact match.
	matches, err := r.store.Find(ctx, Query{ActivityKey: activityKey, Region: region, Year: year})
	if err != nil {
		return ResolutionResult{}, fmt.Errorf("factor lookup failed: %w", err)
	}
	if len(matches) > 0 {
		return ResolutionResult{
			Factor:     matches[0],
			Strategy:   StrategyExact,
			Confidence: ConfidenceHigh,
		}, nil
	}

	// Tier 2: same region, latest available year.
	matches, err = r.store.Find(ctx, Query{ActivityKey: activityKey, Region: region})
	if err != nil {
		return ResolutionResult{}, fmt.Errorf("factor lookup failed: %w", err)
	}
	if len(matches) > 0 {
		f := matches[0]
		return ResolutionResult{
			Factor:     f,
			Strategy:   StrategyRegion,
			Confidence: ConfidenceHigh,
			Message:    fmt.Sprintf("no %d factor for %s; using latest available year %d", year, region, f.Year),
		}, nil
	}

	// Tier 3: global fallback, only when the request wasn't already global.
	if region != RegionGlobal {
		matches, err = r.store.Find(ctx, Query{ActivityKey: activityKey, Region: RegionGlobal})
		if err != nil {
			return ResolutionResult{}, fmt.Errorf("factor lookup failed: %w", err)
		}
		if len(matches) > 0 {
			f := matches[0]
			r.logger.Debug().
				Str("activity_key", activityKey).
				Str("requested_region", region).
				Int("factor_year", f.Year).
				Msg("falling back to global emission factor")
			return ResolutionResult{
				Factor:     f,
				Strategy:   StrategyGlobal,
				Confidence: ConfidenceMedium,
				Message:    fmt.Sprintf("no factor for region %s; using Global factor (year %d)", region, f.Year),
			}, nil
		}
	}

	// Tier 4: any region. Handles keys like "electricity_il" that already
	// encode their region.
	matches, err = r.store.Find(ctx, Query{ActivityKey: activityKey})
	if err != nil {
		return ResolutionResult{}, fmt.Errorf("factor lookup failed: %w", err)
	}
	if len(matches) > 0 {
		f := matches[0]
		return ResolutionResult{
			Factor:     f,
			Strategy:   StrategyRegion,
			Confidence: ConfidenceHigh,
			Message:    fmt.Sprintf("using %s factor (year %d); activity key is region-specific", f.Region, f.Year),
		}, nil
	}

	return ResolutionResult{
		Strategy: StrategyNotFound,
		Message:  fmt.Sprintf("no approved factor found for %q after all fallback tiers", activityKey),
	}, nil
}

// ResolveWithHierarchy implements the GHG Protocol accuracy hierarchy used
// for categories like 3.1 Purchased Goods:
//
//	supplier-specific > process LCA > physical material > spend-based EEIO
//
// The supplier-specific path is handled upstream by the pipeline; here the
// order is (a) LCA database, (b) material physical factor, (c) standard
// Resolve relabeled as spend-based EEIO at low confidence. The ordering is
// a design contract and must not change: it encodes the protocol's stated
// accuracy tiers.
func (r *Resolver) ResolveWithHierarchy(ctx context.Context, activityKey, region string, year int, material string) (ResolutionResult, error) {
	// (a) Licensed LCA database. Integration point only; no data wired yet.
	if f := r.lookupLCA(ctx, activityKey, region); f != nil {
		return ResolutionResult{
			Factor:     f,
			Strategy:   StrategyEcoinvent,
			Confidence: ConfidenceHigh,
		}, nil
	}

	// (b) Material-specific physical factor, keyed by material rather than
	// activity key.
	if material != "" {
		if f, ok := MaterialFactor(material); ok {
			return ResolutionResult{
				Factor:     f,
				Strategy:   StrategyDefraPhysical,
				Confidence: ConfidenceMedium,
				Message:    fmt.Sprintf("using physical emission factor for material %q", material),
			}, nil
		}
	}

	// (c) Spend-based EEIO fallback: the standard resolution relabeled as
	// the lowest-accuracy tier.
	res, err := r.Resolve(ctx, activityKey, region, year)
	if err != nil {
		return ResolutionResult{}, err
	}
	if res.Strategy == StrategyNotFound {
		return res, nil
	}
	res.Strategy = StrategyEEIOSpend
	res.Confidence = ConfidenceLow
	if res.Message == "" {
		res.Message = "spend-based EEIO factor; lowest accuracy tier of the GHG hierarchy"
	}
	return res, nil
}

// lookupLCA is the stub for a licensed process-LCA database (ecoinvent).
// Always returns nil until an integration is wired in.
func (r *Resolver) lookupLCA(context.Context, string, string) *EmissionFactor {
	return nil
}
