package calc

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/verdantiq/carboncore/internal/factor"
	"github.com/verdantiq/carboncore/internal/units"
	"github.com/verdantiq/carboncore/internal/wtt"
)

// Pipeline sequences normalization, factor resolution, and the
// category-specific strategy for a single activity input. Stateless and
// side-effect free per invocation; safe for unbounded parallel use.
type Pipeline struct {
	resolver *factor.Resolver
	wtt      *wtt.Service
	logger   zerolog.Logger
}

// NewPipeline returns a calculation pipeline over the given resolver and
// well-to-tank service.
func NewPipeline(resolver *factor.Resolver, wttService *wtt.Service, logger zerolog.Logger) *Pipeline {
	return &Pipeline{resolver: resolver, wtt: wttService, logger: logger}
}

// Calculate turns one activity input into a calculation result. It returns
// *factor.NotFoundError when no approved factor exists after all fallback
// tiers, and *CalculationError for supplier-method misuse or a unit
// mismatch against the factor's unit. No failure mode is ever substituted
// with a silent zero.
func (p *Pipeline) Calculate(ctx context.Context, in ActivityInput) (*Result, error) {
	start := time.Now()

	if in.ActivityKey == "" {
		return nil, &CalculationError{Op: "validate", Reason: "activity_key is required"}
	}

	res, err := p.calculate(ctx, in)
	if err != nil {
		return nil, err
	}

	res.CalculationID = uuid.NewString()
	p.logger.Info().
		Str("calculation_id", res.CalculationID).
		Str("activity_key", in.ActivityKey).
		Str("category", in.CategoryCode).
		Str("resolution_strategy", string(res.ResolutionStrategy)).
		Str("confidence", string(res.Confidence)).
		Str("co2e_kg", res.CO2eKg.String()).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("emission calculated")
	return res, nil
}

func (p *Pipeline) calculate(ctx context.Context, in ActivityInput) (*Result, error) {
	// Supplier-specific override bypasses resolution entirely.
	if supplierOverride(in) {
		return p.calculateSupplier(in)
	}

	// Leased-asset tenant and area paths need no stored factor.
	if isLeasedCategory(in.CategoryCode) {
		if res, handled, err := p.calculateLeasedDirect(in); handled {
			return res, err
		}
	}

	resolution, err := p.resolveFactor(ctx, in)
	if err != nil {
		return nil, err
	}
	if resolution.Strategy == factor.StrategyNotFound {
		// Fugitive gases fall back to the static AR6 GWP table.
		if in.CategoryCode == "1.3" {
			if f, ok := GWPFactor(in.ActivityKey); ok {
				resolution = factor.ResolutionResult{
					Factor:     f,
					Strategy:   factor.StrategyGWPTable,
					Confidence: factor.ConfidenceMedium,
					Message:    "no stored factor; applied IPCC AR6 GWP-100 value for " + in.ActivityKey,
				}
			}
		}
		if resolution.Strategy == factor.StrategyNotFound {
			return nil, &factor.NotFoundError{
				ActivityKey: in.ActivityKey,
				Region:      in.Region,
				Year:        in.Year,
			}
		}
	}

	// Category-specific quantity derivation happens before normalization
	// so the derived unit can match the factor's unit.
	prep, prepWarnings, err := p.prepare(in, resolution.Factor)
	if err != nil {
		return nil, err
	}

	normalized, err := units.Normalize(prep.Activity.Quantity, prep.Activity.Unit, resolution.Factor.ActivityUnit)
	if err != nil {
		return nil, &CalculationError{
			Op:     "normalize",
			Reason: fmt.Sprintf("cannot normalize %q to factor unit %q", prep.Activity.Unit, resolution.Factor.ActivityUnit),
			Err:    err,
		}
	}
	prep.Normalized = normalized
	prep.Factor = resolution.Factor

	// WTT keys are unit-specific, so the lookup uses the normalized unit,
	// never the reported one.
	wttFactor, err := p.wtt.Factor(ctx, in.ActivityKey, normalized.Unit)
	if err != nil {
		return nil, fmt.Errorf("WTT lookup failed: %w", err)
	}
	prep.WTT = wttFactor

	strat := strategyFor(in.CategoryCode)
	res, err := strat.calculate(prep)
	if err != nil {
		return nil, err
	}

	p.stampResolution(res, resolution)
	for _, w := range prepWarnings {
		res.addWarning(w)
	}
	return res, nil
}

// supplierOverride reports whether the input takes the supplier-specific
// path: either the activity key names it or a supplier factor is supplied.
func supplierOverride(in ActivityInput) bool {
	return strings.HasPrefix(in.ActivityKey, "supplier_") || in.SupplierEF != nil
}

// calculateSupplier builds a synthesized in-memory factor from the
// caller-supplied override and computes a flat quantity x factor result.
// The override factor is required; its absence is an error, never a
// silent zero.
func (p *Pipeline) calculateSupplier(in ActivityInput) (*Result, error) {
	if in.SupplierEF == nil {
		return nil, &CalculationError{
			Op:     "supplier_specific",
			Reason: "supplier_ef is required for the supplier-specific method",
		}
	}

	unit := in.SupplierEFUnit
	if unit == "" {
		unit = "kg CO2e/" + in.Unit
	}
	f := &factor.EmissionFactor{
		ID:           "supplier:" + in.ActivityKey,
		ActivityKey:  in.ActivityKey,
		Region:       in.Region,
		Year:         in.Year,
		CO2eFactor:   *in.SupplierEF,
		ActivityUnit: in.Unit,
		FactorUnit:   unit,
		Source:       "supplier-provided emission factor",
		Status:       factor.StatusApproved,
		IsActive:     true,
		Synthesized:  true,
	}

	// No-op normalization: the supplier factor applies to the reported
	// unit as-is.
	req := request{
		Activity: in,
		Normalized: units.NormalizedQuantity{
			OriginalQuantity: in.Quantity,
			OriginalUnit:     in.Unit,
			Quantity:         in.Quantity,
			Unit:             in.Unit,
			ConversionFactor: decimal.NewFromInt(1),
		},
		Factor: f,
	}

	res, err := spendStrategy{}.calculate(req)
	if err != nil {
		return nil, err
	}
	// Supplier data is the top of the GHG accuracy hierarchy; it overrides
	// the spend strategy's grading.
	res.Confidence = factor.ConfidenceHigh
	res.ResolutionStrategy = factor.StrategySupplier
	res.Warnings = []string{"supplier-specific emission factor applied; bypassed factor resolution"}
	return res, nil
}

// calculateLeasedDirect handles the leased-asset paths that need no stored
// factor: tenant pass-through and area-based intensity. Returns
// handled=false when the input must continue through normal resolution
// (the spend-based fallback).
func (p *Pipeline) calculateLeasedDirect(in ActivityInput) (*Result, bool, error) {
	d := in.Leased
	if d == nil {
		return nil, false, nil
	}

	if d.TenantScope1Kg != nil || d.TenantScope2Kg != nil {
		res, err := leasedStrategy{}.calculate(request{Activity: in})
		if err != nil {
			return nil, true, err
		}
		res.ResolutionStrategy = factor.StrategySupplier
		return res, true, nil
	}

	if d.FloorAreaM2 != nil {
		f, ok := BuildingIntensityFactor(d.BuildingType)
		if !ok {
			return nil, true, &CalculationError{
				Op:     "leased_assets",
				Reason: fmt.Sprintf("unknown building type %q for area-based calculation", d.BuildingType),
			}
		}
		normalized, err := units.Normalize(*d.FloorAreaM2, "m2", f.ActivityUnit)
		if err != nil {
			return nil, true, &CalculationError{Op: "leased_assets", Reason: "floor area normalization failed", Err: err}
		}
		res, err := leasedStrategy{}.calculate(request{Activity: in, Normalized: normalized, Factor: f})
		if err != nil {
			return nil, true, err
		}
		res.ResolutionStrategy = factor.StrategyDefraPhysical
		return res, true, nil
	}

	return nil, false, nil
}

// resolveFactor picks the resolution mode: the GHG accuracy hierarchy for
// purchased goods, the standard ranked fallback otherwise.
func (p *Pipeline) resolveFactor(ctx context.Context, in ActivityInput) (factor.ResolutionResult, error) {
	if in.CategoryCode == "3.1" {
		return p.resolver.ResolveWithHierarchy(ctx, in.ActivityKey, in.Region, in.Year, in.Material)
	}
	return p.resolver.Resolve(ctx, in.ActivityKey, in.Region, in.Year)
}

// prepare derives category-specific quantities before normalization:
// flight distances from airport pairs, freight tonne-km from distance and
// weight. Returns the adjusted request plus warnings describing any
// assumption taken.
func (p *Pipeline) prepare(in ActivityInput, f *factor.EmissionFactor) (request, []string, error) {
	req := request{Activity: in}

	switch {
	case in.CategoryCode == "3.6":
		return p.prepareFlight(req, f)
	case in.CategoryCode == "3.4" || in.CategoryCode == "3.9":
		return p.prepareFreight(req, f)
	}
	return req, nil, nil
}

// prepareFlight fills in the flight distance: computed between airports
// when not reported, and reinterpreted as passenger-km when reported as a
// plain distance (per-passenger factors apply per seat).
func (p *Pipeline) prepareFlight(req request, f *factor.EmissionFactor) (request, []string, error) {
	in := &req.Activity
	var warnings []string

	if in.Quantity.IsZero() && in.Flight != nil &&
		in.Flight.OriginIATA != "" && in.Flight.DestinationIATA != "" {
		dist, ok := AirportDistanceKm(in.Flight.OriginIATA, in.Flight.DestinationIATA)
		if !ok {
			return req, nil, &CalculationError{
				Op: "flight",
				Reason: fmt.Sprintf("unknown airport in pair %s-%s",
					in.Flight.OriginIATA, in.Flight.DestinationIATA),
			}
		}
		in.Quantity = dist
		in.Unit = "passenger_km"
		warnings = append(warnings, fmt.Sprintf("distance computed as great-circle between %s and %s: %s km",
			in.Flight.OriginIATA, in.Flight.DestinationIATA, dist))
		return req, warnings, nil
	}

	// A plain distance against a per-passenger-km factor counts as one
	// passenger's travel.
	if dim, ok := units.DimensionOf(in.Unit); ok && dim == units.DimDistance {
		if targetDim, ok := units.DimensionOf(f.ActivityUnit); ok && targetDim == units.DimPassengerKm {
			normalized, err := units.Normalize(in.Quantity, in.Unit, "km")
			if err != nil {
				return req, nil, &CalculationError{Op: "flight", Reason: "distance normalization failed", Err: err}
			}
			in.Quantity = normalized.Quantity
			in.Unit = "passenger_km"
		}
	}
	return req, warnings, nil
}

// prepareFreight derives tonne-km when the reported unit is a distance:
// distance x explicit weight, or distance x a mode default load with a
// flagged assumption.
func (p *Pipeline) prepareFreight(req request, f *factor.EmissionFactor) (request, []string, error) {
	in := &req.Activity

	dim, ok := units.DimensionOf(in.Unit)
	if !ok || dim != units.DimDistance {
		// Already tonne-km (or something normalization will reject).
		return req, nil, nil
	}

	distance, err := units.Normalize(in.Quantity, in.Unit, "km")
	if err != nil {
		return req, nil, &CalculationError{Op: "freight", Reason: "distance normalization failed", Err: err}
	}

	if in.Freight != nil && in.Freight.WeightTonnes != nil {
		in.Quantity = distance.Quantity.Mul(*in.Freight.WeightTonnes)
		in.Unit = "tonne_km"
		req.freightExplicitWeight = true
		return req, nil, nil
	}

	mode := freightMode(in)
	load, ok := defaultLoadTonnes[mode]
	if !ok {
		load = defaultLoadTonnes["hgv"]
		mode = "hgv"
	}
	in.Quantity = distance.Quantity.Mul(load)
	in.Unit = "tonne_km"
	req.freightAssumedLoad = fmt.Sprintf("%s t (%s)", load, mode)
	return req, nil, nil
}

// freightMode picks the transport mode from the freight detail, falling
// back to the activity key suffix (e.g. "freight_hgv").
func freightMode(in *ActivityInput) string {
	if in.Freight != nil && in.Freight.Mode != "" {
		return strings.ToLower(in.Freight.Mode)
	}
	if rest, found := strings.CutPrefix(in.ActivityKey, "freight_"); found {
		return rest
	}
	return ""
}

// stampResolution writes the resolver's provenance onto the result.
// Resolution confidence is a ceiling on calculation confidence: a strategy
// can never report more certainty than the factor match supports.
func (p *Pipeline) stampResolution(res *Result, resolution factor.ResolutionResult) {
	res.ResolutionStrategy = resolution.Strategy
	if confidenceRank(resolution.Confidence) < confidenceRank(res.Confidence) {
		res.Confidence = resolution.Confidence
	}
	if resolution.Strategy != factor.StrategyExact {
		res.addWarning(resolution.Message)
	}
}

func confidenceRank(c factor.Confidence) int {
	switch c {
	case factor.ConfidenceHigh:
		return 3
	case factor.ConfidenceMedium:
		return 2
	case factor.ConfidenceLow:
		return 1
	default:
		return 0
	}
}
