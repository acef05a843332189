// Package wtt resolves well-to-tank factors: the upstream emissions from
// extracting, refining, and distributing a fuel (or generating and
// transmitting electricity) that are reported separately from the direct
// Scope 1/2 emissions, under GHG Protocol category 3.3.
package wtt

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/verdantiq/carboncore/internal/factor"
	"github.com/verdantiq/carboncore/internal/units"
)

// mappingKey pairs an activity key with the unit its quantity was
// normalized to. WTT factors are unit-specific, so the same fuel maps to
// different WTT keys depending on whether it was measured by volume or
// energy content.
type mappingKey struct {
	ActivityKey string
	Unit        string
}

// wttMapping maps (activity_key, normalized unit) pairs to the WTT factor
// activity key. Lookup is exact: absence means no WTT is tracked for the
// activity, which is a legitimate outcome, not an error.
var wttMapping = map[mappingKey]string{
	{"natural_gas_volume", "cubic_meter"}:   "wtt_natural_gas_m3",
	{"natural_gas_energy", "kilowatt_hour"}: "wtt_natural_gas_kwh",
	{"diesel_volume", "liter"}:              "wtt_diesel_l",
	{"petrol_volume", "liter"}:              "wtt_petrol_l",
	{"fuel_oil_volume", "liter"}:            "wtt_fuel_oil_l",
	{"electricity_grid", "kilowatt_hour"}:   "wtt_electricity_kwh",
	{"electricity_il", "kilowatt_hour"}:     "wtt_electricity_kwh",
	{"flight_short_haul", "passenger_km"}:   "wtt_flight_pkm",
	{"flight_medium_haul", "passenger_km"}:  "wtt_flight_pkm",
	{"flight_long_haul", "passenger_km"}:    "wtt_flight_pkm",
}

// Service looks up well-to-tank factors from the same governed store as
// primary factors.
type Service struct {
	store  factor.Store
	logger zerolog.Logger
}

// NewService returns a WTT Service backed by the given factor store.
func NewService(store factor.Store, logger zerolog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Factor returns the WTT factor for an activity and its normalized unit,
// or nil when no WTT is tracked for the pair. The unit is resolved through
// the alias table before the pattern lookup, so callers may pass either
// the canonical unit or a reported spelling.
func (s *Service) Factor(ctx context.Context, activityKey, unit string) (*factor.EmissionFactor, error) {
	canon, ok := units.Canonical(unit)
	if !ok {
		canon = unit
	}
	wttKey, ok := wttMapping[mappingKey{ActivityKey: activityKey, Unit: canon}]
	if !ok {
		return nil, nil
	}

	matches, err := s.store.Find(ctx, factor.Query{ActivityKey: wttKey})
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		s.logger.Debug().
			Str("activity_key", activityKey).
			Str("wtt_key", wttKey).
			Msg("WTT mapping exists but no approved factor is stored")
		return nil, nil
	}
	return matches[0], nil
}
