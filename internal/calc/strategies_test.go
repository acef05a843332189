package calc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantiq/carboncore/internal/factor"
	"github.com/verdantiq/carboncore/internal/units"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func identity(quantity, unit string) units.NormalizedQuantity {
	q := dec(quantity)
	return units.NormalizedQuantity{
		OriginalQuantity: q,
		OriginalUnit:     unit,
		Quantity:         q,
		Unit:             unit,
		ConversionFactor: decimal.NewFromInt(1),
	}
}

func testFactor(co2e, unit, factorUnit string) *factor.EmissionFactor {
	return &factor.EmissionFactor{
		ID:           "ef-test",
		ActivityKey:  "test_activity",
		Region:       factor.RegionGlobal,
		Year:         2024,
		CO2eFactor:   dec(co2e),
		ActivityUnit: unit,
		FactorUnit:   factorUnit,
		Source:       "test",
		Status:       factor.StatusApproved,
		IsActive:     true,
	}
}

// TestFuelDeterminism verifies the base formula is exact in decimal
// arithmetic: 1000 kWh at 0.183 kg CO2e/kWh is precisely 183.
func TestFuelDeterminism(t *testing.T) {
	req := request{
		Activity:   ActivityInput{ActivityKey: "natural_gas_energy", CategoryCode: "1.1"},
		Normalized: identity("1000", "kilowatt_hour"),
		Factor:     testFactor("0.183", "kWh", "kg CO2e/kWh"),
	}

	res, err := fuelStrategy{}.calculate(req)
	require.NoError(t, err)
	assert.True(t, res.CO2eKg.Equal(dec("183")), "got %s", res.CO2eKg)
	assert.Equal(t, factor.ConfidenceHigh, res.Confidence)
	assert.Contains(t, res.Formula, "183")
	assert.Empty(t, res.Warnings)
}

func TestFuelGasSplitAndWTT(t *testing.T) {
	f := testFactor("2.044", "m3", "kg CO2e/m3")
	f.CO2Factor = decPtr("2.039")
	f.CH4Factor = decPtr("0.0026")
	f.N2OFactor = decPtr("0.0024")

	wttFactor := testFactor("0.33459", "m3", "kg CO2e/m3")

	req := request{
		Activity:   ActivityInput{ActivityKey: "natural_gas_volume", CategoryCode: "1.1"},
		Normalized: identity("100", "cubic_meter"),
		Factor:     f,
		WTT:        wttFactor,
	}

	res, err := fuelStrategy{}.calculate(req)
	require.NoError(t, err)
	assert.True(t, res.CO2eKg.Equal(dec("204.4")))
	require.NotNil(t, res.CO2Kg)
	assert.True(t, res.CO2Kg.Equal(dec("203.9")))
	require.NotNil(t, res.WTTCO2eKg)
	assert.True(t, res.WTTCO2eKg.Equal(dec("33.459")))
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "3.3")
}

// TestFlightMultiplierComposition verifies the flight formula:
// 1000 km x 0.15 x 2.9 (business) x 1.9 (RF) = 826.5 kg CO2e.
func TestFlightMultiplierComposition(t *testing.T) {
	req := request{
		Activity: ActivityInput{
			ActivityKey:  "flight_long_haul",
			CategoryCode: "3.6",
			Flight:       &FlightDetail{CabinClass: "business"},
		},
		Normalized: identity("1000", "passenger_km"),
		Factor:     testFactor("0.15", "passenger_km", "kg CO2e/pkm"),
	}

	res, err := flightStrategy{}.calculate(req)
	require.NoError(t, err)
	assert.True(t, res.CO2eKg.Equal(dec("826.5")), "got %s", res.CO2eKg)
}

func TestFlightWTTExcludesRadiativeForcing(t *testing.T) {
	req := request{
		Activity: ActivityInput{
			ActivityKey:  "flight_long_haul",
			CategoryCode: "3.6",
			Flight:       &FlightDetail{CabinClass: "business"},
		},
		Normalized: identity("1000", "passenger_km"),
		Factor:     testFactor("0.15", "passenger_km", "kg CO2e/pkm"),
		WTT:        testFactor("0.01", "passenger_km", "kg CO2e/pkm"),
	}

	res, err := flightStrategy{}.calculate(req)
	require.NoError(t, err)
	// WTT scales with class (2.9x) but not RF: 1000 x 0.01 x 2.9 = 29.
	require.NotNil(t, res.WTTCO2eKg)
	assert.True(t, res.WTTCO2eKg.Equal(dec("29")), "got %s", res.WTTCO2eKg)
}

func TestFlightRadiativeForcingToggle(t *testing.T) {
	off := false
	req := request{
		Activity: ActivityInput{
			ActivityKey:  "flight_short_haul",
			CategoryCode: "3.6",
			Flight:       &FlightDetail{RadiativeForcing: &off},
		},
		Normalized: identity("1000", "passenger_km"),
		Factor:     testFactor("0.15", "passenger_km", "kg CO2e/pkm"),
	}

	res, err := flightStrategy{}.calculate(req)
	require.NoError(t, err)
	assert.True(t, res.CO2eKg.Equal(dec("150")), "got %s", res.CO2eKg)

	found := false
	for _, w := range res.Warnings {
		if w == "radiative forcing disabled; non-CO2 high-altitude effects are excluded" {
			found = true
		}
	}
	assert.True(t, found, "expected RF-disabled warning, got %v", res.Warnings)
}

func TestFlightUnknownCabinClass(t *testing.T) {
	req := request{
		Activity: ActivityInput{
			ActivityKey:  "flight_short_haul",
			CategoryCode: "3.6",
			Flight:       &FlightDetail{CabinClass: "zeppelin"},
		},
		Normalized: identity("1000", "passenger_km"),
		Factor:     testFactor("0.15", "passenger_km", "kg CO2e/pkm"),
	}

	_, err := flightStrategy{}.calculate(req)
	require.Error(t, err)
	assert.ErrorContains(t, err, "zeppelin")
}

func TestHaulBand(t *testing.T) {
	assert.Equal(t, "short-haul", haulBand(dec("500")))
	assert.Equal(t, "medium-haul", haulBand(dec("1500")))
	assert.Equal(t, "medium-haul", haulBand(dec("3999")))
	assert.Equal(t, "long-haul", haulBand(dec("4000")))
}

// TestWasteNegativePreserved verifies avoided-emissions credits survive:
// -0.05 kg CO2e/kg on 1000 kg is -50, never clamped to zero.
func TestWasteNegativePreserved(t *testing.T) {
	req := request{
		Activity:   ActivityInput{ActivityKey: "waste_recycling_aluminum", CategoryCode: "3.5"},
		Normalized: identity("1000", "kilogram"),
		Factor:     testFactor("-0.05", "kg", "kg CO2e/kg"),
	}

	res, err := wasteStrategy{}.calculate(req)
	require.NoError(t, err)
	assert.True(t, res.CO2eKg.Equal(dec("-50")), "got %s", res.CO2eKg)
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0], "avoided-emissions")
}

func TestWasteGenericDowngrade(t *testing.T) {
	req := request{
		Activity:   ActivityInput{ActivityKey: "waste_landfill_mixed", CategoryCode: "3.5"},
		Normalized: identity("100", "kilogram"),
		Factor:     testFactor("0.44644", "kg", "kg CO2e/kg"),
	}

	res, err := wasteStrategy{}.calculate(req)
	require.NoError(t, err)
	assert.Equal(t, factor.ConfidenceMedium, res.Confidence)
}

func TestRefrigerantGWP(t *testing.T) {
	req := request{
		Activity:   ActivityInput{ActivityKey: "refrigerant_r134a", CategoryCode: "1.3"},
		Normalized: identity("2.5", "kilogram"),
		Factor:     testFactor("1530", "kg", "kg CO2e/kg (GWP-100)"),
	}

	res, err := refrigerantStrategy{}.calculate(req)
	require.NoError(t, err)
	assert.True(t, res.CO2eKg.Equal(dec("3825")), "got %s", res.CO2eKg)
	assert.Nil(t, res.CO2Kg, "refrigerants report pure CO2e with no gas split")
	assert.Nil(t, res.WTTCO2eKg, "refrigerants have no well-to-tank component")
	assert.Empty(t, res.Warnings)
}

func TestRefrigerantSanityWarning(t *testing.T) {
	req := request{
		Activity:   ActivityInput{ActivityKey: "refrigerant_sf6", CategoryCode: "1.3"},
		Normalized: identity("100", "kilogram"),
		Factor:     testFactor("24300", "kg", "kg CO2e/kg (GWP-100)"),
	}

	res, err := refrigerantStrategy{}.calculate(req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0], "verify the leaked quantity")
}

func TestTransportConfidenceGrading(t *testing.T) {
	base := request{
		Activity:   ActivityInput{ActivityKey: "freight_hgv", CategoryCode: "3.4"},
		Normalized: identity("1000", "tonne_km"),
		Factor:     testFactor("0.1065", "tonne_km", "kg CO2e/tkm"),
	}

	t.Run("explicit weight is high confidence", func(t *testing.T) {
		req := base
		req.freightExplicitWeight = true
		res, err := transportStrategy{}.calculate(req)
		require.NoError(t, err)
		assert.Equal(t, factor.ConfidenceHigh, res.Confidence)
		assert.Empty(t, res.Warnings)
	})

	t.Run("assumed load is medium with a warning", func(t *testing.T) {
		req := base
		req.freightAssumedLoad = "10 t (hgv)"
		res, err := transportStrategy{}.calculate(req)
		require.NoError(t, err)
		assert.Equal(t, factor.ConfidenceMedium, res.Confidence)
		require.NotEmpty(t, res.Warnings)
		assert.Contains(t, res.Warnings[0], "10 t (hgv)")
	})

	t.Run("direct tonne-km is medium", func(t *testing.T) {
		res, err := transportStrategy{}.calculate(base)
		require.NoError(t, err)
		assert.Equal(t, factor.ConfidenceMedium, res.Confidence)
	})
}

func TestSpendStrategy(t *testing.T) {
	f := testFactor("0.11", "usd", "kg CO2e/USD")
	f.Source = "US EEIO v2.0"
	req := request{
		Activity:   ActivityInput{ActivityKey: "spend_professional_services", CategoryCode: "3.1"},
		Normalized: identity("10000", "usd"),
		Factor:     f,
	}

	res, err := spendStrategy{}.calculate(req)
	require.NoError(t, err)
	assert.True(t, res.CO2eKg.Equal(dec("1100")))
	assert.Equal(t, factor.ConfidenceMedium, res.Confidence)
	require.Len(t, res.Warnings, 2)
	assert.Contains(t, res.Warnings[1], "EEIO")
}

func TestElectricityGlobalWarning(t *testing.T) {
	req := request{
		Activity:   ActivityInput{ActivityKey: "electricity_grid", CategoryCode: "2"},
		Normalized: identity("1000", "kilowatt_hour"),
		Factor:     testFactor("0.436", "kWh", "kg CO2e/kWh"),
	}

	res, err := electricityStrategy{}.calculate(req)
	require.NoError(t, err)
	require.Len(t, res.Warnings, 2)
	assert.Contains(t, res.Warnings[1], "region-specific")
}

func TestLeasedTenantPassThrough(t *testing.T) {
	req := request{
		Activity: ActivityInput{
			ActivityKey:  "leased_office",
			CategoryCode: "3.8",
			Leased: &LeasedDetail{
				TenantScope1Kg: decPtr("1200.5"),
				TenantScope2Kg: decPtr("800.25"),
			},
		},
	}

	res, err := leasedStrategy{}.calculate(req)
	require.NoError(t, err)
	assert.True(t, res.CO2eKg.Equal(dec("2000.75")))
	assert.Equal(t, factor.ConfidenceHigh, res.Confidence)
}

func TestLeasedAreaBased(t *testing.T) {
	f, ok := BuildingIntensityFactor("office")
	require.True(t, ok)
	require.True(t, f.Synthesized)

	req := request{
		Activity: ActivityInput{
			ActivityKey:  "leased_office",
			CategoryCode: "3.8",
			Leased:       &LeasedDetail{FloorAreaM2: decPtr("500"), BuildingType: "office"},
		},
		Normalized: identity("500", "square_meter"),
		Factor:     f,
	}

	res, err := leasedStrategy{}.calculate(req)
	require.NoError(t, err)
	assert.True(t, res.CO2eKg.Equal(dec("24000")), "got %s", res.CO2eKg)
	assert.Equal(t, factor.ConfidenceMedium, res.Confidence)
}

func TestGWPFactorNomenclature(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "R-134a", want: "1530"},
		{name: "no dash", in: "r134a", want: "1530"},
		{name: "HFC prefix", in: "HFC-134a", want: "1530"},
		{name: "SF6", in: "sf6", want: "24300"},
		{name: "blend", in: "R410A", want: "2256"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := GWPFactor(tt.in)
			require.True(t, ok)
			assert.True(t, f.CO2eFactor.Equal(dec(tt.want)), "got %s", f.CO2eFactor)
			assert.True(t, f.Synthesized)
		})
	}

	_, ok := GWPFactor("kryptonite")
	assert.False(t, ok)
}

func TestStrategyDispatch(t *testing.T) {
	assert.Equal(t, "fuel", strategyFor("1.1").name())
	assert.Equal(t, "refrigerant", strategyFor("1.3").name())
	assert.Equal(t, "electricity", strategyFor("2.1").name())
	assert.Equal(t, "flight", strategyFor("3.6").name())
	assert.Equal(t, "leased_assets", strategyFor("3.14").name())
	// Unmapped codes fall back to the generic multiply-by-factor default.
	assert.Equal(t, "fuel", strategyFor("9.9").name())
}

func TestAirportDistance(t *testing.T) {
	dist, ok := AirportDistanceKm("LHR", "JFK")
	require.True(t, ok)
	// Great-circle LHR-JFK is roughly 5,540 km.
	assert.True(t, dist.GreaterThan(dec("5400")), "got %s", dist)
	assert.True(t, dist.LessThan(dec("5700")), "got %s", dist)

	_, ok = AirportDistanceKm("LHR", "XXX")
	assert.False(t, ok)
}
