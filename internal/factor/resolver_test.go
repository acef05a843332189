package factor

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approved(key, region string, year int, co2e string) *EmissionFactor {
	return &EmissionFactor{
		ID:           key + "/" + region,
		ActivityKey:  key,
		Region:       region,
		Year:         year,
		CO2eFactor:   decimal.RequireFromString(co2e),
		ActivityUnit: "kWh",
		FactorUnit:   "kg CO2e/kWh",
		Source:       "test",
		Status:       StatusApproved,
		IsActive:     true,
	}
}

func newTestResolver(factors ...*EmissionFactor) *Resolver {
	store := NewMemStore()
	store.Put(factors...)
	return NewResolver(store, zerolog.Nop())
}

// TestResolveFallbackOrder verifies the ranked tier order: exact match
// first, then region latest-year, then Global, then any region.
func TestResolveFallbackOrder(t *testing.T) {
	il2024 := approved("grid_power", "IL", 2024, "0.531")
	il2023 := approved("grid_power", "IL", 2023, "0.550")
	global2024 := approved("grid_power", RegionGlobal, 2024, "0.436")

	r := newTestResolver(il2024, il2023, global2024)
	ctx := context.Background()

	t.Run("exact match wins", func(t *testing.T) {
		res, err := r.Resolve(ctx, "grid_power", "IL", 2024)
		require.NoError(t, err)
		assert.Equal(t, StrategyExact, res.Strategy)
		assert.Equal(t, ConfidenceHigh, res.Confidence)
		assert.Same(t, il2024, res.Factor)
	})

	t.Run("missing year falls back to latest region year", func(t *testing.T) {
		res, err := r.Resolve(ctx, "grid_power", "IL", 2025)
		require.NoError(t, err)
		assert.Equal(t, StrategyRegion, res.Strategy)
		assert.Equal(t, ConfidenceHigh, res.Confidence)
		assert.Same(t, il2024, res.Factor, "latest IL vintage must win over Global")
	})

	t.Run("missing region falls back to Global at medium confidence", func(t *testing.T) {
		res, err := r.Resolve(ctx, "grid_power", "FR", 2024)
		require.NoError(t, err)
		assert.Equal(t, StrategyGlobal, res.Strategy)
		assert.Equal(t, ConfidenceMedium, res.Confidence)
		assert.Same(t, global2024, res.Factor)
		assert.NotEmpty(t, res.Message)
	})

	t.Run("region-encoded key resolves through any-region tier", func(t *testing.T) {
		r := newTestResolver(approved("electricity_il", "IL", 2024, "0.531"))
		res, err := r.Resolve(ctx, "electricity_il", "US", 2024)
		require.NoError(t, err)
		assert.Equal(t, StrategyRegion, res.Strategy)
		assert.Equal(t, ConfidenceHigh, res.Confidence)
	})

	t.Run("nothing matches", func(t *testing.T) {
		res, err := r.Resolve(ctx, "unicorn_dust", "IL", 2024)
		require.NoError(t, err)
		assert.Equal(t, StrategyNotFound, res.Strategy)
		assert.Nil(t, res.Factor)
	})
}

// TestGovernanceGate verifies that factors outside status=approved or with
// is_active=false are invisible to every tier, even as the only candidate.
func TestGovernanceGate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*EmissionFactor)
	}{
		{name: "draft", mutate: func(f *EmissionFactor) { f.Status = StatusDraft }},
		{name: "pending approval", mutate: func(f *EmissionFactor) { f.Status = StatusPendingApproval }},
		{name: "rejected", mutate: func(f *EmissionFactor) { f.Status = StatusRejected }},
		{name: "archived", mutate: func(f *EmissionFactor) { f.Status = StatusArchived }},
		{name: "soft deleted", mutate: func(f *EmissionFactor) { f.IsActive = false }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := approved("grid_power", RegionGlobal, 2024, "0.436")
			tt.mutate(f)
			r := newTestResolver(f)

			res, err := r.Resolve(context.Background(), "grid_power", RegionGlobal, 2024)
			require.NoError(t, err)
			assert.Equal(t, StrategyNotFound, res.Strategy)
			assert.Nil(t, res.Factor)
		})
	}
}

func TestResolveWithHierarchy(t *testing.T) {
	ctx := context.Background()

	t.Run("material factor beats spend fallback", func(t *testing.T) {
		r := newTestResolver(approved("spend_raw_materials", RegionGlobal, 2024, "0.42"))
		res, err := r.ResolveWithHierarchy(ctx, "spend_raw_materials", RegionGlobal, 2024, "steel")
		require.NoError(t, err)
		assert.Equal(t, StrategyDefraPhysical, res.Strategy)
		assert.Equal(t, ConfidenceMedium, res.Confidence)
		require.NotNil(t, res.Factor)
		assert.True(t, res.Factor.Synthesized)
		assert.Equal(t, "kg", res.Factor.ActivityUnit)
	})

	t.Run("unknown material falls through to spend-based EEIO", func(t *testing.T) {
		r := newTestResolver(approved("spend_raw_materials", RegionGlobal, 2024, "0.42"))
		res, err := r.ResolveWithHierarchy(ctx, "spend_raw_materials", RegionGlobal, 2024, "unobtainium")
		require.NoError(t, err)
		assert.Equal(t, StrategyEEIOSpend, res.Strategy)
		assert.Equal(t, ConfidenceLow, res.Confidence)
		require.NotNil(t, res.Factor)
	})

	t.Run("no material and no factor reports not found", func(t *testing.T) {
		r := newTestResolver()
		res, err := r.ResolveWithHierarchy(ctx, "spend_raw_materials", RegionGlobal, 2024, "")
		require.NoError(t, err)
		assert.Equal(t, StrategyNotFound, res.Strategy)
	})
}

func TestSeededStore(t *testing.T) {
	store := NewSeededStore()
	res, err := store.Find(context.Background(), Query{ActivityKey: "natural_gas_volume", Region: RegionGlobal, Year: 2024})
	require.NoError(t, err)
	require.NotEmpty(t, res)
	assert.Equal(t, "m3", res[0].ActivityUnit)
	assert.True(t, res[0].Eligible())
}
