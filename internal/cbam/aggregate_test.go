package cbam

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func calculatedImport(t *testing.T, calc *Calculator, id, cnCode, country string, year, quarter int, mass string) *ImportResult {
	t.Helper()
	res, err := calc.CalculateImport(Import{
		ID:         id,
		CNCode:     cnCode,
		Country:    country,
		Year:       year,
		Quarter:    quarter,
		MassTonnes: dec(mass),
	})
	require.NoError(t, err)
	return res
}

// TestAggregateQuarterlyReport verifies grouping by sector, CN code, and
// country, and that imports from other quarters are excluded.
func TestAggregateQuarterlyReport(t *testing.T) {
	calc := newTestCalculator("80")

	results := []*ImportResult{
		calculatedImport(t, calc, "a", "7208", "TR", 2026, 1, "100"),
		calculatedImport(t, calc, "b", "7208", "CN", 2026, 1, "50"),
		calculatedImport(t, calc, "c", "7601", "CN", 2026, 1, "20"),
		calculatedImport(t, calc, "d", "7208", "TR", 2026, 2, "999"), // other quarter
	}

	report := AggregateQuarterlyReport(2026, 1, results)

	assert.Equal(t, 3, report.ImportCount)
	assert.True(t, report.TotalMassTonnes.Equal(dec("170")))

	// steel: 150 t x 2.08; aluminium: 20 t x 7.632
	wantTotal := dec("312").Add(dec("152.64"))
	assert.True(t, report.TotalTCO2e.Equal(wantTotal), "got %s", report.TotalTCO2e)

	require.Len(t, report.BySector, 2)
	assert.Equal(t, "aluminium", report.BySector[0].Key)
	assert.True(t, report.BySector[0].TotalTCO2e.Equal(dec("152.64")))
	assert.Equal(t, "iron_steel", report.BySector[1].Key)
	assert.True(t, report.BySector[1].TotalTCO2e.Equal(dec("312")))

	require.Len(t, report.ByCNCode, 2)
	require.Len(t, report.ByCountry, 2)
	assert.Equal(t, "CN", report.ByCountry[0].Key)
	assert.True(t, report.ByCountry[0].MassTonnes.Equal(dec("70")))
}

// TestAggregateQuarterlyReportIdempotent verifies that re-running the
// aggregation over the same inputs produces identical totals.
func TestAggregateQuarterlyReportIdempotent(t *testing.T) {
	calc := newTestCalculator("80")

	results := []*ImportResult{
		calculatedImport(t, calc, "a", "7208", "TR", 2026, 1, "100"),
		calculatedImport(t, calc, "b", "7601", "CN", 2026, 1, "20"),
	}

	first := AggregateQuarterlyReport(2026, 1, results)
	second := AggregateQuarterlyReport(2026, 1, results)

	assert.True(t, first.TotalTCO2e.Equal(second.TotalTCO2e))
	assert.True(t, first.TotalMassTonnes.Equal(second.TotalMassTonnes))
	assert.Equal(t, first.ImportCount, second.ImportCount)
	assert.Equal(t, first.BySector, second.BySector)
}

// TestAggregateAnnualDeclaration verifies year totals, certificate
// summation, and the average-price certificate cost estimate.
func TestAggregateAnnualDeclaration(t *testing.T) {
	calc := newTestCalculator("80")

	results := []*ImportResult{
		calculatedImport(t, calc, "a", "7208", "TR", 2026, 1, "100"),
		calculatedImport(t, calc, "b", "7208", "TR", 2026, 3, "100"),
		calculatedImport(t, calc, "z", "7208", "TR", 2025, 1, "500"), // other year
	}

	prices := []decimal.Decimal{dec("78"), dec("82"), dec("80")}
	decl := AggregateAnnualDeclaration(2026, results, prices)

	assert.Equal(t, 2, decl.ImportCount)
	assert.True(t, decl.TotalTCO2e.Equal(dec("416")))
	// per import: covered = 208 x 0.025 = 5.2
	assert.True(t, decl.EUCoveredTCO2e.Equal(dec("10.4")))
	assert.True(t, decl.AverageETSPrice.Equal(dec("80")))

	// per import: net cost 416 EUR -> 5.2 certificates -> count 5
	assert.Equal(t, int64(10), decl.CertificateCount)
	assert.True(t, decl.EstimatedCertCost.Equal(dec("800")))

	require.Len(t, decl.BySector, 1)
	assert.Equal(t, "iron_steel", decl.BySector[0].Key)
}
