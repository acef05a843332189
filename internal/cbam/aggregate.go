package cbam

import (
	"sort"

	"github.com/shopspring/decimal"
)

// GroupTotals is one row of an aggregation: emissions and mass summed
// over a grouping key.
type GroupTotals struct {
	Key string `json:"key"`

	MassTonnes    decimal.Decimal `json:"massTonnes"`
	DirectTCO2e   decimal.Decimal `json:"directTCO2e"`
	IndirectTCO2e decimal.Decimal `json:"indirectTCO2e"`
	TotalTCO2e    decimal.Decimal `json:"totalTCO2e"`
}

// QuarterlyReport is the transitional-phase reporting view of one
// quarter's imports, grouped three ways as the registry declaration
// requires.
type QuarterlyReport struct {
	Year    int `json:"year"`
	Quarter int `json:"quarter"`

	TotalMassTonnes decimal.Decimal `json:"totalMassTonnes"`
	TotalTCO2e      decimal.Decimal `json:"totalTCO2e"`

	BySector  []GroupTotals `json:"bySector"`
	ByCNCode  []GroupTotals `json:"byCNCode"`
	ByCountry []GroupTotals `json:"byCountry"`

	ImportCount int `json:"importCount"`
}

// AnnualDeclaration is the definitive-phase view: total certificates to
// surrender and their estimated cost at the year's average ETS price.
type AnnualDeclaration struct {
	Year int `json:"year"`

	TotalTCO2e        decimal.Decimal `json:"totalTCO2e"`
	EUCoveredTCO2e    decimal.Decimal `json:"euCoveredTCO2e"`
	TotalDeducted     decimal.Decimal `json:"totalDeducted"`
	NetCost           decimal.Decimal `json:"netCost"`
	CertificateCount  int64           `json:"certificateCount"`
	AverageETSPrice   decimal.Decimal `json:"averageETSPrice"`
	EstimatedCertCost decimal.Decimal `json:"estimatedCertCost"`

	BySector []GroupTotals `json:"bySector"`

	ImportCount int `json:"importCount"`
}

// AggregateQuarterlyReport sums calculated imports for one reporting
// quarter. Results outside the requested quarter are ignored, so the
// same slice can back every quarter's report. Pure function of its
// inputs; re-running it never changes the outcome.
func AggregateQuarterlyReport(year, quarter int, results []*ImportResult) *QuarterlyReport {
	report := &QuarterlyReport{Year: year, Quarter: quarter}

	bySector := map[string]*GroupTotals{}
	byCN := map[string]*GroupTotals{}
	byCountry := map[string]*GroupTotals{}

	for _, r := range results {
		if r == nil || r.Year != year || r.Quarter != quarter {
			continue
		}
		report.ImportCount++
		report.TotalMassTonnes = report.TotalMassTonnes.Add(r.MassTonnes)
		report.TotalTCO2e = report.TotalTCO2e.Add(r.Embedded.TotalTCO2e)

		accumulate(bySector, r.Sector, r)
		accumulate(byCN, r.CNCode, r)
		accumulate(byCountry, r.Country, r)
	}

	report.BySector = sortedGroups(bySector)
	report.ByCNCode = sortedGroups(byCN)
	report.ByCountry = sortedGroups(byCountry)
	return report
}

// AggregateAnnualDeclaration sums a full year of calculated imports and
// estimates the certificate cost at the average of the supplied ETS
// price points (typically weekly closing prices).
func AggregateAnnualDeclaration(year int, results []*ImportResult, etsPrices []decimal.Decimal) *AnnualDeclaration {
	decl := &AnnualDeclaration{Year: year}

	bySector := map[string]*GroupTotals{}
	for _, r := range results {
		if r == nil || r.Year != year {
			continue
		}
		decl.ImportCount++
		decl.TotalTCO2e = decl.TotalTCO2e.Add(r.Embedded.TotalTCO2e)
		decl.EUCoveredTCO2e = decl.EUCoveredTCO2e.Add(r.Deduction.EUCoveredTCO2e)
		decl.TotalDeducted = decl.TotalDeducted.Add(r.Deduction.DeductedAmount)
		decl.NetCost = decl.NetCost.Add(r.Deduction.NetCost)
		if r.Certificates != nil {
			decl.CertificateCount += r.Certificates.Count
		}
		accumulate(bySector, r.Sector, r)
	}
	decl.BySector = sortedGroups(bySector)

	decl.AverageETSPrice = averagePrice(etsPrices)
	decl.EstimatedCertCost = decl.AverageETSPrice.Mul(decimal.NewFromInt(decl.CertificateCount)).Round(2)
	return decl
}

func accumulate(groups map[string]*GroupTotals, key string, r *ImportResult) {
	g, ok := groups[key]
	if !ok {
		g = &GroupTotals{Key: key}
		groups[key] = g
	}
	g.MassTonnes = g.MassTonnes.Add(r.MassTonnes)
	g.DirectTCO2e = g.DirectTCO2e.Add(r.Embedded.DirectTCO2e)
	g.IndirectTCO2e = g.IndirectTCO2e.Add(r.Embedded.IndirectTCO2e)
	g.TotalTCO2e = g.TotalTCO2e.Add(r.Embedded.TotalTCO2e)
}

func sortedGroups(groups map[string]*GroupTotals) []GroupTotals {
	out := make([]GroupTotals, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func averagePrice(prices []decimal.Decimal) decimal.Decimal {
	if len(prices) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, p := range prices {
		sum = sum.Add(p)
	}
	return sum.Div(decimal.NewFromInt(int64(len(prices)))).Round(2)
}
