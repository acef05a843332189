package cbam

import (
	_ "embed"
	"encoding/csv"
	"io"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// CSV column indices for data/cn_defaults.csv.
const (
	colCNCode      = 0
	colName        = 1
	colSector      = 2
	colDirectSEE   = 3
	colIndirectSEE = 4
)

//go:embed data/cn_defaults.csv
var cnDefaultsCSV string

var (
	cnDefaults     map[string]Product
	cnDefaultsOnce sync.Once
)

func parseCNDefaults() {
	cnDefaults = make(map[string]Product)

	reader := csv.NewReader(strings.NewReader(cnDefaultsCSV))
	if _, err := reader.Read(); err != nil {
		return
	}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		if len(record) <= colIndirectSEE {
			continue
		}
		code := strings.TrimSpace(record[colCNCode])
		direct, dErr := decimal.NewFromString(strings.TrimSpace(record[colDirectSEE]))
		indirect, iErr := decimal.NewFromString(strings.TrimSpace(record[colIndirectSEE]))
		if code == "" || dErr != nil || iErr != nil {
			continue
		}
		cnDefaults[code] = Product{
			CNCode:             code,
			Name:               strings.TrimSpace(record[colName]),
			Sector:             strings.TrimSpace(record[colSector]),
			DefaultDirectSEE:   direct,
			DefaultIndirectSEE: indirect,
		}
	}
}

// DefaultProduct returns the EU default SEE entry for a CN code. Lookup
// falls back to the 4-digit heading when the full 8-digit code is not
// listed.
func DefaultProduct(cnCode string) (Product, bool) {
	cnDefaultsOnce.Do(parseCNDefaults)

	code := strings.TrimSpace(cnCode)
	if p, ok := cnDefaults[code]; ok {
		return p, true
	}
	if len(code) > 4 {
		if p, ok := cnDefaults[code[:4]]; ok {
			return p, true
		}
	}
	return Product{}, false
}

// countryGridFactors maps origin countries to grid emission factors in
// tCO2e per MWh, used to derive indirect SEE from reported electricity
// consumption.
// Source: IEA country grid intensities, 2024 vintage.
var countryGridFactors = map[string]string{
	"CN": "0.581",
	"IN": "0.713",
	"TR": "0.442",
	"RU": "0.322",
	"UA": "0.232",
	"RS": "0.582",
	"EG": "0.470",
	"US": "0.367",
	"GB": "0.207",
	"NO": "0.019",
	"CH": "0.047",
	"ZA": "0.928",
	"BR": "0.096",
	"KR": "0.437",
	"JP": "0.462",
	"VN": "0.618",
	"ID": "0.688",
	"MY": "0.551",
	"TH": "0.450",
	"MX": "0.423",
}

// DefaultCountryGridFactor is applied when the origin country has no
// listed grid factor. Conservative world-average assumption.
var DefaultCountryGridFactor = decimal.RequireFromString("0.5")

// CountryGridFactor returns the grid emission factor for a country in
// tCO2e/MWh, and whether the country was recognized. Unrecognized
// countries receive DefaultCountryGridFactor.
func CountryGridFactor(country string) (decimal.Decimal, bool) {
	raw, ok := countryGridFactors[strings.ToUpper(strings.TrimSpace(country))]
	if !ok {
		return DefaultCountryGridFactor, false
	}
	return decimal.RequireFromString(raw), true
}

// cbamFreeAllocShare is the EU's phase-out schedule for free allocation
// under CBAM: the share of emissions still covered by free EUA allocation
// per year of the definitive phase.
// Source: Regulation (EU) 2023/956, Annex IV phase-in.
var cbamFreeAllocShare = map[int]string{
	2026: "0.975",
	2027: "0.95",
	2028: "0.90",
	2029: "0.775",
	2030: "0.515",
	2031: "0.39",
	2032: "0.265",
	2033: "0.14",
}

// EUFreeAllocShare returns the EU free-allocation share for a declaration
// year. Years before the definitive phase are fully covered (share 1);
// years beyond the phase-out are 0.
func EUFreeAllocShare(year int) decimal.Decimal {
	if year < DefinitivePhaseStart {
		return decimal.NewFromInt(1)
	}
	if raw, ok := cbamFreeAllocShare[year]; ok {
		return decimal.RequireFromString(raw)
	}
	return decimal.Zero
}

// DefinitivePhaseStart is the first year certificates must be surrendered.
const DefinitivePhaseStart = 2026
