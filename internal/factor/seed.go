package factor

import (
	_ "embed"
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// CSV column indices for data/emission_factors.csv.
const (
	colID           = 0
	colActivityKey  = 1
	colRegion       = 2
	colYear         = 3
	colCO2e         = 4
	colCO2          = 5
	colCH4          = 6
	colN2O          = 7
	colActivityUnit = 8
	colFactorUnit   = 9
	colSource       = 10
)

//go:embed data/emission_factors.csv
var seedFactorsCSV string

var (
	seedFactors     []*EmissionFactor
	seedFactorsOnce sync.Once
)

// parseSeedFactors parses the embedded factor CSV once. Rows with a missing
// activity key, an unparseable year, or an unparseable CO2e value are
// skipped; optional gas-split columns may be empty.
func parseSeedFactors() {
	reader := csv.NewReader(strings.NewReader(seedFactorsCSV))

	// Skip header row
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
		if len(record) <= colSource {
			continue
		}

		key := strings.TrimSpace(record[colActivityKey])
		if key == "" {
			continue
		}
		year, err := strconv.Atoi(strings.TrimSpace(record[colYear]))
		if err != nil {
			continue
		}
		co2e, err := decimal.NewFromString(strings.TrimSpace(record[colCO2e]))
		if err != nil {
			continue
		}

		f := &EmissionFactor{
			ID:           strings.TrimSpace(record[colID]),
			ActivityKey:  key,
			Region:       strings.TrimSpace(record[colRegion]),
			Year:         year,
			CO2eFactor:   co2e,
			ActivityUnit: strings.TrimSpace(record[colActivityUnit]),
			FactorUnit:   strings.TrimSpace(record[colFactorUnit]),
			Source:       strings.TrimSpace(record[colSource]),
			Status:       StatusApproved,
			IsActive:     true,
		}
		f.CO2Factor = optionalDecimal(record[colCO2])
		f.CH4Factor = optionalDecimal(record[colCH4])
		f.N2OFactor = optionalDecimal(record[colN2O])

		seedFactors = append(seedFactors, f)
	}
}

func optionalDecimal(s string) *decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

// NewSeededStore returns a MemStore preloaded with the embedded reference
// factor set. Intended for the cmd binaries and tests; production callers
// provide their own governed Store.
func NewSeededStore() *MemStore {
	seedFactorsOnce.Do(parseSeedFactors)
	s := NewMemStore()
	s.Put(seedFactors...)
	return s
}
