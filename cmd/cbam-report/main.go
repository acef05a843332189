// Command cbam-report reads CBAM import declarations as a JSON array
// from stdin, calculates embedded emissions and costs for each, and
// writes either a quarterly report or an annual declaration as JSON to
// stdout.
package main

import (
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/verdantiq/carboncore/internal/cbam"
)

func main() {
	config, err := parseConfig()
	if err != nil {
		errLogger := zerolog.New(os.Stderr)
		errLogger.Fatal().Err(err).Msg("invalid configuration")
	}

	logger := newLogger(config.Pretty)

	imports, err := decodeImports(os.Stdin)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to decode imports")
	}

	calculator := cbam.NewCalculator(config.ETSPrice, logger)

	results := make([]*cbam.ImportResult, 0, len(imports))
	failed := 0
	for _, imp := range imports {
		res, calcErr := calculator.CalculateImport(imp)
		if calcErr != nil {
			failed++
			logger.Error().Err(calcErr).Str("importID", imp.ID).Msg("import calculation failed")
			continue
		}
		results = append(results, res)
	}

	var report any
	if config.Quarter == 0 {
		prices := config.PricePoints
		if len(prices) == 0 {
			prices = []decimal.Decimal{config.ETSPrice}
		}
		report = cbam.AggregateAnnualDeclaration(config.Year, results, prices)
	} else {
		report = cbam.AggregateQuarterlyReport(config.Year, config.Quarter, results)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		logger.Fatal().Err(err).Msg("failed to encode report")
	}

	logger.Info().Int("imports", len(results)).Int("failed", failed).Msg("report complete")
	if failed > 0 {
		os.Exit(1)
	}
}

func decodeImports(r io.Reader) ([]cbam.Import, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var imports []cbam.Import
	if err := json.Unmarshal(data, &imports); err != nil {
		return nil, err
	}
	return imports, nil
}

func newLogger(pretty bool) zerolog.Logger {
	var out zerolog.Logger
	if pretty {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		out = zerolog.New(os.Stderr)
	}
	return out.With().Timestamp().Str("service", "cbam-report").Logger()
}
