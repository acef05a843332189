package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Config holds settings for the CBAM report generator. Year and Quarter
// select the reporting period (Quarter 0 produces an annual declaration
// instead of a quarterly report), ETSPrice is the EU ETS allowance price
// in EUR/tCO2e, and PricePoints optionally carries the year's price
// series for annual certificate-cost estimation.
type Config struct {
	Year        int
	Quarter     int
	ETSPrice    decimal.Decimal
	PricePoints []decimal.Decimal
	Pretty      bool
}

func parseConfig() (*Config, error) {
	config := &Config{}
	var etsPrice, pricePoints string

	flag.IntVar(&config.Year, "year", 2026, "Reporting year")
	flag.IntVar(&config.Quarter, "quarter", 0, "Reporting quarter (1-4); 0 for annual declaration")
	flag.StringVar(&etsPrice, "ets-price", "80", "EU ETS allowance price in EUR/tCO2e")
	flag.StringVar(&pricePoints, "ets-prices", "", "Comma-separated ETS price series for annual averaging")
	flag.BoolVar(&config.Pretty, "pretty", false, "Human-readable log output")

	flag.Parse()

	price, err := decimal.NewFromString(etsPrice)
	if err != nil {
		return nil, fmt.Errorf("invalid -ets-price %q: %w", etsPrice, err)
	}
	config.ETSPrice = price

	if pricePoints != "" {
		for _, raw := range strings.Split(pricePoints, ",") {
			p, err := decimal.NewFromString(strings.TrimSpace(raw))
			if err != nil {
				return nil, fmt.Errorf("invalid -ets-prices entry %q: %w", raw, err)
			}
			config.PricePoints = append(config.PricePoints, p)
		}
	}

	if config.Quarter < 0 || config.Quarter > 4 {
		return nil, fmt.Errorf("invalid -quarter %d: must be 0-4", config.Quarter)
	}

	return config, nil
}
