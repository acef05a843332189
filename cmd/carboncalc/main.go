// Command carboncalc reads activity inputs as JSON from stdin (a single
// object or an array), runs them through the calculation pipeline against
// the bundled emission-factor tables, and writes results as JSON to
// stdout. Calculation failures are reported per input without aborting
// the batch.
package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/verdantiq/carboncore/internal/calc"
	"github.com/verdantiq/carboncore/internal/factor"
	"github.com/verdantiq/carboncore/internal/wtt"
)

// batchEntry is one line of the output batch: either a result or the
// error that prevented one.
type batchEntry struct {
	Result *calc.Result `json:"result,omitempty"`
	Error  string       `json:"error,omitempty"`
}

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	pretty := flag.Bool("pretty", false, "Human-readable log output")
	flag.Parse()

	config, err := loadConfig(*configPath)
	if err != nil {
		errLogger := zerolog.New(os.Stderr)
		errLogger.Fatal().Err(err).Msg("invalid configuration")
	}
	if *pretty {
		config.Pretty = true
	}

	logger := newLogger(config)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Warn().Msg("received shutdown signal")
		cancel()
	}()

	store := factor.NewSeededStore()
	resolver := factor.NewResolver(store, logger)
	wttService := wtt.NewService(store, logger)
	pipeline := calc.NewPipeline(resolver, wttService, logger)

	inputs, err := decodeInputs(os.Stdin)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to decode activity inputs")
	}

	entries := make([]batchEntry, 0, len(inputs))
	failed := 0
	for _, in := range inputs {
		if in.Region == "" {
			in.Region = config.DefaultRegion
		}
		if in.Year == 0 {
			in.Year = config.DefaultYear
		}

		res, calcErr := pipeline.Calculate(ctx, in)
		if calcErr != nil {
			failed++
			logger.Error().Err(calcErr).Str("activityKey", in.ActivityKey).Msg("calculation failed")
			entries = append(entries, batchEntry{Error: calcErr.Error()})
			continue
		}
		entries = append(entries, batchEntry{Result: res})
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(entries); err != nil {
		logger.Fatal().Err(err).Msg("failed to encode results")
	}

	logger.Info().Int("calculated", len(entries)-failed).Int("failed", failed).Msg("batch complete")
	if failed > 0 {
		os.Exit(1)
	}
}

// decodeInputs accepts either a single activity object or an array.
func decodeInputs(r io.Reader) ([]calc.ActivityInput, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var inputs []calc.ActivityInput
	if err := json.Unmarshal(data, &inputs); err == nil {
		return inputs, nil
	}

	var single calc.ActivityInput
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, err
	}
	return []calc.ActivityInput{single}, nil
}

func newLogger(config *Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(config.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out zerolog.Logger
	if config.Pretty {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		out = zerolog.New(os.Stderr)
	}
	return out.Level(level).With().Timestamp().Str("service", "carboncalc").Logger()
}
