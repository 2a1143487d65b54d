// Command beamvib analyzes beam free-vibration trial recordings and
// reports the natural frequency and Young's modulus per trial, per beam
// length, and overall.
//
// Usage:
//
//	beamvib [flags]
//
// Trial files are CSVs named <LENGTH>mm_Trial_<N>.csv with the
// quantisation level in the first column and the timestamp in seconds in
// the second.
//
// Examples:
//
//	beamvib -input data -output output
//	beamvib -config run.yaml -workers 4
//	beamvib -input data -crosscheck
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-modal/config"
	"github.com/cwbudde/algo-modal/trialio"
	"github.com/cwbudde/algo-modal/vibration"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML configuration file (optional)")
		inputDir   = flag.String("input", "", "input directory with trial CSVs (overrides config)")
		outputDir  = flag.String("output", "", "output directory for the results CSV (overrides config)")
		workers    = flag.Int("workers", 0, "number of parallel analysis workers (overrides config)")
		crossCheck = flag.Bool("crosscheck", false, "log FFT-based frequency estimates next to the zero-crossing results")
	)
	flag.Parse()

	if err := run(*configPath, *inputDir, *outputDir, *workers, *crossCheck); err != nil {
		fmt.Fprintln(os.Stderr, "beamvib:", err)
		os.Exit(1)
	}
}

func run(configPath, inputDir, outputDir string, workers int, crossCheck bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if inputDir != "" {
		cfg.Input.Dir = inputDir
	}

	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}

	if workers > 0 {
		cfg.Workers = workers
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	analyzer, err := vibration.NewAnalyzer(cfg.Analysis())
	if err != nil {
		return err
	}

	trials, err := trialio.NewLoader(log).LoadDir(cfg.Input.Dir)
	if err != nil {
		return err
	}

	if len(trials) == 0 {
		return fmt.Errorf("no trial files found in %s", cfg.Input.Dir)
	}

	log.Info().
		Int("trials", len(trials)).
		Int("workers", cfg.Workers).
		Float64("cutoff_hz", cfg.Filter.CutoffHz).
		Float64("crop_fraction", cfg.Crop.Fraction).
		Msg("starting analysis")

	agg := vibration.RunBatch(analyzer, trials, cfg.Workers)

	for _, r := range agg.Results() {
		ev := log.Info().
			Float64("length_mm", r.LengthMM).
			Int("trial", r.Index).
			Stringer("status", r.Status)

		if r.OK() {
			ev = ev.Float64("frequency_hz", r.FrequencyHz).
				Float64("modulus_gpa", r.ModulusPa/1e9)
		} else {
			ev = ev.Err(r.Err)
		}

		ev.Msg("trial analyzed")
	}

	if crossCheck {
		logCrossChecks(log, analyzer, trials, agg)
	}

	trialio.PrintSummary(os.Stdout, agg)

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	resultsPath := filepath.Join(cfg.Output.Dir, cfg.Output.Results)
	if err := trialio.WriteResultsCSV(resultsPath, agg); err != nil {
		return err
	}

	log.Info().Str("path", resultsPath).Msg("results written")

	return nil
}

// logCrossChecks compares the zero-crossing frequency of every OK trial
// against the independent FFT estimate and flags disagreements.
func logCrossChecks(log zerolog.Logger, analyzer *vibration.Analyzer, trials []vibration.Trial, agg *vibration.Aggregator) {
	byKey := make(map[[2]float64]vibration.Trial, len(trials))
	for _, t := range trials {
		byKey[[2]float64{t.LengthMM, float64(t.Index)}] = t
	}

	for _, r := range agg.Results() {
		if !r.OK() {
			continue
		}

		trial := byKey[[2]float64{r.LengthMM, float64(r.Index)}]

		spectral, err := analyzer.CrossCheck(trial)
		if err != nil {
			log.Warn().Err(err).
				Float64("length_mm", r.LengthMM).
				Int("trial", r.Index).
				Msg("spectral cross-check failed")

			continue
		}

		ev := log.Info()
		if dev := (spectral - r.FrequencyHz) / r.FrequencyHz; dev > 0.02 || dev < -0.02 {
			ev = log.Warn()
		}

		ev.Float64("length_mm", r.LengthMM).
			Int("trial", r.Index).
			Float64("zero_cross_hz", r.FrequencyHz).
			Float64("spectral_hz", spectral).
			Msg("frequency cross-check")
	}
}

func newLogger(cfg *config.Config) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level: %w", err)
	}

	var log zerolog.Logger
	if cfg.Log.Format == "console" {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	} else {
		log = zerolog.New(os.Stderr)
	}

	return log.Level(level).With().Timestamp().Logger(), nil
}
