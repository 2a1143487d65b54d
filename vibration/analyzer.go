package vibration

import (
	"fmt"

	"github.com/cwbudde/algo-modal/dsp/condition"
	"github.com/cwbudde/algo-modal/measure/decay"
	"github.com/cwbudde/algo-modal/measure/freq"
	"github.com/cwbudde/algo-modal/measure/modulus"
)

// Config holds the shared per-run analysis parameters. One Config covers
// every trial of a run.
type Config struct {
	CutoffHz     float64
	SampleRateHz float64
	FilterOrder  int
	CropFraction float64
	Geometry     modulus.Geometry
}

// Analyzer runs the full pipeline for individual trials. It is safe for
// concurrent use: all fields are immutable after construction.
type Analyzer struct {
	cond *condition.Conditioner
	cfg  Config

	// condErr defers an invalid filter spec to per-trial results so one
	// bad configuration surfaces as statuses instead of aborting a run.
	condErr error
}

// NewAnalyzer validates the configuration and builds the conditioner.
//
// An invalid filter spec is not returned here: per the batch's failure
// isolation contract it is attached to every subsequent result as
// StatusInvalidFilter. Only a nil-config style programming error (crop
// fraction out of range) fails construction outright, since no trial
// could ever be analyzed with it either way but the value is purely a
// caller-side constant.
func NewAnalyzer(cfg Config) (*Analyzer, error) {
	if cfg.CropFraction <= 0 || cfg.CropFraction > 1 {
		return nil, fmt.Errorf("vibration: crop fraction %g outside (0, 1]", cfg.CropFraction)
	}

	cond, err := condition.New(cfg.CutoffHz, cfg.SampleRateHz, cfg.FilterOrder)

	return &Analyzer{cond: cond, cfg: cfg, condErr: err}, nil
}

// Config returns the analyzer's run configuration.
func (a *Analyzer) Config() Config { return a.cfg }

// Analyze runs condition → crop → frequency → modulus for one trial and
// returns its result record. Failures in any stage are mapped to a status
// and never propagate as errors; one trial's failure is isolated from the
// rest of the batch.
func (a *Analyzer) Analyze(t Trial) TrialResult {
	res := TrialResult{LengthMM: t.LengthMM, Index: t.Index}

	if a.condErr != nil {
		res.Status = StatusInvalidFilter
		res.Err = a.condErr

		return res
	}

	conditioned := a.cond.Condition(t.Signal.Values)

	window, err := decay.Crop(conditioned, t.Signal.Times, a.cfg.CropFraction)
	if err != nil {
		res.Status = StatusEmptyWindow
		res.Err = err

		return res
	}

	f, err := freq.EstimateZeroCross(window.Values, window.Times)
	if err != nil {
		res.Status = StatusInsufficientCrossings
		res.Err = err

		return res
	}

	e, err := modulus.Compute(f, t.LengthMM/1000, a.cfg.Geometry)
	if err != nil {
		res.Status = StatusInvalidGeometry
		res.Err = err

		return res
	}

	res.FrequencyHz = f
	res.ModulusPa = e
	res.Status = StatusOK

	return res
}

// CrossCheck returns the spectral-peak frequency estimate for a trial's
// conditioned signal. Diagnostic only; disagreement with the zero-crossing
// estimate flags a noisy or multi-modal trial.
func (a *Analyzer) CrossCheck(t Trial) (float64, error) {
	if a.condErr != nil {
		return 0, a.condErr
	}

	conditioned := a.cond.Condition(t.Signal.Values)

	window, err := decay.Crop(conditioned, t.Signal.Times, a.cfg.CropFraction)
	if err != nil {
		return 0, err
	}

	return freq.EstimateSpectral(window.Values, a.cfg.SampleRateHz)
}
