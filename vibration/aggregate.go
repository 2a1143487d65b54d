package vibration

import (
	"sort"
	"sync"
)

// Aggregator collects trial results and computes per-length and overall
// summaries. Add is safe for concurrent use; the summary methods are
// intended for after the batch completes.
type Aggregator struct {
	mu      sync.Mutex
	results []TrialResult
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Add appends one trial result. Append-only; results are never mutated
// after insertion.
func (a *Aggregator) Add(r TrialResult) {
	a.mu.Lock()
	a.results = append(a.results, r)
	a.mu.Unlock()
}

// Results returns all collected results sorted by beam length, then trial
// index. The returned slice is a copy.
func (a *Aggregator) Results() []TrialResult {
	a.mu.Lock()
	out := make([]TrialResult, len(a.results))
	copy(out, a.results)
	a.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].LengthMM != out[j].LengthMM {
			return out[i].LengthMM < out[j].LengthMM
		}

		return out[i].Index < out[j].Index
	})

	return out
}

// ByLength returns one summary per distinct beam length, ordered by
// ascending length. Lengths where no trial succeeded report OKTrials == 0
// with nil means.
func (a *Aggregator) ByLength() []LengthSummary {
	type acc struct {
		freqSum float64
		modSum  float64
		ok      int
	}

	byLen := make(map[float64]*acc)
	for _, r := range a.Results() {
		c := byLen[r.LengthMM]
		if c == nil {
			c = &acc{}
			byLen[r.LengthMM] = c
		}

		if r.OK() {
			c.freqSum += r.FrequencyHz
			c.modSum += r.ModulusPa
			c.ok++
		}
	}

	lengths := make([]float64, 0, len(byLen))
	for l := range byLen {
		lengths = append(lengths, l)
	}
	sort.Float64s(lengths)

	out := make([]LengthSummary, 0, len(lengths))
	for _, l := range lengths {
		c := byLen[l]

		s := LengthSummary{LengthMM: l, OKTrials: c.ok}
		if c.ok > 0 {
			mf := c.freqSum / float64(c.ok)
			mm := c.modSum / float64(c.ok)
			s.MeanFrequencyHz = &mf
			s.MeanModulusPa = &mm
		}

		out = append(out, s)
	}

	return out
}

// Overall returns the run-wide summary: the mean modulus across all OK
// trials regardless of length, the total number of attempted trials, and
// the OK count. The mean is nil, never zero or NaN, when no trial
// succeeded.
func (a *Aggregator) Overall() OverallSummary {
	results := a.Results()

	s := OverallSummary{TotalTrials: len(results)}

	var sum float64
	for _, r := range results {
		if r.OK() {
			sum += r.ModulusPa
			s.OKTrials++
		}
	}

	if s.OKTrials > 0 {
		mean := sum / float64(s.OKTrials)
		s.MeanModulusPa = &mean
	}

	return s
}
