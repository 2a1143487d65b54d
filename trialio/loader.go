// Package trialio connects the analysis core to the filesystem: it loads
// raw trial recordings from CSV files following the <LENGTH>mm_Trial_<N>
// naming convention and writes result and summary reports.
//
// The core itself is format-agnostic; everything in this package is an
// adapter around in-memory values.
package trialio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-modal/vibration"
)

// trialNamePattern matches e.g. "120mm_Trial_3.csv". The length may carry
// a decimal fraction.
var trialNamePattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)mm_Trial_(\d+)\.csv$`)

// Loader reads trial CSVs from a directory. Files that do not match the
// naming convention are ignored; files that match but cannot be parsed
// are logged and skipped so one broken recording does not sink the run.
type Loader struct {
	log zerolog.Logger
}

// NewLoader creates a Loader that reports skipped files to log.
func NewLoader(log zerolog.Logger) *Loader {
	return &Loader{log: log}
}

// LoadDir scans dir for trial CSVs and returns the parsed trials sorted
// by beam length, then trial index. Returns an error only when the
// directory itself cannot be read; individual file failures are logged
// and skipped.
func (l *Loader) LoadDir(dir string) ([]vibration.Trial, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("trialio: read dir: %w", err)
	}

	var trials []vibration.Trial

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		m := trialNamePattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}

		lengthMM, err := strconv.ParseFloat(m[1], 64)
		if err != nil || lengthMM <= 0 {
			l.log.Warn().Str("file", entry.Name()).Msg("skipping: bad length in filename")
			continue
		}

		index, err := strconv.Atoi(m[2])
		if err != nil || index < 1 {
			l.log.Warn().Str("file", entry.Name()).Msg("skipping: bad trial index in filename")
			continue
		}

		path := filepath.Join(dir, entry.Name())

		signal, err := l.loadCSV(path)
		if err != nil {
			l.log.Warn().Err(err).Str("file", entry.Name()).Msg("skipping unreadable trial")
			continue
		}

		trials = append(trials, vibration.Trial{
			LengthMM: lengthMM,
			Index:    index,
			Signal:   signal,
		})
	}

	sort.Slice(trials, func(i, j int) bool {
		if trials[i].LengthMM != trials[j].LengthMM {
			return trials[i].LengthMM < trials[j].LengthMM
		}

		return trials[i].Index < trials[j].Index
	})

	return trials, nil
}

// loadCSV parses one trial recording. Column 0 is the quantisation level,
// column 1 the timestamp in seconds. A leading header row and malformed
// lines are tolerated; at least 2 valid samples are required.
func (l *Loader) loadCSV(path string) (vibration.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return vibration.Series{}, fmt.Errorf("trialio: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows are skipped below, not fatal

	var s vibration.Series

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return vibration.Series{}, fmt.Errorf("trialio: read %s: %w", path, err)
		}

		if len(record) < 2 {
			continue
		}

		level, errLevel := strconv.ParseFloat(record[0], 64)
		t, errTime := strconv.ParseFloat(record[1], 64)

		// Non-numeric rows (headers, stray text) are skipped.
		if errLevel != nil || errTime != nil {
			continue
		}

		s.Values = append(s.Values, level)
		s.Times = append(s.Times, t)
	}

	if s.Len() < 2 {
		return vibration.Series{}, fmt.Errorf("trialio: %s: %d valid samples, need >= 2", path, s.Len())
	}

	return s, nil
}
