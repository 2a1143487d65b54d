package trialio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/cwbudde/algo-modal/vibration"
)

// WriteResultsCSV writes the per-trial results with per-length average
// rows and an overall average row: Length(mm), Trial, Frequency(Hz),
// Young's Modulus(GPa), Status.
func WriteResultsCSV(path string, agg *vibration.Aggregator) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("trialio: create results file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write([]string{"Length(mm)", "Trial", "Frequency(Hz)", "Young's Modulus(GPa)", "Status"}); err != nil {
		return fmt.Errorf("trialio: write header: %w", err)
	}

	results := agg.Results()

	for _, r := range results {
		row := []string{
			formatFloat(r.LengthMM),
			strconv.Itoa(r.Index),
			"",
			"",
			r.Status.String(),
		}
		if r.OK() {
			row[2] = fmt.Sprintf("%.2f", r.FrequencyHz)
			row[3] = fmt.Sprintf("%.2f", r.ModulusPa/1e9)
		}

		if err := w.Write(row); err != nil {
			return fmt.Errorf("trialio: write row: %w", err)
		}
	}

	for _, s := range agg.ByLength() {
		if s.MeanModulusPa == nil {
			continue
		}

		row := []string{
			formatFloat(s.LengthMM),
			"avg",
			fmt.Sprintf("%.2f", *s.MeanFrequencyHz),
			fmt.Sprintf("%.2f", *s.MeanModulusPa/1e9),
			"",
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("trialio: write average row: %w", err)
		}
	}

	if overall := agg.Overall(); overall.MeanModulusPa != nil {
		row := []string{"overall", "", "", fmt.Sprintf("%.2f", *overall.MeanModulusPa/1e9), ""}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("trialio: write overall row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("trialio: flush results: %w", err)
	}

	return nil
}

// PrintSummary renders a human-readable run summary to w.
func PrintSummary(w io.Writer, agg *vibration.Aggregator) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "Length\tTrial\tFrequency\tE\tStatus")

	for _, r := range agg.Results() {
		if r.OK() {
			fmt.Fprintf(tw, "%s mm\t%d\t%.2f Hz\t%.2f GPa\tok\n",
				formatFloat(r.LengthMM), r.Index, r.FrequencyHz, r.ModulusPa/1e9)
		} else {
			fmt.Fprintf(tw, "%s mm\t%d\t-\t-\t%s\n",
				formatFloat(r.LengthMM), r.Index, r.Status)
		}
	}

	fmt.Fprintln(tw, "\t\t\t\t")

	for _, s := range agg.ByLength() {
		if s.MeanModulusPa != nil {
			fmt.Fprintf(tw, "%s mm\tavg of %d\t%.2f Hz\t%.2f GPa\t\n",
				formatFloat(s.LengthMM), s.OKTrials, *s.MeanFrequencyHz, *s.MeanModulusPa/1e9)
		} else {
			fmt.Fprintf(tw, "%s mm\tno ok trials\t-\t-\t\n", formatFloat(s.LengthMM))
		}
	}

	overall := agg.Overall()
	if overall.MeanModulusPa != nil {
		fmt.Fprintf(tw, "overall\t%d/%d ok\t\t%.2f GPa\t\n",
			overall.OKTrials, overall.TotalTrials, *overall.MeanModulusPa/1e9)
	} else {
		fmt.Fprintf(tw, "overall\t%d/%d ok\t\t-\t\n", overall.OKTrials, overall.TotalTrials)
	}

	tw.Flush()
}

// formatFloat renders a beam length without trailing zeros (120, 160.5).
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
