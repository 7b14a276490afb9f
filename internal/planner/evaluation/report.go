package evaluation

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/xuri/excelize/v2"
)

const (
	sheetSummary     = "Summary"
	sheetScenarios   = "Scenarios"
	sheetVibeQuality = "Vibes"
)

// WriteText renders the report as aligned plain-text tables.
func (r *Report) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Evaluated %d scenarios over %d venues\n\n", len(r.Scenarios), r.VenueCount)

	fmt.Fprintln(tw, "SATISFACTION (1-5)")
	fmt.Fprintln(tw, "Method\tMean\tStd\tMin\tMax\tLabel")
	for _, ms := range r.Summary {
		if ms.Satisfaction.N == 0 {
			fmt.Fprintf(tw, "%s\t-\t-\t-\t-\tnot rated\n", ms.Method)
			continue
		}
		s := ms.Satisfaction
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.0f\t%.0f\t%s\n", ms.Method, s.Mean, s.Std, s.Min, s.Max, ms.SatisfactionLabel)
	}

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "AUTOMATED METRICS")
	fmt.Fprintln(tw, "Method\tBudget Pass%\tDiversity%\tVibe Match%\tAvg Rating\tFitness")
	for _, ms := range r.Summary {
		fmt.Fprintf(tw, "%s\t%.1f\t%.1f\t%.1f\t%.2f\t%.1f\n",
			ms.Method, ms.BudgetPassRate, ms.Diversity.Mean, ms.VibeMatch.Mean, ms.AvgRating.Mean, ms.Fitness.Mean)
	}

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "GA TIME (s)")
	fmt.Fprintln(tw, "Mean\tStd\tMin\tMax")
	fmt.Fprintf(tw, "%.3f\t%.3f\t%.3f\t%.3f\n", r.GATime.Mean, r.GATime.Std, r.GATime.Min, r.GATime.Max)

	if va := r.VibeAccuracy; va != nil {
		fmt.Fprintln(tw)
		fmt.Fprintf(tw, "VIBE INFERENCE: %d/%d correct (%.1f%%)\n", va.Correct, va.Total, va.Accuracy)
		fmt.Fprintln(tw, "Vibe\tCorrect\tTotal")
		for _, c := range va.ByVibe {
			fmt.Fprintf(tw, "%s\t%d\t%d\n", c.Vibe, c.Correct, c.Total)
		}
	}
	return tw.Flush()
}

// Workbook builds a spreadsheet with one sheet for the per-method summary and one row per
// scenario and method. The caller closes the file.
func (r *Report) Workbook() (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	rows := [][]interface{}{{
		"Method", "Satisfaction Mean", "Satisfaction Std", "Label", "Budget Pass%",
		"Diversity%", "Vibe Match%", "Avg Rating", "Fitness Mean", "Fitness Std",
	}}
	for _, ms := range r.Summary {
		rows = append(rows, []interface{}{
			ms.Method, ms.Satisfaction.Mean, ms.Satisfaction.Std, ms.SatisfactionLabel, ms.BudgetPassRate,
			ms.Diversity.Mean, ms.VibeMatch.Mean, ms.AvgRating.Mean, ms.Fitness.Mean, ms.Fitness.Std,
		})
	}
	rows = append(rows, []interface{}{}, []interface{}{"GA time mean (s)", r.GATime.Mean, "std", r.GATime.Std, "min", r.GATime.Min, "max", r.GATime.Max})
	if err := writeRows(f, sheetSummary, rows, bold); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(sheetScenarios); err != nil {
		return nil, err
	}
	rows = [][]interface{}{{
		"Scenario", "Method", "Venues", "Cost", "Budget", "Budget OK", "Diversity%",
		"Vibe Match%", "Avg Rating", "Fitness", "Rating", "Seconds", "Generations",
	}}
	for _, sr := range r.Scenarios {
		for _, res := range sr.Results {
			names := make([]string, 0, len(res.Plan.Stops))
			for _, st := range res.Plan.Stops {
				names = append(names, st.Venue.Name)
			}
			rows = append(rows, []interface{}{
				sr.Scenario.Name, res.Method, strings.Join(names, " > "), res.Metrics.Cost, sr.Scenario.Budget,
				res.Metrics.BudgetOK, res.Metrics.Diversity, res.Metrics.VibeMatch, res.Metrics.AvgRating,
				res.Metrics.Fitness, res.Rating, res.Elapsed.Seconds(), res.Generations,
			})
		}
	}
	if err := writeRows(f, sheetScenarios, rows, bold); err != nil {
		return nil, err
	}

	if va := r.VibeAccuracy; va != nil {
		if _, err := f.NewSheet(sheetVibeQuality); err != nil {
			return nil, err
		}
		rows = [][]interface{}{{"Vibe", "Correct", "Total"}}
		for _, c := range va.ByVibe {
			rows = append(rows, []interface{}{c.Vibe, c.Correct, c.Total})
		}
		rows = append(rows, []interface{}{"all", va.Correct, va.Total, va.Accuracy})
		if err := writeRows(f, sheetVibeQuality, rows, bold); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// WriteXLSX streams the workbook to w.
func (r *Report) WriteXLSX(w io.Writer) error {
	f, err := r.Workbook()
	if err != nil {
		return fmt.Errorf("build workbook: %w", err)
	}
	defer f.Close()
	return f.Write(w)
}

func (r *Report) SaveXLSX(path string) error {
	f, err := r.Workbook()
	if err != nil {
		return fmt.Errorf("build workbook: %w", err)
	}
	defer f.Close()
	return f.SaveAs(path)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return f.SetRowStyle(sheet, 1, 1, headerStyle)
}
