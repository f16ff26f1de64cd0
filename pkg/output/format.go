// Package output provides utilities for formatting and displaying projection results.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/streaming-roi/internal/projection"
	"github.com/iwvelando/streaming-roi/pkg/format"
	"github.com/iwvelando/streaming-roi/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Report bundles a projection with the assumptions that produced it and the
// headline metrics.
type Report struct {
	Assumptions projection.AssumptionSet `json:"assumptions"`
	Periods     projection.Projection    `json:"periods"`
	Metrics     Metrics                  `json:"metrics"`
	Warnings    []string                 `json:"warnings,omitempty"`
}

// Metrics holds the two headline values: the final period's ROI and revenue.
// FinalROI is nil when the ROI is not finite.
type Metrics struct {
	FinalROI       *float64             `json:"finalRoi"`
	FinalROIStatus projection.ROIStatus `json:"finalRoiStatus"`
	FinalRevenue   float64              `json:"finalRevenue"`
}

// NewReport builds a Report for the given assumptions and projection.
func NewReport(inputs projection.AssumptionSet, result projection.Projection, warnings []string) Report {
	report := Report{
		Assumptions: inputs,
		Periods:     result,
		Warnings:    warnings,
	}
	if last, ok := result.Final(); ok {
		report.Metrics.FinalROIStatus = last.ROIStatus
		report.Metrics.FinalRevenue = last.Revenue
		if last.ROIStatus == projection.ROIFinite {
			roi := last.ROI
			report.Metrics.FinalROI = &roi
		}
	}
	return report
}

// PrettyFormat writes a human-readable rather than machine-readable table
// followed by the key metrics.
func PrettyFormat(w io.Writer, result projection.Projection) error {
	p := message.NewPrinter(language.English)
	if _, err := fmt.Fprintf(w, "--- %d period streaming projection ---\n", len(result)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Period | Viewers | Revenue       | Costs         | ROI\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "______ | _______ | _____________ | _____________ | ___\n"); err != nil {
		return err
	}
	for _, period := range result {
		_, err := p.Fprintf(w, "%-6d | %7d | %13s | %13s | %s\n",
			period.Period,
			period.Viewers,
			format.Currency(period.Revenue),
			format.Currency(period.Costs),
			format.Percent(period.ROI),
		)
		if err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\nKey Metrics\nFirst Year ROI:            %s\nMonthly Revenue Potential: %s\n",
		format.Percent(result.FinalROI()),
		format.WholeCurrency(result.FinalRevenue()),
	)
	return err
}

// CsvFormat writes the projection in comma-separated value format. The roi
// column is empty when the ROI is not finite; roiStatus says why.
func CsvFormat(w io.Writer, result projection.Projection) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"period", "viewers", "revenue", "costs", "roi", "roiStatus"}); err != nil {
		return err
	}
	for _, period := range result {
		roi := ""
		if mathutil.IsFinite(period.ROI) {
			roi = strconv.FormatFloat(period.ROI, 'f', 0, 64)
		}
		record := []string{
			strconv.Itoa(period.Period),
			strconv.Itoa(period.Viewers),
			strconv.FormatFloat(mathutil.Round(period.Revenue), 'f', 2, 64),
			strconv.FormatFloat(mathutil.Round(period.Costs), 'f', 2, 64),
			roi,
			period.ROIStatus.String(),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// CsvString returns the CSV rendering of the projection as a string.
func CsvString(result projection.Projection) string {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, result); err != nil {
		return ""
	}
	return buf.String()
}

// JSONFormat writes the report as an indented JSON document.
func JSONFormat(w io.Writer, report Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("failed to encode projection: %w", err)
	}
	return nil
}
