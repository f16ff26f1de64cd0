package output

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/iwvelando/streaming-roi/internal/projection"
)

// ChartHeight is the number of rows each series is plotted over.
const ChartHeight = 10

const columnWidth = 3

// ChartFormat plots ROI and viewers per period as terminal line charts.
func ChartFormat(w io.Writer, result projection.Projection) error {
	roi := make([]float64, len(result))
	viewers := make([]float64, len(result))
	for i, period := range result {
		roi[i] = period.ROI
		viewers[i] = float64(period.Viewers)
	}

	if err := plotSeries(w, "ROI %", roi, ChartHeight); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return plotSeries(w, "Viewers", viewers, ChartHeight)
}

// plotSeries draws one series with a point per column. +Inf is drawn as '^'
// on the top row, -Inf as 'v' on the bottom row and NaN is left blank.
func plotSeries(w io.Writer, title string, values []float64, height int) error {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	finite := !math.IsInf(lo, 1)
	if !finite {
		lo, hi = 0, 0
	}

	if _, err := fmt.Fprintf(w, "%s (%s to %s)\n", title, label(lo, finite), label(hi, finite)); err != nil {
		return err
	}

	rows := make([][]byte, height)
	for r := range rows {
		rows[r] = []byte(strings.Repeat(" ", len(values)*columnWidth))
	}
	for i, v := range values {
		col := i*columnWidth + columnWidth - 1
		switch {
		case math.IsNaN(v):
			continue
		case math.IsInf(v, 1):
			rows[height-1][col] = '^'
		case math.IsInf(v, -1):
			rows[0][col] = 'v'
		default:
			rows[rowFor(v, lo, hi, height)][col] = '*'
		}
	}

	labelWidth := len(label(hi, finite))
	if l := len(label(lo, finite)); l > labelWidth {
		labelWidth = l
	}
	for r := height - 1; r >= 0; r-- {
		axis := ""
		switch r {
		case height - 1:
			axis = label(hi, finite)
		case 0:
			axis = label(lo, finite)
		}
		if _, err := fmt.Fprintf(w, "%*s |%s\n", labelWidth, axis, strings.TrimRight(string(rows[r]), " ")); err != nil {
			return err
		}
	}

	var ticks strings.Builder
	for i := range values {
		fmt.Fprintf(&ticks, "%*d", columnWidth, i+1)
	}
	if _, err := fmt.Fprintf(w, "%*s +%s\n", labelWidth, "", strings.Repeat("-", len(values)*columnWidth)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%*s  %s\n", labelWidth, "", ticks.String())
	return err
}

func rowFor(v, lo, hi float64, height int) int {
	if hi == lo {
		return 0
	}
	return int(math.Round((v - lo) / (hi - lo) * float64(height-1)))
}

func label(v float64, finite bool) string {
	if !finite {
		return "n/a"
	}
	return fmt.Sprintf("%.0f", v)
}
