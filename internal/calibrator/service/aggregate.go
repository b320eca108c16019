package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/langowen/calibrator/internal/entities"
)

const separator = "--------------------------------------------------"

// IncludesToday reports whether the most recent point of the series falls on today's date.
func IncludesToday(series entities.RateSeries, today time.Time) bool {
	last, ok := series.Last()
	if !ok {
		return false
	}
	return entities.SameDay(last.Date, today)
}

// PeriodAverage averages the series, leaving out today's live rate when the series ends today
// and has earlier points to average instead.
func PeriodAverage(series entities.RateSeries, today time.Time) (float64, error) {
	values := series.Values()
	if len(values) == 0 {
		return 0, entities.DataError("no historical rates to average", nil)
	}

	if IncludesToday(series, today) && len(values) > 1 {
		values = values[:len(values)-1]
	}

	var sum float64
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values)), nil
}

func BuildCharts(conv entities.ConversionResult, series entities.RateSeries, average float64) []entities.ChartSpec {
	base, target := conv.Base, conv.Target

	dates := make([]string, len(series))
	for i, p := range series {
		dates[i] = p.Date.Format(entities.DateLayout)
	}

	return []entities.ChartSpec{
		{
			Kind:   entities.LineChart,
			Title:  fmt.Sprintf("Exchange Rate: 1 %s in %s (Last %d Days)", base, target, len(series)),
			XLabel: "Date",
			YLabel: fmt.Sprintf("Rate (%s per %s)", target, base),
			Labels: dates,
			Values: series.Values(),
		},
		{
			Kind:       entities.BarChart,
			Title:      fmt.Sprintf("Rate Difference: %s → %s", base, target),
			YLabel:     fmt.Sprintf("%s per %s", target, base),
			Labels:     []string{"Today", "Period Avg"},
			Values:     []float64{conv.Rate, average},
			ShowValues: true,
		},
		{
			Kind:       entities.BarChart,
			Title:      fmt.Sprintf("Amount Comparison: %s → %s", base, target),
			YLabel:     "Amount",
			Labels:     []string{fmt.Sprintf("Original (%s)", base), fmt.Sprintf("Converted (%s)", target)},
			Values:     []float64{conv.Amount, conv.Converted},
			ShowValues: true,
		},
	}
}

func Summary(conv entities.ConversionResult, average float64, days int) string {
	var b strings.Builder

	fmt.Fprintln(&b, separator)
	fmt.Fprintf(&b, "Amount : %.4f %s\n", conv.Amount, conv.Base)
	fmt.Fprintf(&b, "Current rate : 1 %s = %.6f %s\n", conv.Base, conv.Rate, conv.Target)
	fmt.Fprintf(&b, "Converted : %.4f %s\n", conv.Converted, conv.Target)
	fmt.Fprintln(&b, separator)
	fmt.Fprintf(&b, "Avg rate (%dd window): %.6f %s/%s\n", days, average, conv.Target, conv.Base)

	return b.String()
}
