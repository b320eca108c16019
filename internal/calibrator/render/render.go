package render

import (
	"io"
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/langowen/calibrator/internal/entities"
	"github.com/pkg/errors"
)

// missing is how echarts marks a gap in a series; NaN cannot be encoded as JSON.
const missing = "-"

// Charts writes one HTML page containing every chart in specs.
func Charts(w io.Writer, pageTitle string, specs []entities.ChartSpec) error {
	const op = "render.Charts"

	page := components.NewPage()
	page.PageTitle = pageTitle
	page.SetLayout(components.PageFlexLayout)

	for _, spec := range specs {
		chart, err := build(spec)
		if err != nil {
			return errors.Wrap(err, op)
		}
		page.AddCharts(chart)
	}

	if err := page.Render(w); err != nil {
		return errors.Wrap(err, op)
	}

	return nil
}

func build(spec entities.ChartSpec) (components.Charter, error) {
	global := []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: spec.Title}),
		charts.WithXAxisOpts(opts.XAxis{Name: spec.XLabel}),
		charts.WithYAxisOpts(opts.YAxis{Name: spec.YLabel, Scale: spec.Kind == entities.LineChart}),
	}

	switch spec.Kind {
	case entities.LineChart:
		line := charts.NewLine()
		line.SetGlobalOptions(global...)

		data := make([]opts.LineData, len(spec.Values))
		for i, v := range spec.Values {
			data[i] = opts.LineData{Value: value(v)}
		}
		line.SetXAxis(spec.Labels).AddSeries(spec.YLabel, data)

		return line, nil

	case entities.BarChart:
		bar := charts.NewBar()
		bar.SetGlobalOptions(global...)

		data := make([]opts.BarData, len(spec.Values))
		for i, v := range spec.Values {
			data[i] = opts.BarData{Name: spec.Labels[i], Value: value(v)}
		}

		var series []charts.SeriesOpts
		if spec.ShowValues {
			series = append(series, charts.WithLabelOpts(opts.Label{
				Show:      true,
				Position:  "top",
				Formatter: "{c}",
			}))
		}
		bar.SetXAxis(spec.Labels).AddSeries(spec.YLabel, data, series...)

		return bar, nil
	}

	return nil, errors.Errorf("unknown chart kind %d", spec.Kind)
}

// value rounds to six decimals for display and maps NaN and infinities onto a gap.
func value(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return missing
	}
	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 6, 64), 64)
	return rounded
}
