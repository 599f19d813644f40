// AngelaMos | 2026
// charts.go

package web

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/carterperez-dev/greensteps/internal/stats"
)

const (
	personalChartTitle = "Daily Eco-Points"
	globalChartTitle   = "Global Eco-Points Trend"
)

func chartInit(title string) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		PageTitle: title,
		Width:     "100%",
		Height:    "360px",
	})
}

func splitTotals(totals []stats.DailyTotal) ([]string, []float64) {
	dates := make([]string, len(totals))
	values := make([]float64, len(totals))
	for i, t := range totals {
		dates[i] = t.Date
		values[i] = t.TotalPoints
	}
	return dates, values
}

func renderPersonalChart(w io.Writer, totals []stats.DailyTotal) error {
	dates, values := splitTotals(totals)

	items := make([]opts.BarData, len(values))
	for i, v := range values {
		items[i] = opts.BarData{Value: v}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		chartInit(personalChartTitle),
		charts.WithTitleOpts(opts.Title{Title: personalChartTitle}),
		charts.WithXAxisOpts(opts.XAxis{Name: "date"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "eco_points"}),
	)
	bar.SetXAxis(dates).AddSeries("eco_points", items)

	return bar.Render(w)
}

func renderGlobalChart(w io.Writer, totals []stats.DailyTotal) error {
	dates, values := splitTotals(totals)

	items := make([]opts.LineData, len(values))
	for i, v := range values {
		items[i] = opts.LineData{Value: v}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		chartInit(globalChartTitle),
		charts.WithTitleOpts(opts.Title{Title: globalChartTitle}),
		charts.WithXAxisOpts(opts.XAxis{Name: "date"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "eco_points"}),
	)
	line.SetXAxis(dates).AddSeries("eco_points", items)

	return line.Render(w)
}
