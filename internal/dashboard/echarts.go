package dashboard

import (
	"fmt"
	"io"

	"github.com/2beens/fitdash/internal/chart"
	"github.com/2beens/fitdash/internal/userdata"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const echartsHeight = "420px"

// RenderECharts writes an interactive page with one echarts chart per
// loaded record. Records that are missing are skipped.
func RenderECharts(w io.Writer, rec userdata.Records) error {
	page := components.NewPage()
	page.PageTitle = "fitdash"

	if rec.Activity != nil && !rec.Activity.Empty() {
		page.AddCharts(activityBarChart(rec.Activity))
	}
	if rec.AverageSessions != nil && !rec.AverageSessions.Empty() {
		page.AddCharts(sessionsLineChart(rec.AverageSessions))
	}
	if rec.Performance != nil && !rec.Performance.Empty() {
		page.AddCharts(performanceRadarChart(rec.Performance))
	}
	if rec.User != nil && rec.User.HasScore {
		page.AddCharts(scoreGaugeChart(rec.User))
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render echarts page: %w", err)
	}
	return nil
}

func initOpts(kind ChartKind) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		PageTitle: kind.Title(),
		Width:     "100%",
		Height:    echartsHeight,
		ChartID:   "chart-" + string(kind),
	})
}

func activityBarChart(activity *userdata.Activity) *charts.Bar {
	series := activity.Series()
	days := make([]string, 0, len(series))
	weights := make([]opts.BarData, 0, len(series))
	calories := make([]opts.BarData, 0, len(series))
	for _, c := range series {
		days = append(days, c.Label)
		weights = append(weights, opts.BarData{Name: c.Tooltip, Value: c.Value})
		calories = append(calories, opts.BarData{Name: c.SecondaryTip, Value: c.Secondary})
	}

	weightMax, _ := chart.SeriesMax(series.Values())
	caloriesMax, _ := chart.SeriesMax(series.Secondaries())

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts(ChartActivity),
		charts.WithTitleOpts(opts.Title{Title: ChartActivity.Title()}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "kg", Position: "right", Max: chart.AxisCeiling(weightMax)}),
	)
	bar.ExtendYAxis(opts.YAxis{Name: "kCal", Position: "left", Max: chart.AxisCeiling(caloriesMax)})
	bar.SetXAxis(days).
		AddSeries("Poids (kg)", weights, charts.WithItemStyleOpts(opts.ItemStyle{Color: "#282d30"})).
		AddSeries("Calories brûlées (kCal)", calories,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: "#e60000"}),
			charts.WithBarChartOpts(opts.BarChart{YAxisIndex: 1}),
		)
	return bar
}

func sessionsLineChart(sessions *userdata.AverageSessions) *charts.Line {
	series := sessions.Series()
	days := make([]string, 0, len(series))
	lengths := make([]opts.LineData, 0, len(series))
	for _, c := range series {
		days = append(days, c.Label)
		lengths = append(lengths, opts.LineData{Value: c.Value})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		initOpts(ChartSessions),
		charts.WithTitleOpts(opts.Title{Title: ChartSessions.Title()}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)
	line.SetXAxis(days).
		AddSeries("Durée (min)", lengths,
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: "#ff0000"}),
		)
	return line
}

func performanceRadarChart(performance *userdata.Performance) *charts.Radar {
	series := performance.Series()
	indicators := make([]*opts.Indicator, 0, len(series))
	values := make([]float64, 0, len(series))
	max, _ := chart.SeriesMax(series.Values())
	for _, c := range series {
		indicators = append(indicators, &opts.Indicator{Name: c.Label, Max: float32(chart.AxisCeiling(max))})
		values = append(values, c.Value)
	}

	radar := charts.NewRadar()
	radar.SetGlobalOptions(
		initOpts(ChartPerformance),
		charts.WithTitleOpts(opts.Title{Title: ChartPerformance.Title()}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithRadarComponentOpts(opts.RadarComponent{
			Indicator:   indicators,
			Shape:       "polygon",
			SplitNumber: len(chart.DefaultRadarTicks),
		}),
	)
	radar.AddSeries("Performance", []opts.RadarData{{Name: "Performance", Value: values}},
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#ff0101"}),
		charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: opts.Float(0.7)}),
	)
	return radar
}

func scoreGaugeChart(user *userdata.User) *charts.Gauge {
	gauge := charts.NewGauge()
	gauge.SetGlobalOptions(
		initOpts(ChartScore),
		charts.WithTitleOpts(opts.Title{Title: ChartScore.Title()}),
	)
	gauge.AddSeries("Score", []opts.GaugeData{{Name: "de votre objectif", Value: user.ScorePercent()}})
	return gauge
}
