package dashboard

import (
	"fmt"
	"image/color"
	"io"

	"github.com/2beens/fitdash/internal/chart"
	"github.com/2beens/fitdash/internal/userdata"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	colorDark = color.RGBA{R: 0x28, G: 0x2d, B: 0x30, A: 0xff}
	colorRed  = color.RGBA{R: 0xe6, A: 0xff}
)

// RenderPNG draws a static snapshot of the chart. The radar and the gauge
// have no gonum/plot counterpart and are exported as plain bar charts.
func RenderPNG(w io.Writer, kind ChartKind, rec userdata.Records, width, height float64) error {
	if width <= 0 || height <= 0 {
		return chart.ErrNotDrawable
	}

	var (
		p   *plot.Plot
		err error
	)
	switch kind {
	case ChartActivity:
		if rec.Activity.Empty() {
			return chart.ErrEmptySeries
		}
		p, err = activityPlot(rec.Activity.Series())
	case ChartSessions:
		if rec.AverageSessions.Empty() {
			return chart.ErrEmptySeries
		}
		p, err = sessionsPlot(rec.AverageSessions.Series())
	case ChartPerformance:
		if rec.Performance.Empty() {
			return chart.ErrEmptySeries
		}
		p, err = valuesPlot(rec.Performance.Series())
	case ChartScore:
		if rec.User == nil || !rec.User.HasScore {
			return chart.ErrEmptySeries
		}
		p, err = valuesPlot(chart.Series{{Label: "Score", Value: rec.User.ScorePercent()}})
		if err == nil {
			p.Y.Max = 100
		}
	default:
		return fmt.Errorf("%q: %w", kind, ErrUnknownChart)
	}
	if err != nil {
		return fmt.Errorf("plot %s: %w", kind, err)
	}
	p.Title.Text = kind.Title()

	wt, err := p.WriterTo(vg.Points(width), vg.Points(height), "png")
	if err != nil {
		return fmt.Errorf("png writer: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

func labels(series chart.Series) []string {
	names := make([]string, 0, len(series))
	for _, c := range series {
		names = append(names, c.Label)
	}
	return names
}

func activityPlot(series chart.Series) (*plot.Plot, error) {
	p := plot.New()
	barW := vg.Points(10)

	weights, err := plotter.NewBarChart(plotter.Values(series.Values()), barW)
	if err != nil {
		return nil, err
	}
	weights.Color = colorDark
	weights.LineStyle.Width = 0
	weights.Offset = -barW / 2

	calories, err := plotter.NewBarChart(plotter.Values(series.Secondaries()), barW)
	if err != nil {
		return nil, err
	}
	calories.Color = colorRed
	calories.LineStyle.Width = 0
	calories.Offset = barW / 2

	p.Add(weights, calories)
	p.Legend.Add("Poids (kg)", weights)
	p.Legend.Add("Calories brûlées (kCal)", calories)
	p.Legend.Top = true
	p.NominalX(labels(series)...)
	return p, nil
}

func sessionsPlot(series chart.Series) (*plot.Plot, error) {
	p := plot.New()

	points := make(plotter.XYs, 0, len(series))
	for i, c := range series {
		points = append(points, plotter.XY{X: float64(i), Y: c.Value})
	}
	line, err := plotter.NewLine(points)
	if err != nil {
		return nil, err
	}
	line.Color = colorRed
	line.Width = vg.Points(2)

	markers, err := plotter.NewScatter(points)
	if err != nil {
		return nil, err
	}
	markers.Color = colorRed

	max, err := chart.SeriesMax(series.Values())
	if err != nil {
		return nil, err
	}
	p.Add(line, markers)
	p.Y.Min = 0
	p.Y.Max = chart.AxisCeiling(max)
	p.Y.Label.Text = "min"
	p.NominalX(labels(series)...)
	return p, nil
}

func valuesPlot(series chart.Series) (*plot.Plot, error) {
	p := plot.New()
	bars, err := plotter.NewBarChart(plotter.Values(series.Values()), vg.Points(20))
	if err != nil {
		return nil, err
	}
	bars.Color = colorRed
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(labels(series)...)
	return p, nil
}
