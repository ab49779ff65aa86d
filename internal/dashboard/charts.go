package dashboard

import (
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitdash/internal/chart"
	"github.com/2beens/fitdash/internal/userdata"
)

var ErrUnknownChart = errors.New("unknown chart kind")

type ChartKind string

const (
	ChartActivity    ChartKind = "activity"
	ChartSessions    ChartKind = "sessions"
	ChartPerformance ChartKind = "performance"
	ChartScore       ChartKind = "score"
)

// ChartKinds in the order they appear on the dashboard.
var ChartKinds = []ChartKind{ChartActivity, ChartSessions, ChartPerformance, ChartScore}

func ParseChartKind(s string) (ChartKind, error) {
	for _, k := range ChartKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownChart)
}

func (k ChartKind) Title() string {
	switch k {
	case ChartActivity:
		return "Activité quotidienne"
	case ChartSessions:
		return "Durée moyenne des sessions"
	case ChartPerformance:
		return "Performance"
	case ChartScore:
		return "Score"
	default:
		return string(k)
	}
}

type ChartOptions struct {
	Bars  chart.BarOptions
	Line  chart.LineOptions
	Radar chart.RadarOptions
	Gauge chart.GaugeOptions
}

func DefaultChartOptions() ChartOptions {
	return ChartOptions{
		Bars:  chart.DefaultBarOptions(),
		Line:  chart.DefaultLineOptions(),
		Radar: chart.DefaultRadarOptions(),
		Gauge: chart.DefaultGaugeOptions(),
	}
}

// Layout binds the records of one chart kind to its builder. Records not
// loaded (or without data) give chart.ErrEmptySeries.
func (o ChartOptions) Layout(kind ChartKind, rec userdata.Records) (chart.Layout, error) {
	switch kind {
	case ChartActivity:
		if rec.Activity.Empty() {
			return nil, chart.ErrEmptySeries
		}
		series := rec.Activity.Series()
		return func(frame chart.Frame) (*chart.Scene, error) {
			bars, err := chart.BuildBars(frame, series, o.Bars)
			if err != nil {
				return nil, err
			}
			return bars.Scene(), nil
		}, nil
	case ChartSessions:
		if rec.AverageSessions.Empty() {
			return nil, chart.ErrEmptySeries
		}
		series := rec.AverageSessions.Series()
		return func(frame chart.Frame) (*chart.Scene, error) {
			line, err := chart.BuildLine(frame, series, o.Line)
			if err != nil {
				return nil, err
			}
			return line.Scene(), nil
		}, nil
	case ChartPerformance:
		if rec.Performance.Empty() {
			return nil, chart.ErrEmptySeries
		}
		series := rec.Performance.Series()
		return func(frame chart.Frame) (*chart.Scene, error) {
			radar, err := chart.BuildRadar(frame, series, o.Radar)
			if err != nil {
				return nil, err
			}
			return radar.Scene(), nil
		}, nil
	case ChartScore:
		if rec.User == nil || !rec.User.HasScore {
			return nil, chart.ErrEmptySeries
		}
		fraction := rec.User.TodayScore
		return func(frame chart.Frame) (*chart.Scene, error) {
			gauge, err := chart.GaugeFromFraction(frame, fraction, o.Gauge)
			if err != nil {
				return nil, err
			}
			return gauge.Scene(), nil
		}, nil
	default:
		return nil, fmt.Errorf("%q: %w", kind, ErrUnknownChart)
	}
}

// Scene measures a fresh viewport at width x height and returns its scene.
func (o ChartOptions) Scene(kind ChartKind, rec userdata.Records, width, height float64) (*chart.Scene, error) {
	vp, err := o.viewport(kind, rec, width, height)
	if err != nil {
		return nil, err
	}
	return vp.Scene(), nil
}

// Sample returns the shapes of the chart elapsed into its transitions.
func (o ChartOptions) Sample(kind ChartKind, rec userdata.Records, width, height float64, elapsed time.Duration) (*Sampled, error) {
	vp, err := o.viewport(kind, rec, width, height)
	if err != nil {
		return nil, err
	}
	player := vp.Play()
	if player == nil {
		return nil, chart.ErrNotDrawable
	}
	shapes, err := player.Frame(elapsed)
	if err != nil {
		return nil, err
	}
	return &Sampled{
		ElapsedMs: elapsed.Milliseconds(),
		Done:      player.Done(elapsed),
		Shapes:    shapes,
	}, nil
}

type Sampled struct {
	ElapsedMs int64         `json:"elapsedMs"`
	Done      bool          `json:"done"`
	Shapes    []chart.Shape `json:"shapes"`
}

func (o ChartOptions) viewport(kind ChartKind, rec userdata.Records, width, height float64) (*chart.Viewport, error) {
	layout, err := o.Layout(kind, rec)
	if err != nil {
		return nil, err
	}
	vp := chart.NewViewport(layout)
	scene, err := vp.Resize(width, height)
	if err != nil {
		return nil, err
	}
	if scene == nil {
		return nil, chart.ErrNotDrawable
	}
	return vp, nil
}

// Hover places the sessions tooltip on the point closest to the pointer x.
func (o ChartOptions) Hover(rec userdata.Records, width, height, x float64) (*chart.Tooltip, error) {
	if rec.AverageSessions.Empty() {
		return nil, chart.ErrEmptySeries
	}
	series := rec.AverageSessions.Series()
	line, err := chart.BuildLine(chart.NewFrame(width, height, chart.Padding{}), series, o.Line)
	if err != nil {
		return nil, err
	}

	var tip chart.Tooltip
	i := line.Nearest(x)
	if i < 0 {
		return &tip, nil
	}
	tip.Enter(i, series[i].Tooltip)
	tip.Move(line.Points[i].X, line.Points[i].Y)
	return &tip, nil
}
