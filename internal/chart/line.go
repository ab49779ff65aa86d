package chart

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

type LineOptions struct {
	Padding      Padding
	TickStep     float64
	MarkerRadius float64

	Transition Transition
	// Markers pop in one after another over MarkerSpread.
	MarkerSpread   time.Duration
	MarkerDuration time.Duration
}

func DefaultLineOptions() LineOptions {
	return LineOptions{
		Padding:        Padding{Top: 45, Right: 15, Bottom: 35, Left: 35},
		TickStep:       10,
		MarkerRadius:   5,
		Transition:     DefaultTransition(),
		MarkerSpread:   1500 * time.Millisecond,
		MarkerDuration: 300 * time.Millisecond,
	}
}

type Line struct {
	Frame    Frame
	X        Linear
	Y        Linear
	Ceiling  float64
	Baseline float64
	Points   []Point

	Axes    []Axis
	Path    Element
	Markers []Element
}

// BuildLine lays out a smooth line through the series, with a marker per
// point. Values are scaled on 0..AxisCeiling(max), growing upwards.
func BuildLine(frame Frame, series Series, opts LineOptions) (*Line, error) {
	frame.Padding = opts.Padding
	if !frame.Usable() {
		return nil, ErrNotDrawable
	}
	max, err := SeriesMax(series.Values())
	if err != nil {
		return nil, err
	}

	left := frame.Padding.Left
	right := frame.Width - frame.Padding.Right
	top := frame.Padding.Top
	baseline := frame.Height - frame.Padding.Bottom

	ceiling := AxisCeiling(max)
	x := NewLinear([2]float64{0, float64(len(series) - 1)}, [2]float64{left, right})
	y := NewLinear([2]float64{0, ceiling}, [2]float64{baseline, top})

	l := &Line{
		Frame:    frame,
		X:        x,
		Y:        y,
		Ceiling:  ceiling,
		Baseline: baseline,
	}

	initial := Shape{Kind: KindCurve}
	final := Shape{Kind: KindCurve}
	n := len(series)
	for i, c := range series {
		p := Point{X: x.Scale(float64(i)), Y: y.Scale(c.Value)}
		l.Points = append(l.Points, p)
		initial.Points = append(initial.Points, Point{X: p.X, Y: baseline})
		final.Points = append(final.Points, p)

		l.Markers = append(l.Markers, Element{
			ID:      fmt.Sprintf("marker-%d", i),
			Class:   "marker",
			Tooltip: c.Tooltip,
			Initial: Shape{Kind: KindCircle, Circle: &Circle{Center: p, R: 0}},
			Final:   Shape{Kind: KindCircle, Circle: &Circle{Center: p, R: opts.MarkerRadius}},
			Transition: Transition{
				Delay:    time.Duration(i) * (opts.MarkerSpread / time.Duration(n)),
				Duration: opts.MarkerDuration,
				Ease:     opts.Transition.Ease,
			},
		})
	}

	l.Path = Element{
		ID:         "line",
		Class:      "line",
		Initial:    initial,
		Final:      final,
		Transition: opts.Transition,
	}

	days := Axis{
		ID:     "axis-x",
		Orient: OrientBottom,
		From:   Point{X: left, Y: baseline},
		To:     Point{X: right, Y: baseline},
	}
	for i, c := range series {
		days.Ticks = append(days.Ticks, Tick{Value: float64(i), Pos: Point{X: l.Points[i].X, Y: baseline}, Text: c.Label})
	}
	values := Axis{
		ID:     "axis-y",
		Orient: OrientLeft,
		From:   Point{X: left, Y: baseline},
		To:     Point{X: left, Y: top},
	}
	for _, v := range AxisTicks(max, opts.TickStep) {
		values.Ticks = append(values.Ticks, Tick{Value: v, Pos: Point{X: left, Y: y.Scale(v)}, Text: strconv.FormatFloat(v, 'f', -1, 64)})
	}
	l.Axes = []Axis{days, values}

	return l, nil
}

// Nearest returns the index of the point closest to x horizontally.
// On a tie the lower index wins.
func (l *Line) Nearest(x float64) int {
	best, bestDist := -1, math.Inf(1)
	for i, p := range l.Points {
		if d := math.Abs(p.X - x); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func (l *Line) Scene() *Scene {
	return &Scene{
		Kind:     "sessions",
		Frame:    l.Frame,
		Axes:     l.Axes,
		Elements: append([]Element{l.Path}, l.Markers...),
	}
}
