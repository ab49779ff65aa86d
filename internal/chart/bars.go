package chart

import (
	"fmt"
	"strconv"
	"time"
)

type BarOptions struct {
	Padding  Padding
	BarWidth float64
	Spacing  float64

	// Frames not wider than CompactBreakpoint use the compact bar geometry.
	CompactBreakpoint float64
	CompactBarWidth   float64
	CompactSpacing    float64

	PrimaryTickStep   float64
	SecondaryTickStep float64
	RoundedCaps       bool

	Transition Transition
	Stagger    Stagger
}

func DefaultBarOptions() BarOptions {
	return BarOptions{
		Padding:           Padding{Top: 10, Right: 50, Bottom: 30, Left: 50},
		BarWidth:          20,
		Spacing:           10,
		CompactBreakpoint: 800,
		CompactBarWidth:   10,
		CompactSpacing:    5,
		PrimaryTickStep:   10,
		SecondaryTickStep: 50,
		Transition: Transition{
			Duration: 500 * time.Millisecond,
			Ease:     EaseCubicOut,
		},
		Stagger: Stagger{Duration: 200 * time.Millisecond},
	}
}

type Bars struct {
	Frame    Frame
	BarWidth float64
	Spacing  float64
	Baseline float64

	X                Linear
	Primary          Linear
	Secondary        Linear
	PrimaryCeiling   float64
	SecondaryCeiling float64

	Axes      []Axis
	Elements  []Element
	CapsShown bool
}

// BuildBars lays out pairs of vertical bars, one pair per category. Each of
// the two series gets its own 0..ceiling scale; categories are spread by
// their position in the series.
func BuildBars(frame Frame, series Series, opts BarOptions) (*Bars, error) {
	frame.Padding = opts.Padding
	if !frame.Usable() {
		return nil, ErrNotDrawable
	}
	if len(series) == 0 {
		return nil, ErrEmptySeries
	}

	barW, spacing := opts.BarWidth, opts.Spacing
	if opts.CompactBreakpoint > 0 && frame.Width <= opts.CompactBreakpoint {
		barW, spacing = opts.CompactBarWidth, opts.CompactSpacing
	}

	innerW := frame.InnerWidth()
	innerH := frame.InnerHeight()
	left := frame.Padding.Left
	baseline := frame.Padding.Top + innerH

	x := NewLinear(
		[2]float64{0, float64(len(series) - 1)},
		[2]float64{left + barW + spacing/2, left + innerW - barW - spacing/2},
	)

	// series max errors are impossible past the empty check
	primaryMax, _ := SeriesMax(series.Values())
	primaryCeiling := AxisCeiling(primaryMax)
	primary := NewLinear([2]float64{0, primaryCeiling}, [2]float64{0, innerH})

	b := &Bars{
		Frame:          frame,
		BarWidth:       barW,
		Spacing:        spacing,
		Baseline:       baseline,
		X:              x,
		Primary:        primary,
		PrimaryCeiling: primaryCeiling,
		CapsShown:      opts.RoundedCaps,
	}

	paired := series.HasSecondary()
	if paired {
		secondaryMax, _ := SeriesMax(series.Secondaries())
		b.SecondaryCeiling = AxisCeiling(secondaryMax)
		b.Secondary = NewLinear([2]float64{0, b.SecondaryCeiling}, [2]float64{0, innerH})
	}

	var caps []Element
	for i, c := range series {
		cx := x.Scale(float64(i))
		t := opts.Stagger.Apply(opts.Transition, i)

		bar, capEl := b.bar(fmt.Sprintf("primary-%d", i), "bar-primary", cx-barW-spacing/2, primary.Scale(c.Value), t)
		bar.Tooltip = c.Tooltip
		b.Elements = append(b.Elements, bar)
		caps = append(caps, capEl)

		if paired {
			bar, capEl := b.bar(fmt.Sprintf("secondary-%d", i), "bar-secondary", cx+spacing/2, b.Secondary.Scale(c.Secondary), t)
			bar.Tooltip = c.SecondaryTip
			b.Elements = append(b.Elements, bar)
			caps = append(caps, capEl)
		}
	}
	if opts.RoundedCaps {
		b.Elements = append(b.Elements, caps...)
	}

	b.Axes = b.axes(series, opts)

	return b, nil
}

// bar returns the bar element growing up from the baseline and the round
// cap riding on top of it.
func (b *Bars) bar(id, class string, x, height float64, t Transition) (Element, Element) {
	bar := Element{
		ID:    id,
		Class: class,
		Initial: Shape{
			Kind: KindRect,
			Rect: &Rect{X: x, Y: b.Baseline, Width: b.BarWidth, Height: 0},
		},
		Final: Shape{
			Kind: KindRect,
			Rect: &Rect{X: x, Y: b.Baseline - height, Width: b.BarWidth, Height: height},
		},
		Transition: t,
	}

	r := b.BarWidth / 2
	capEl := Element{
		ID:    id + "-cap",
		Class: class + "-cap",
		Initial: Shape{
			Kind:   KindCircle,
			Circle: &Circle{Center: Point{X: x + r, Y: b.Baseline}, R: r},
		},
		Final: Shape{
			Kind:   KindCircle,
			Circle: &Circle{Center: Point{X: x + r, Y: b.Baseline - height}, R: r},
		},
		Transition: t,
	}

	return bar, capEl
}

func (b *Bars) axes(series Series, opts BarOptions) []Axis {
	left := b.Frame.Padding.Left
	right := b.Frame.Width - b.Frame.Padding.Right
	top := b.Frame.Padding.Top

	days := Axis{
		ID:     "axis-x",
		Orient: OrientBottom,
		From:   Point{X: left, Y: b.Baseline},
		To:     Point{X: right, Y: b.Baseline},
	}
	for i, c := range series {
		text := c.Label
		if text == "" {
			text = strconv.Itoa(i + 1)
		}
		days.Ticks = append(days.Ticks, Tick{
			Value: float64(i),
			Pos:   Point{X: b.X.Scale(float64(i)), Y: b.Baseline},
			Text:  text,
		})
	}

	axes := []Axis{days, valueAxis("axis-primary", OrientLeft, left, top, b.Baseline, b.Primary, b.PrimaryCeiling, opts.PrimaryTickStep)}
	if b.SecondaryCeiling > 0 {
		axes = append(axes, valueAxis("axis-secondary", OrientRight, right, top, b.Baseline, b.Secondary, b.SecondaryCeiling, opts.SecondaryTickStep))
	}
	return axes
}

// valueAxis builds a vertical axis whose scale maps values to heights
// above the baseline.
func valueAxis(id string, orient Orientation, x, top, baseline float64, heights Linear, ceiling, step float64) Axis {
	axis := Axis{
		ID:     id,
		Orient: orient,
		From:   Point{X: x, Y: baseline},
		To:     Point{X: x, Y: top},
	}
	// AxisTicks already adds the headroom, so feed it the ceiling minus it
	for _, v := range AxisTicks(ceiling-10, step) {
		axis.Ticks = append(axis.Ticks, Tick{
			Value: v,
			Pos:   Point{X: x, Y: baseline - heights.Scale(v)},
			Text:  strconv.FormatFloat(v, 'f', -1, 64),
		})
	}
	return axis
}

func (b *Bars) Scene() *Scene {
	return &Scene{
		Kind:     "activity",
		Frame:    b.Frame,
		Axes:     b.Axes,
		Elements: b.Elements,
	}
}
