package chart

import (
	"fmt"
)

// DefaultRadarTicks are the magnitudes of the concentric guide rings.
var DefaultRadarTicks = []float64{50, 100, 150, 200, 250}

type RadarOptions struct {
	Padding    Padding
	Ticks      []float64
	TickStep   float64
	Transition Transition
}

func DefaultRadarOptions() RadarOptions {
	return RadarOptions{
		Padding:    UniformPadding(50),
		Ticks:      DefaultRadarTicks,
		Transition: DefaultTransition(),
	}
}

type Radar struct {
	Frame    Frame
	Geometry Radial
	Spacing  float64
	Scale    Linear
	Rings    []Shape
	Labels   []Label
	Value    Element
	Goal     *Element
}

// BuildRadar lays out a performance radar. Category i is placed at angle
// spacing*(i+1) while rings start at spacing*0; both are rotated by half a
// spacing so labels sit on their wedge.
func BuildRadar(frame Frame, series Series, opts RadarOptions) (*Radar, error) {
	frame.Padding = opts.Padding
	geometry, err := frame.Radial()
	if err != nil {
		return nil, err
	}

	spacing, err := AngularSpacing(len(series))
	if err != nil {
		return nil, err
	}

	ticks := opts.Ticks
	if len(ticks) == 0 {
		max, err := SeriesMax(append(series.Values(), series.Secondaries()...))
		if err != nil {
			return nil, err
		}
		ticks = AxisTicks(max, opts.TickStep)[1:]
	}
	outer := ticks[len(ticks)-1]
	scale := NewLinear([2]float64{0, outer}, [2]float64{0, geometry.Radius})
	offset := spacing / 2

	r := &Radar{
		Frame:    frame,
		Geometry: geometry,
		Spacing:  spacing,
		Scale:    scale,
	}

	for _, tick := range ticks {
		ring := Shape{Kind: KindPolyline}
		for i := 0; i <= len(series); i++ {
			ring.Points = append(ring.Points, PolarPoint(spacing*float64(i), tick, geometry, offset, scale))
		}
		r.Rings = append(r.Rings, ring)
	}

	center := geometry.Center()
	valueShape := Shape{Kind: KindPolygon, Closed: true}
	goalShape := Shape{Kind: KindPolygon, Closed: true}
	initial := Shape{Kind: KindPolygon, Closed: true}
	for i, c := range series {
		angle := spacing * float64(i+1)
		valueShape.Points = append(valueShape.Points, PolarPoint(angle, c.Value, geometry, offset, scale))
		goalShape.Points = append(goalShape.Points, PolarPoint(angle, c.Secondary, geometry, offset, scale))
		initial.Points = append(initial.Points, center)

		r.Labels = append(r.Labels, Label{
			ID:     fmt.Sprintf("axis-label-%d", i+1),
			Class:  "axis-label",
			Pos:    PolarPoint(angle, outer, geometry, offset, scale),
			Text:   c.Label,
			Anchor: "middle",
		})
	}

	// rings are revealed first, then the goal, then the score on top of it
	transitions := Sequence(opts.Transition, opts.Transition, opts.Transition)
	valueTransition := transitions[1]
	if series.HasSecondary() {
		r.Goal = &Element{
			ID:         "goal",
			Class:      "goal",
			Initial:    initial,
			Final:      goalShape,
			Transition: transitions[1],
		}
		valueTransition = transitions[2]
	}

	r.Value = Element{
		ID:         "shape",
		Class:      "shape",
		Initial:    initial,
		Final:      valueShape,
		Transition: valueTransition,
	}

	return r, nil
}

func (r *Radar) Scene() *Scene {
	s := &Scene{
		Kind:   "performance",
		Frame:  r.Frame,
		Guides: r.Rings,
		Labels: r.Labels,
	}
	if r.Goal != nil {
		s.Elements = append(s.Elements, *r.Goal)
	}
	s.Elements = append(s.Elements, r.Value)
	return s
}
