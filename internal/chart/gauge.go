package chart

import (
	"fmt"
	"math"
	"strconv"
)

// FullSweep is the largest drawable sweep: an arc whose start and end points
// coincide is not rendered, so 100% is drawn just short of the full circle.
const FullSweep = 99.999

type GaugeOptions struct {
	// Padding is subtracted once from the smaller frame dimension.
	Padding    float64
	BarWidth   float64
	Transition Transition
}

func DefaultGaugeOptions() GaugeOptions {
	return GaugeOptions{
		Padding:    50,
		BarWidth:   15,
		Transition: DefaultTransition(),
	}
}

type Gauge struct {
	Frame      Frame
	Geometry   Radial
	Value      float64
	Label      string
	Background Circle
	Arc        Element
}

// GaugeFromFraction builds a gauge from a 0..1 completion ratio.
func GaugeFromFraction(frame Frame, fraction float64, opts GaugeOptions) (*Gauge, error) {
	return BuildGauge(frame, fraction*100, opts)
}

// BuildGauge lays out a radial progress arc for a percentage in [0, 100].
func BuildGauge(frame Frame, value float64, opts GaugeOptions) (*Gauge, error) {
	if math.IsNaN(value) || value < 0 || value > 100 {
		return nil, fmt.Errorf("gauge value %v: %w", value, ErrOutOfRange)
	}

	frame.Padding = UniformPadding(opts.Padding / 2)
	geometry, err := frame.Radial()
	if err != nil {
		return nil, err
	}

	sweep := value
	if sweep >= 100 {
		sweep = FullSweep
	}

	center := geometry.Center()
	final := NewArc(center, geometry.Radius, sweep)
	initial := NewArc(center, geometry.Radius, 0)

	return &Gauge{
		Frame:    frame,
		Geometry: geometry,
		Value:    value,
		Label:    strconv.FormatFloat(math.Round(value), 'f', -1, 64) + "%",
		Background: Circle{
			Center: center,
			R:      math.Max(0, geometry.Radius-opts.BarWidth/2),
		},
		Arc: Element{
			ID:    "score",
			Class: "score-arc",
			Initial: Shape{
				Kind:        KindArc,
				Arc:         &initial,
				StrokeWidth: 0,
			},
			Final: Shape{
				Kind:        KindArc,
				Arc:         &final,
				StrokeWidth: opts.BarWidth,
			},
			Transition: opts.Transition,
		},
	}, nil
}

func (g *Gauge) Scene() *Scene {
	return &Scene{
		Kind:  "score",
		Frame: g.Frame,
		Guides: []Shape{{
			Kind:   KindCircle,
			Circle: &g.Background,
		}},
		Labels: []Label{{
			ID:     "score-label",
			Class:  "score-label",
			Pos:    g.Geometry.Center(),
			Text:   g.Label,
			Anchor: "middle",
		}},
		Elements: []Element{g.Arc},
	}
}
