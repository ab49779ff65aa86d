package chart

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

const DefaultTransitionDuration = time.Second

type Ease string

const (
	EaseLinear   Ease = "linear"
	EaseCubicOut Ease = "cubic-out"
)

// At maps linear progress t in [0, 1] onto eased progress.
func (e Ease) At(t float64) float64 {
	t = math.Min(1, math.Max(0, t))
	switch e {
	case EaseCubicOut:
		return PolyOut(3)(t)
	default:
		return t
	}
}

// KeySplines is the cubic Bezier approximation of the easing, as used by
// SMIL animations with calcMode="spline".
func (e Ease) KeySplines() string {
	switch e {
	case EaseCubicOut:
		return "0.33 1 0.68 1"
	default:
		return "0 0 1 1"
	}
}

// PolyOut is the polynomial ease-out 1 - (1-t)^exponent.
func PolyOut(exponent float64) func(t float64) float64 {
	return func(t float64) float64 {
		return 1 - math.Pow(1-t, exponent)
	}
}

type Transition struct {
	Delay    time.Duration
	Duration time.Duration
	Ease     Ease
}

func DefaultTransition() Transition {
	return Transition{
		Duration: DefaultTransitionDuration,
		Ease:     EaseCubicOut,
	}
}

func (t Transition) End() time.Duration {
	return t.Delay + t.Duration
}

// Progress returns the eased progress at elapsed time since the chart was drawn.
func (t Transition) Progress(elapsed time.Duration) float64 {
	if elapsed <= t.Delay {
		return 0
	}
	if t.Duration <= 0 || elapsed >= t.End() {
		return 1
	}
	linear := float64(elapsed-t.Delay) / float64(t.Duration)
	return t.Ease.At(linear)
}

func (t Transition) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		DelayMs    int64 `json:"delayMs"`
		DurationMs int64 `json:"durationMs"`
		Ease       Ease  `json:"ease"`
	}{
		DelayMs:    t.Delay.Milliseconds(),
		DurationMs: t.Duration.Milliseconds(),
		Ease:       t.Ease,
	})
}

// Stagger spreads the transitions of a group of elements by index,
// producing a left to right reveal.
type Stagger struct {
	Delay    time.Duration `json:"delay"`
	Duration time.Duration `json:"duration"`
}

func (s Stagger) Apply(base Transition, index int) Transition {
	base.Delay += time.Duration(index) * s.Delay
	base.Duration += time.Duration(index) * s.Duration
	return base
}

// Sequence chains transitions so each starts when the previous one ends.
// The first keeps its own delay.
func Sequence(ts ...Transition) []Transition {
	out := make([]Transition, len(ts))
	for i, t := range ts {
		if i > 0 {
			t.Delay = out[i-1].End()
		}
		out[i] = t
	}
	return out
}

func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func LerpPoint(a, b Point, t float64) Point {
	return Point{X: Lerp(a.X, b.X, t), Y: Lerp(a.Y, b.Y, t)}
}

// LerpShape interpolates between two shapes of the same kind and size.
func LerpShape(from, to Shape, t float64) (Shape, error) {
	if from.Kind != to.Kind || len(from.Points) != len(to.Points) {
		return Shape{}, fmt.Errorf("%s(%d) -> %s(%d): %w", from.Kind, len(from.Points), to.Kind, len(to.Points), ErrShapeMismatch)
	}

	out := Shape{
		Kind:        to.Kind,
		Closed:      to.Closed,
		StrokeWidth: Lerp(from.StrokeWidth, to.StrokeWidth, t),
	}

	if len(to.Points) > 0 {
		out.Points = make([]Point, len(to.Points))
		for i := range to.Points {
			out.Points[i] = LerpPoint(from.Points[i], to.Points[i], t)
		}
	}

	switch to.Kind {
	case KindArc:
		if from.Arc == nil || to.Arc == nil {
			return Shape{}, fmt.Errorf("arc missing: %w", ErrShapeMismatch)
		}
		arc := NewArc(
			LerpPoint(from.Arc.Center, to.Arc.Center, t),
			Lerp(from.Arc.Radius, to.Arc.Radius, t),
			Lerp(from.Arc.Sweep, to.Arc.Sweep, t),
		)
		out.Arc = &arc
	case KindRect:
		if from.Rect == nil || to.Rect == nil {
			return Shape{}, fmt.Errorf("rect missing: %w", ErrShapeMismatch)
		}
		out.Rect = &Rect{
			X:      Lerp(from.Rect.X, to.Rect.X, t),
			Y:      Lerp(from.Rect.Y, to.Rect.Y, t),
			Width:  Lerp(from.Rect.Width, to.Rect.Width, t),
			Height: Lerp(from.Rect.Height, to.Rect.Height, t),
		}
	case KindCircle:
		if from.Circle == nil || to.Circle == nil {
			return Shape{}, fmt.Errorf("circle missing: %w", ErrShapeMismatch)
		}
		out.Circle = &Circle{
			Center: LerpPoint(from.Circle.Center, to.Circle.Center, t),
			R:      Lerp(from.Circle.R, to.Circle.R, t),
		}
	}

	return out, nil
}

// At returns the element shape at elapsed time since the chart was drawn.
func (el Element) At(elapsed time.Duration) (Shape, error) {
	return LerpShape(el.Initial, el.Final, el.Transition.Progress(elapsed))
}
