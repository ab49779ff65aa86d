package chart

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Linear maps a domain interval onto a range interval.
type Linear struct {
	domain [2]float64
	rng    [2]float64
}

// NewLinear builds a linear scale. A degenerate domain or range (min == max)
// is widened to max = min + 1 so Scale never yields NaN or Inf.
func NewLinear(domain, rng [2]float64) Linear {
	if domain[0] == domain[1] {
		domain[1] = domain[0] + 1
	}
	if rng[0] == rng[1] {
		rng[1] = rng[0] + 1
	}
	return Linear{
		domain: domain,
		rng:    rng,
	}
}

func (l Linear) Scale(v float64) float64 {
	t := (v - l.domain[0]) / (l.domain[1] - l.domain[0])
	return l.rng[0] + t*(l.rng[1]-l.rng[0])
}

func (l Linear) Domain() [2]float64 {
	return l.domain
}

func (l Linear) Range() [2]float64 {
	return l.rng
}

// AxisCeiling rounds max up to the next multiple of 10 and adds 10 of headroom,
// so the outermost tick never touches the data maximum.
func AxisCeiling(max float64) float64 {
	return math.Ceil(max/10)*10 + 10
}

// AxisTicks returns evenly spaced ticks from 0 up to AxisCeiling(domainMax).
// Only multiples of step not exceeding the ceiling are produced; a
// non-positive step yields the two bounds.
func AxisTicks(domainMax, step float64) []float64 {
	ceiling := AxisCeiling(domainMax)
	if step <= 0 {
		return []float64{0, ceiling}
	}

	var ticks []float64
	for i := 0; ; i++ {
		v := float64(i) * step
		if v > ceiling+1e-9 {
			break
		}
		ticks = append(ticks, v)
	}
	return ticks
}

// SeriesMax returns the largest value; an empty series has no maximum.
func SeriesMax(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptySeries
	}
	return floats.Max(values), nil
}

func SeriesMin(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptySeries
	}
	return floats.Min(values), nil
}
