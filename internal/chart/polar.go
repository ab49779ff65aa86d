package chart

import (
	"fmt"
	"math"
)

// AngularSpacing is the angle in degrees between two category axes.
func AngularSpacing(count int) (float64, error) {
	if count < 1 {
		return 0, fmt.Errorf("angular spacing for %d categories: %w", count, ErrEmptySeries)
	}
	return 360 / float64(count), nil
}

// PolarPoint converts an angle (degrees) and a magnitude into pixel coordinates
// around the geometry center. offsetDeg rotates every point by the same amount;
// the radar passes half the angular spacing so categories sit between ticks.
func PolarPoint(angleDeg, magnitude float64, g Radial, offsetDeg float64, s Linear) Point {
	rad := (angleDeg + offsetDeg) * (math.Pi / 180)
	m := s.Scale(magnitude)
	return Point{
		X: g.CenterX + math.Cos(rad)*m,
		Y: g.CenterY + math.Sin(rad)*m,
	}
}
