package chart

import (
	"errors"
	"math"
	"strconv"
)

var (
	ErrNotDrawable   = errors.New("frame not drawable")
	ErrEmptySeries   = errors.New("empty series")
	ErrOutOfRange    = errors.New("value out of range")
	ErrShapeMismatch = errors.New("shapes cannot be interpolated")
	ErrStale         = errors.New("stale viewport generation")
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Padding struct {
	Top    float64 `json:"top" toml:"top"`
	Right  float64 `json:"right" toml:"right"`
	Bottom float64 `json:"bottom" toml:"bottom"`
	Left   float64 `json:"left" toml:"left"`
}

// UniformPadding returns the same padding on all four sides.
func UniformPadding(p float64) Padding {
	return Padding{Top: p, Right: p, Bottom: p, Left: p}
}

func (p Padding) Horizontal() float64 {
	return p.Left + p.Right
}

func (p Padding) Vertical() float64 {
	return p.Top + p.Bottom
}

// Frame is the measured container box a chart is drawn into.
type Frame struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Padding Padding `json:"padding"`
}

func NewFrame(width, height float64, padding Padding) Frame {
	return Frame{
		Width:   width,
		Height:  height,
		Padding: padding,
	}
}

// Drawable reports whether the container has been laid out.
// Nothing is computed for a frame with a zero (or negative) dimension.
func (f Frame) Drawable() bool {
	return f.Width > 0 && f.Height > 0
}

// Usable reports whether something is left to draw in once the padding is
// taken off.
func (f Frame) Usable() bool {
	return f.Drawable() && f.InnerWidth() > 0 && f.InnerHeight() > 0
}

func (f Frame) InnerWidth() float64 {
	return math.Max(0, f.Width-f.Padding.Horizontal())
}

func (f Frame) InnerHeight() float64 {
	return math.Max(0, f.Height-f.Padding.Vertical())
}

func (f Frame) Center() Point {
	return Point{X: f.Width / 2, Y: f.Height / 2}
}

// Radial is the polar geometry of round charts (radar, gauge).
type Radial struct {
	CenterX float64 `json:"centerX"`
	CenterY float64 `json:"centerY"`
	Radius  float64 `json:"radius"`
}

func (r Radial) Center() Point {
	return Point{X: r.CenterX, Y: r.CenterY}
}

// Radial derives the largest circle fitting the usable area of the frame.
// When the usable width and height are equal the width branch is used.
func (f Frame) Radial() (Radial, error) {
	if !f.Usable() {
		return Radial{}, ErrNotDrawable
	}

	usableWidth := f.InnerWidth()
	usableHeight := f.InnerHeight()

	radius := usableHeight / 2
	if usableWidth <= usableHeight {
		radius = usableWidth / 2
	}

	c := f.Center()
	return Radial{
		CenterX: c.X,
		CenterY: c.Y,
		Radius:  radius,
	}, nil
}

// num formats a coordinate for path data, keeping two decimals at most.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
