package chart

import (
	"math"
	"strings"
	"time"
)

type Kind string

const (
	KindPolygon  Kind = "polygon"
	KindPolyline Kind = "polyline"
	KindCurve    Kind = "curve"
	KindArc      Kind = "arc"
	KindRect     Kind = "rect"
	KindCircle   Kind = "circle"
)

// Arc is a circular arc starting at the top of the circle (-90deg) and
// sweeping clockwise over Sweep percent of the full turn.
type Arc struct {
	Center   Point   `json:"center"`
	Radius   float64 `json:"radius"`
	Sweep    float64 `json:"sweep"`
	Start    Point   `json:"start"`
	End      Point   `json:"end"`
	LargeArc int     `json:"largeArc"`
}

func NewArc(center Point, radius, sweep float64) Arc {
	return Arc{
		Center:   center,
		Radius:   radius,
		Sweep:    sweep,
		Start:    arcPoint(center, radius, 0),
		End:      arcPoint(center, radius, sweep),
		LargeArc: largeArcFlag(sweep),
	}
}

// largeArcFlag selects the long way round once the sweep passes half the circle.
// Exactly 50 stays on the small arc side.
func largeArcFlag(sweep float64) int {
	if sweep > 50 {
		return 1
	}
	return 0
}

func arcPoint(center Point, radius, percent float64) Point {
	rad := (percent*3.6 - 90) * (math.Pi / 180)
	return Point{
		X: center.X + math.Cos(rad)*radius,
		Y: center.Y + math.Sin(rad)*radius,
	}
}

type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Circle struct {
	Center Point   `json:"center"`
	R      float64 `json:"r"`
}

// Shape is a renderable geometry. Exactly one of Points, Arc, Rect or Circle
// is meaningful, depending on Kind.
type Shape struct {
	Kind        Kind    `json:"kind"`
	Points      []Point `json:"points,omitempty"`
	Closed      bool    `json:"closed,omitempty"`
	Arc         *Arc    `json:"arc,omitempty"`
	Rect        *Rect   `json:"rect,omitempty"`
	Circle      *Circle `json:"circle,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
}

// D returns the SVG path data of the shape.
func (s Shape) D() string {
	switch s.Kind {
	case KindPolygon, KindPolyline:
		return linearPath(s.Points, s.Closed || s.Kind == KindPolygon)
	case KindCurve:
		return bumpXPath(s.Points)
	case KindArc:
		if s.Arc == nil {
			return ""
		}
		a := s.Arc
		return "M " + num(a.Start.X) + " " + num(a.Start.Y) +
			" A " + num(a.Radius) + " " + num(a.Radius) +
			" 0 " + num(float64(a.LargeArc)) + " 1 " +
			num(a.End.X) + " " + num(a.End.Y)
	case KindRect:
		if s.Rect == nil {
			return ""
		}
		r := s.Rect
		return linearPath([]Point{
			{X: r.X, Y: r.Y},
			{X: r.X + r.Width, Y: r.Y},
			{X: r.X + r.Width, Y: r.Y + r.Height},
			{X: r.X, Y: r.Y + r.Height},
		}, true)
	default:
		return ""
	}
}

// PointList is the "x,y x,y" form used by polygon / polyline points attributes.
func (s Shape) PointList() string {
	parts := make([]string, 0, len(s.Points))
	for _, p := range s.Points {
		parts = append(parts, num(p.X)+","+num(p.Y))
	}
	return strings.Join(parts, " ")
}

func linearPath(points []Point, closed bool) string {
	if len(points) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, p := range points {
		if i == 0 {
			sb.WriteString("M ")
		} else {
			sb.WriteString(" L ")
		}
		sb.WriteString(num(p.X))
		sb.WriteByte(' ')
		sb.WriteString(num(p.Y))
	}
	if closed {
		sb.WriteString(" Z")
	}
	return sb.String()
}

// bumpXPath draws a smooth curve through the points with horizontal tangents
// at every point: each segment is a cubic Bezier whose control points sit at
// the horizontal midpoint of the segment.
func bumpXPath(points []Point) string {
	if len(points) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("M ")
	sb.WriteString(num(points[0].X))
	sb.WriteByte(' ')
	sb.WriteString(num(points[0].Y))
	for i := 1; i < len(points); i++ {
		p0, p1 := points[i-1], points[i]
		mx := (p0.X + p1.X) / 2
		sb.WriteString(" C ")
		sb.WriteString(num(mx) + " " + num(p0.Y) + " ")
		sb.WriteString(num(mx) + " " + num(p1.Y) + " ")
		sb.WriteString(num(p1.X) + " " + num(p1.Y))
	}
	return sb.String()
}

// Element is one animated mark of a chart: the degenerate initial shape,
// the computed final shape and the transition between them.
type Element struct {
	ID         string     `json:"id"`
	Class      string     `json:"class"`
	Tooltip    string     `json:"tooltip,omitempty"`
	Initial    Shape      `json:"initial"`
	Final      Shape      `json:"final"`
	Transition Transition `json:"transition"`
}

type Label struct {
	ID     string `json:"id,omitempty"`
	Class  string `json:"class"`
	Pos    Point  `json:"pos"`
	Text   string `json:"text"`
	Anchor string `json:"anchor,omitempty"`
}

type Orientation string

const (
	OrientLeft   Orientation = "left"
	OrientRight  Orientation = "right"
	OrientBottom Orientation = "bottom"
)

type Tick struct {
	Value float64 `json:"value"`
	Pos   Point   `json:"pos"`
	Text  string  `json:"text"`
}

type Axis struct {
	ID     string      `json:"id"`
	Orient Orientation `json:"orient"`
	From   Point       `json:"from"`
	To     Point       `json:"to"`
	Ticks  []Tick      `json:"ticks"`
}

// Scene is the renderer facing output of every builder.
type Scene struct {
	Kind     string    `json:"kind"`
	Frame    Frame     `json:"frame"`
	Guides   []Shape   `json:"guides,omitempty"`
	Axes     []Axis    `json:"axes,omitempty"`
	Labels   []Label   `json:"labels,omitempty"`
	Elements []Element `json:"elements"`
}

// TotalDuration is the time until the last element transition ends.
func (s *Scene) TotalDuration() time.Duration {
	var total time.Duration
	for _, el := range s.Elements {
		if end := el.Transition.End(); end > total {
			total = end
		}
	}
	return total
}

func (s *Scene) Element(id string) (Element, bool) {
	for _, el := range s.Elements {
		if el.ID == id {
			return el, true
		}
	}
	return Element{}, false
}
