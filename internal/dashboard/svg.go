package dashboard

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/2beens/fitdash/internal/chart"

	svg "github.com/ajstarks/svgo"
)

const (
	LoadingText = "Chargement en cours"
	ErrorText   = "Oups ! Une erreur est survenue lors de la récupération de vos données"
	EmptyText   = "Aucune donnée"
)

const chartStyle = `
.axis { stroke: #dedede; stroke-width: 1; }
.tick { fill: #9b9eac; font: 14px sans-serif; }
.ring { fill: none; stroke: #ffffff; stroke-width: 1; }
.axis-label { fill: #ffffff; font: 12px sans-serif; }
.bar-primary, .bar-primary-cap { fill: #282d30; }
.bar-secondary, .bar-secondary-cap { fill: #e60000; }
.line { fill: none; stroke: #ffffff; stroke-width: 2; }
.marker { fill: #ffffff; }
.goal { fill: rgba(255, 255, 255, 0.3); }
.shape { fill: rgba(255, 1, 1, 0.7); }
.score-background { fill: #ffffff; }
.score-arc { fill: none; stroke: #ff0000; stroke-linecap: round; }
.score-label { fill: #282d30; font: bold 26px sans-serif; }
.state { fill: #74798c; font: 14px sans-serif; }
`

type SVGOptions struct {
	// Animate emits SMIL transitions from the initial to the final shapes.
	// Without it the final shapes are drawn right away.
	Animate bool
	Title   string
}

// RenderSVG writes the scene as a standalone SVG document.
func RenderSVG(w io.Writer, scene *chart.Scene, opts SVGOptions) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)

	width := int(math.Ceil(scene.Frame.Width))
	height := int(math.Ceil(scene.Frame.Height))
	canvas.Start(width, height, `class="chart chart-`+scene.Kind+`"`)
	if opts.Title != "" {
		canvas.Title(opts.Title)
	}
	canvas.Style("text/css", chartStyle)

	canvas.Gid("guides")
	for _, g := range scene.Guides {
		writeGuide(canvas, g)
	}
	canvas.Gend()

	canvas.Gid("axes")
	for _, a := range scene.Axes {
		writeAxis(canvas, a)
	}
	canvas.Gend()

	canvas.Gid("marks")
	for _, el := range scene.Elements {
		writeElement(canvas.Writer, el, opts.Animate)
	}
	canvas.Gend()

	canvas.Gid("labels")
	for _, l := range scene.Labels {
		attrs := []string{`class="` + l.Class + `"`}
		if l.ID != "" {
			attrs = append(attrs, `id="`+l.ID+`"`)
		}
		if l.Anchor != "" {
			attrs = append(attrs, `text-anchor="`+l.Anchor+`"`, `dominant-baseline="middle"`)
		}
		canvas.Text(round(l.Pos.X), round(l.Pos.Y), l.Text, attrs...)
	}
	canvas.Gend()

	canvas.End()
	return ew.err
}

// RenderStateSVG draws the placeholder shown while a chart is loading or
// when it cannot be drawn.
func RenderStateSVG(w io.Writer, width, height int, text string) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(width, height, `class="chart chart-state"`)
	canvas.Style("text/css", chartStyle)
	canvas.Text(width/2, height/2, text, `class="state"`, `text-anchor="middle"`)
	canvas.End()
	return ew.err
}

// SVGString renders the scene into a string, for inlining into a page.
func SVGString(scene *chart.Scene, opts SVGOptions) (string, error) {
	var buf bytes.Buffer
	if err := RenderSVG(&buf, scene, opts); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func writeGuide(canvas *svg.SVG, g chart.Shape) {
	switch g.Kind {
	case chart.KindCircle:
		if g.Circle == nil {
			return
		}
		canvas.Path(circlePath(*g.Circle), `class="score-background"`)
	default:
		canvas.Path(g.D(), `class="ring"`)
	}
}

func writeAxis(canvas *svg.SVG, a chart.Axis) {
	canvas.Path(fmt.Sprintf("M %s %s L %s %s", num(a.From.X), num(a.From.Y), num(a.To.X), num(a.To.Y)), `class="axis"`, `id="`+a.ID+`"`)
	for _, t := range a.Ticks {
		x, y, anchor := round(t.Pos.X), round(t.Pos.Y), "middle"
		switch a.Orient {
		case chart.OrientBottom:
			y += 25
		case chart.OrientRight:
			x += 15
			anchor = "start"
		case chart.OrientLeft:
			x -= 15
			anchor = "end"
		}
		canvas.Text(x, y, t.Text, `class="tick"`, `text-anchor="`+anchor+`"`)
	}
}

// writeElement emits one mark. svgo closes its shapes immediately, so marks
// carrying <animate> children and tooltips are written by hand.
func writeElement(w io.Writer, el chart.Element, animate bool) {
	base := el.Final
	if animate {
		base = el.Initial
	}
	open := fmt.Sprintf(`id="%s" class="%s"`, el.ID, el.Class)

	switch el.Final.Kind {
	case chart.KindRect:
		if base.Rect == nil || el.Initial.Rect == nil || el.Final.Rect == nil {
			return
		}
		r := base.Rect
		fmt.Fprintf(w, `<rect %s x="%s" y="%s" width="%s" height="%s">`+"\n", open, num(r.X), num(r.Y), num(r.Width), num(r.Height))
		if animate {
			writeAnimate(w, "y", num(el.Initial.Rect.Y), num(el.Final.Rect.Y), el.Transition)
			writeAnimate(w, "height", num(el.Initial.Rect.Height), num(el.Final.Rect.Height), el.Transition)
		}
		writeTooltip(w, el.Tooltip)
		fmt.Fprintln(w, `</rect>`)

	case chart.KindCircle:
		if base.Circle == nil || el.Initial.Circle == nil || el.Final.Circle == nil {
			return
		}
		c := base.Circle
		fmt.Fprintf(w, `<circle %s cx="%s" cy="%s" r="%s">`+"\n", open, num(c.Center.X), num(c.Center.Y), num(c.R))
		if animate {
			writeAnimate(w, "cy", num(el.Initial.Circle.Center.Y), num(el.Final.Circle.Center.Y), el.Transition)
			writeAnimate(w, "r", num(el.Initial.Circle.R), num(el.Final.Circle.R), el.Transition)
		}
		writeTooltip(w, el.Tooltip)
		fmt.Fprintln(w, `</circle>`)

	case chart.KindArc:
		// interpolating arc endpoints would cut the chord, so the final arc is
		// revealed through its dash offset instead
		offset, strokeWidth := "0", el.Final.StrokeWidth
		if animate {
			offset, strokeWidth = "100", el.Initial.StrokeWidth
		}
		fmt.Fprintf(w, `<path %s d="%s" pathLength="100" stroke-dasharray="100" stroke-dashoffset="%s" stroke-width="%s">`+"\n",
			open, el.Final.D(), offset, num(strokeWidth))
		if animate {
			writeAnimate(w, "stroke-dashoffset", "100", "0", el.Transition)
			writeAnimate(w, "stroke-width", num(el.Initial.StrokeWidth), num(el.Final.StrokeWidth), el.Transition)
		}
		writeTooltip(w, el.Tooltip)
		fmt.Fprintln(w, `</path>`)

	default:
		fmt.Fprintf(w, `<path %s d="%s">`+"\n", open, base.D())
		if animate {
			writeAnimate(w, "d", el.Initial.D(), el.Final.D(), el.Transition)
		}
		writeTooltip(w, el.Tooltip)
		fmt.Fprintln(w, `</path>`)
	}
}

func writeAnimate(w io.Writer, attr, from, to string, t chart.Transition) {
	fmt.Fprintf(w,
		`<animate attributeName="%s" from="%s" to="%s" begin="%s" dur="%s" fill="freeze" calcMode="spline" keyTimes="0;1" keySplines="%s"/>`+"\n",
		attr, from, to, smilTime(t.Delay), smilTime(t.Duration), t.Ease.KeySplines(),
	)
}

func writeTooltip(w io.Writer, text string) {
	if text == "" {
		return
	}
	io.WriteString(w, "<title>")
	xml.EscapeText(w, []byte(text))
	io.WriteString(w, "</title>\n")
}

func smilTime(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10) + "ms"
}

func circlePath(c chart.Circle) string {
	return fmt.Sprintf("M %s %s a %s %s 0 1 0 %s 0 a %s %s 0 1 0 %s 0",
		num(c.Center.X-c.R), num(c.Center.Y),
		num(c.R), num(c.R), num(2*c.R),
		num(c.R), num(c.R), num(-2*c.R),
	)
}

func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func round(v float64) int {
	return int(math.Round(v))
}

// errWriter keeps the first write error; svgo itself never reports one.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	if err != nil {
		ew.err = err
	}
	return n, err
}
