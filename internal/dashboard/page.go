package dashboard

import (
	"bytes"
	"errors"
	"html/template"
	"io"

	"github.com/2beens/fitdash/internal/chart"
	"github.com/2beens/fitdash/internal/userdata"

	log "github.com/sirupsen/logrus"
)

type Size struct {
	Width  float64
	Height float64
}

// DefaultSizes are the container sizes of the desktop dashboard layout.
func DefaultSizes(width, height float64) map[ChartKind]Size {
	return map[ChartKind]Size{
		ChartActivity:    {Width: 835, Height: 320},
		ChartSessions:    {Width: width, Height: height},
		ChartPerformance: {Width: width, Height: height},
		ChartScore:       {Width: width, Height: height},
	}
}

type ChartView struct {
	Kind  ChartKind
	Title string
	SVG   template.HTML
}

type PageData struct {
	Greeting   string
	Message    string
	Charts     []ChartView
	Indicators []userdata.Indicator
}

// BuildPage lays out every chart of the board. A chart still loading, failed
// or without data is replaced by its state placeholder.
func BuildPage(board *Board, chartOpts ChartOptions, sizes map[ChartKind]Size) (*PageData, error) {
	rec := board.Records()
	data := &PageData{
		Greeting: Greeting(rec.User),
		Message:  Message(rec.User),
	}
	if rec.User != nil {
		data.Indicators = rec.User.KeyData.Indicators()
	}

	for _, kind := range ChartKinds {
		size := sizes[kind]
		svgText, err := chartSVG(board, kind, rec, chartOpts, size)
		if err != nil {
			return nil, err
		}
		data.Charts = append(data.Charts, ChartView{
			Kind:  kind,
			Title: kind.Title(),
			// rendered by our own svg writer, text content is escaped there
			SVG: template.HTML(svgText),
		})
	}
	return data, nil
}

func chartSVG(board *Board, kind ChartKind, rec userdata.Records, chartOpts ChartOptions, size Size) (string, error) {
	var buf bytes.Buffer
	w, h := int(size.Width), int(size.Height)

	loading, fetchErr := board.Status(kind)
	if loading {
		err := RenderStateSVG(&buf, w, h, LoadingText)
		return buf.String(), err
	}
	if fetchErr != nil {
		err := RenderStateSVG(&buf, w, h, ErrorText)
		return buf.String(), err
	}

	scene, err := chartOpts.Scene(kind, rec, size.Width, size.Height)
	switch {
	case errors.Is(err, chart.ErrEmptySeries), errors.Is(err, chart.ErrOutOfRange):
		log.Debugf("user %d: %s chart not drawn: %s", board.UserID, kind, err)
		err := RenderStateSVG(&buf, w, h, EmptyText)
		return buf.String(), err
	case errors.Is(err, chart.ErrNotDrawable):
		return "", nil
	case err != nil:
		return "", err
	}

	return SVGString(scene, SVGOptions{Animate: true, Title: kind.Title()})
}

var pageTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="utf-8">
<title>SportSee - {{ .Greeting }}</title>
<style>
body { font-family: sans-serif; margin: 2rem 4rem; color: #20253a; }
.dashboard__title { font-size: 48px; font-weight: 500; }
.dashboard__message { font-size: 18px; font-weight: 400; }
.dashboard__content { display: flex; gap: 30px; }
.dashboard__charts { display: flex; flex-wrap: wrap; gap: 30px; max-width: 835px; }
.chart--activity { background: #fbfbfb; }
.chart--sessions { background: #ff0000; }
.chart--performance { background: #282d30; }
.chart--score { background: #fbfbfb; }
.dashboard__indicators { display: flex; flex-direction: column; gap: 39px; }
.indicator { background: #fbfbfb; padding: 32px; border-radius: 5px; }
.indicator__value { font-weight: 700; font-size: 20px; }
</style>
</head>
<body>
<section class="dashboard">
<div class="dashboard__heading">
<h1 class="dashboard__title">{{ .Greeting }}</h1>
<h2 class="dashboard__message">{{ .Message }}</h2>
</div>
<div class="dashboard__content">
<div class="dashboard__charts">
{{- range .Charts }}
<figure class="chart--{{ .Kind }}" title="{{ .Title }}">{{ .SVG }}</figure>
{{- end }}
</div>
<div class="dashboard__indicators">
{{- range .Indicators }}
<div class="indicator indicator--{{ .Key }}">
<p class="indicator__value">{{ .Display }}</p>
<p class="indicator__name">{{ .Name }}</p>
</div>
{{- end }}
</div>
</div>
</section>
</body>
</html>
`))

func RenderPage(w io.Writer, data *PageData) error {
	return pageTemplate.Execute(w, data)
}
