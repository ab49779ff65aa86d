package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/fitdash/internal/chart"
	"github.com/2beens/fitdash/internal/telemetry/metrics"
	"github.com/2beens/fitdash/internal/telemetry/tracing"
	"github.com/2beens/fitdash/internal/userdata"
	"github.com/2beens/fitdash/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatPNG  = "png"
)

var (
	errBadSize  = errors.New("invalid chart size")
	errBadQuery = errors.New("invalid chart query")
)

type RecordsResponse struct {
	userdata.Records
	Errors map[ChartKind]string `json:"errors,omitempty"`
}

type Handler struct {
	loader         *Loader
	chartOpts      ChartOptions
	sizes          map[ChartKind]Size
	metricsManager *metrics.Manager
}

func NewHandler(
	loader *Loader,
	chartOpts ChartOptions,
	sizes map[ChartKind]Size,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		loader:         loader,
		chartOpts:      chartOpts,
		sizes:          sizes,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/user/{id:[0-9]+}/dashboard", handler.handleDashboard).Methods("GET").Name("dashboard")
	r.HandleFunc("/user/{id:[0-9]+}/echarts", handler.handleECharts).Methods("GET").Name("echarts")
	r.HandleFunc("/user/{id:[0-9]+}/records", handler.handleRecords).Methods("GET").Name("records")
}

// SetupChartRoutes registers the single chart routes, kept apart so they can
// be rate limited on their own.
func (handler *Handler) SetupChartRoutes(r *mux.Router) {
	r.HandleFunc("/user/{id:[0-9]+}/charts/{kind:[a-z]+}.{format:svg|json|png}", handler.handleChart).Methods("GET").Name("chart")
}

// StatusFor maps a dashboard error onto the HTTP status it is answered with.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnknownChart):
		return http.StatusNotFound
	case errors.Is(err, errBadSize), errors.Is(err, errBadQuery):
		return http.StatusBadRequest
	case errors.Is(err, userdata.ErrUnavailable):
		// malformed payloads wrap ErrUnavailable too
		return http.StatusBadGateway
	case errors.Is(err, chart.ErrEmptySeries), errors.Is(err, chart.ErrOutOfRange):
		return http.StatusUnprocessableEntity
	case errors.Is(err, chart.ErrNotDrawable):
		return http.StatusNoContent
	default:
		return http.StatusInternalServerError
	}
}

func userIDFrom(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["id"])
}

// sizeFrom reads the w / h query params, falling back to the default size of
// the chart kind.
func (handler *Handler) sizeFrom(r *http.Request, kind ChartKind) (Size, error) {
	size := handler.sizes[kind]
	query := r.URL.Query()
	for param, dst := range map[string]*float64{"w": &size.Width, "h": &size.Height} {
		raw := query.Get(param)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || v < 0 || v > 10000 {
			return Size{}, errBadSize
		}
		*dst = v
	}
	return size, nil
}

// chartQuery holds the optional ?hover=<x> and ?at=<ms> params of a json chart.
type chartQuery struct {
	hover   *float64
	elapsed *time.Duration
}

func chartQueryFrom(r *http.Request, kind ChartKind, format string) (chartQuery, error) {
	var q chartQuery
	query := r.URL.Query()
	if raw := query.Get("hover"); raw != "" {
		x, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
			return q, fmt.Errorf("hover %q: %w", raw, errBadQuery)
		}
		if kind != ChartSessions {
			return q, fmt.Errorf("hover on %s chart: %w", kind, errBadQuery)
		}
		q.hover = &x
	}
	if raw := query.Get("at"); raw != "" {
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || ms < 0 {
			return q, fmt.Errorf("at %q: %w", raw, errBadQuery)
		}
		elapsed := time.Duration(ms) * time.Millisecond
		q.elapsed = &elapsed
	}
	if (q.hover != nil || q.elapsed != nil) && format != FormatJSON {
		return q, fmt.Errorf("hover and at need the json format: %w", errBadQuery)
	}
	return q, nil
}

// load refreshes the shared board of the user, dropping the cached user data
// first when ?refresh is set.
func (handler *Handler) load(ctx context.Context, r *http.Request, userID int) (*Board, func()) {
	if r.URL.Query().Get("refresh") != "" {
		handler.loader.Invalidate(ctx, userID)
	}
	return handler.loader.Load(ctx, userID)
}

func (handler *Handler) handleChart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.chart")
	defer span.End()

	userID, err := userIDFrom(r)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}
	vars := mux.Vars(r)
	format := vars["format"]
	kind, err := ParseChartKind(vars["kind"])
	if err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	span.SetAttributes(attribute.Int("user", userID), attribute.String("chart", string(kind)), attribute.String("format", format))

	size, err := handler.sizeFrom(r, kind)
	if err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	query, err := chartQueryFrom(r, kind, format)
	if err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}

	if r.URL.Query().Get("refresh") != "" {
		handler.loader.Invalidate(ctx, userID)
	}
	board, err := handler.loader.LoadChart(ctx, userID, kind)
	if err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	if _, fetchErr := board.Status(kind); fetchErr != nil {
		log.Errorf("user %d: %s chart data: %s", userID, kind, fetchErr)
		http.Error(w, "failed to get user data", StatusFor(fetchErr))
		return
	}

	start := time.Now()
	var (
		buf         bytes.Buffer
		contentType string
	)
	switch {
	case format == FormatPNG:
		contentType = pkg.ContentType.PNG
		err = RenderPNG(&buf, kind, board.Records(), size.Width, size.Height)
	case query.hover != nil:
		var tip *chart.Tooltip
		tip, err = handler.chartOpts.Hover(board.Records(), size.Width, size.Height, *query.hover)
		if err == nil {
			contentType = pkg.ContentType.JSON
			err = json.NewEncoder(&buf).Encode(tip)
		}
	case query.elapsed != nil:
		var sampled *Sampled
		sampled, err = handler.chartOpts.Sample(kind, board.Records(), size.Width, size.Height, *query.elapsed)
		if err == nil {
			contentType = pkg.ContentType.JSON
			err = json.NewEncoder(&buf).Encode(sampled)
		}
	default:
		var scene *chart.Scene
		scene, err = handler.chartOpts.Scene(kind, board.Records(), size.Width, size.Height)
		if err != nil {
			break
		}
		if format == FormatJSON {
			contentType = pkg.ContentType.JSON
			err = json.NewEncoder(&buf).Encode(scene)
		} else {
			contentType = pkg.ContentType.SVG
			err = RenderSVG(&buf, scene, SVGOptions{
				Animate: r.URL.Query().Get("static") == "",
				Title:   kind.Title(),
			})
		}
	}

	if err != nil {
		status := StatusFor(err)
		if status == http.StatusNoContent {
			w.WriteHeader(status)
			return
		}
		if status == http.StatusInternalServerError {
			log.Errorf("render %s chart %s for user %d: %s", format, kind, userID, err)
		} else {
			log.Debugf("render %s chart %s for user %d: %s", format, kind, userID, err)
		}
		http.Error(w, err.Error(), status)
		return
	}

	handler.observeRender(kind, format, start)
	pkg.WriteResponseBytesOK(w, contentType, buf.Bytes())
}

func (handler *Handler) observeRender(kind ChartKind, format string, start time.Time) {
	if handler.metricsManager == nil {
		return
	}
	handler.metricsManager.CounterChartsRendered.WithLabelValues(string(kind), format).Inc()
	handler.metricsManager.HistRenderDuration.WithLabelValues(string(kind), format).Observe(time.Since(start).Seconds())
}

// failedAll reports whether no chart of the board got its data.
func failedAll(board *Board) error {
	var lastErr error
	for _, kind := range ChartKinds {
		_, err := board.Status(kind)
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return lastErr
}

func (handler *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.page")
	defer span.End()

	userID, err := userIDFrom(r)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.Int("user", userID))

	board, release := handler.load(ctx, r, userID)
	defer release()
	if err := failedAll(board); err != nil {
		log.Errorf("dashboard for user %d: %s", userID, err)
		pkg.WriteResponse(w, pkg.ContentType.Text, ErrorText, StatusFor(err))
		return
	}

	start := time.Now()
	data, err := BuildPage(board, handler.chartOpts, handler.sizes)
	if err != nil {
		log.Errorf("build dashboard for user %d: %s", userID, err)
		http.Error(w, "failed to build dashboard", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := RenderPage(&buf, data); err != nil {
		log.Errorf("render dashboard for user %d: %s", userID, err)
		http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
		return
	}

	handler.observeRender("page", "html", start)
	pkg.WriteResponseBytesOK(w, pkg.ContentType.HTML, buf.Bytes())
}

func (handler *Handler) handleECharts(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.echarts")
	defer span.End()

	userID, err := userIDFrom(r)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	board, release := handler.load(ctx, r, userID)
	defer release()
	if err := failedAll(board); err != nil {
		log.Errorf("echarts for user %d: %s", userID, err)
		http.Error(w, "failed to get user data", StatusFor(err))
		return
	}

	start := time.Now()
	var buf bytes.Buffer
	if err := RenderECharts(&buf, board.Records()); err != nil {
		log.Errorf("echarts for user %d: %s", userID, err)
		http.Error(w, "failed to render charts", http.StatusInternalServerError)
		return
	}

	handler.observeRender("page", "echarts", start)
	pkg.WriteResponseBytesOK(w, pkg.ContentType.HTML, buf.Bytes())
}

func (handler *Handler) handleRecords(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.records")
	defer span.End()

	userID, err := userIDFrom(r)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	board, release := handler.load(ctx, r, userID)
	defer release()
	if err := failedAll(board); err != nil {
		log.Errorf("records for user %d: %s", userID, err)
		http.Error(w, "failed to get user data", StatusFor(err))
		return
	}

	resp := RecordsResponse{Records: board.Records()}
	for _, kind := range ChartKinds {
		if _, err := board.Status(kind); err != nil {
			if resp.Errors == nil {
				resp.Errors = make(map[ChartKind]string)
			}
			resp.Errors[kind] = err.Error()
		}
	}

	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("marshal records for user %d: %s", userID, err)
		http.Error(w, "failed to marshal records", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}
