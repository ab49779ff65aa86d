package dashboard

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/2beens/fitdash/internal/chart"
	"github.com/2beens/fitdash/internal/sampleapi"
	"github.com/2beens/fitdash/internal/telemetry/metrics"
	"github.com/2beens/fitdash/internal/userdata"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	promcl "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestRouter(source Source, metricsManager *metrics.Manager) *mux.Router {
	handler := NewHandler(
		NewLoader(source, time.Second, metricsManager),
		DefaultChartOptions(),
		DefaultSizes(258, 263),
		metricsManager,
	)
	r := mux.NewRouter()
	handler.SetupRoutes(r)
	handler.SetupChartRoutes(r)
	return r
}

func serve(r http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusOK, StatusFor(nil))
	assert.Equal(t, http.StatusNotFound, StatusFor(fmt.Errorf("x: %w", ErrUnknownChart)))
	assert.Equal(t, http.StatusBadGateway, StatusFor(userdata.ErrUnavailable))
	assert.Equal(t, http.StatusBadGateway, StatusFor(fmt.Errorf("user: %w", userdata.ErrMalformed)))
	assert.Equal(t, http.StatusUnprocessableEntity, StatusFor(chart.ErrEmptySeries))
	assert.Equal(t, http.StatusNoContent, StatusFor(chart.ErrNotDrawable))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(fmt.Errorf("boom")))
}

func TestHandler_ChartSVG(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := NewMockSource(ctrl)
	expectAll(source)
	metricsManager := metrics.NewTestManager()
	r := newTestRouter(source, metricsManager)

	rr := serve(r, "/user/12/charts/score.svg")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/svg+xml", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), ">12%</text>")
	assert.Contains(t, rr.Body.String(), "<animate")

	rr = serve(r, "/user/12/charts/activity.svg?w=600&h=300&static=1")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `<svg width="600" height="300"`)
	assert.NotContains(t, rr.Body.String(), "<animate")

	assert.Equal(t, float64(1), testutil.ToFloat64(metricsManager.CounterChartsRendered.WithLabelValues("score", FormatSVG)))
}

func TestHandler_RenderDurationObserved(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := NewMockSource(ctrl)
	expectAll(source)
	reg := prometheus.NewRegistry()
	metricsManager := metrics.NewManager("fitdash", "test_server", reg)
	r := newTestRouter(source, metricsManager)

	require.Equal(t, http.StatusOK, serve(r, "/user/12/charts/performance.svg").Code)
	require.Equal(t, http.StatusOK, serve(r, "/user/12/charts/performance.json").Code)

	gathered, err := reg.Gather()
	require.NoError(t, err)

	var foundDurationHistogram *promcl.MetricFamily
	for _, m := range gathered {
		if m.GetName() == "fitdash_test_server_render_duration_seconds" {
			foundDurationHistogram = m
			break
		}
	}
	if foundDurationHistogram == nil {
		t.Fatal("render duration histogram not gathered")
	}

	// one series per format
	require.Len(t, foundDurationHistogram.Metric, 2)
	for _, m := range foundDurationHistogram.Metric {
		require.NotNil(t, m.Histogram)
		assert.Equal(t, uint64(1), m.Histogram.GetSampleCount())
	}
}

func TestHandler_ChartJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := NewMockSource(ctrl)
	expectAll(source)
	r := newTestRouter(source, metrics.NewTestManager())

	rr := serve(r, "/user/12/charts/performance.json?w=400&h=400")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var scene struct {
		Kind     string `json:"kind"`
		Elements []struct {
			ID         string `json:"id"`
			Transition struct {
				DelayMs    int64 `json:"delayMs"`
				DurationMs int64 `json:"durationMs"`
			} `json:"transition"`
		} `json:"elements"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &scene))
	assert.Equal(t, "performance", scene.Kind)
	require.Len(t, scene.Elements, 1)
	assert.Equal(t, "shape", scene.Elements[0].ID)
	assert.Equal(t, int64(1000), scene.Elements[0].Transition.DelayMs)
}

func TestHandler_ChartHover(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := NewMockSource(ctrl)
	expectAll(source)
	r := newTestRouter(source, metrics.NewTestManager())

	testCases := []struct {
		target string
		index  int
		x      float64
		text   string
	}{
		{target: "/user/12/charts/sessions.json?hover=0", index: 0, x: 35 + chart.TooltipOffsetX, text: "Durée : 30 min"},
		{target: "/user/12/charts/sessions.json?hover=1000", index: 6, x: 243 + chart.TooltipOffsetX, text: "Durée : 60 min"},
	}
	for _, tc := range testCases {
		rr := serve(r, tc.target)
		require.Equal(t, http.StatusOK, rr.Code, tc.target)

		var tip chart.Tooltip
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tip))
		assert.True(t, tip.Visible)
		assert.Equal(t, tc.index, tip.Index)
		assert.InDelta(t, tc.x, tip.X, 1e-9)
		assert.Equal(t, tc.text, tip.Text)
	}
}

func TestHandler_ChartSampled(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := NewMockSource(ctrl)
	expectAll(source)
	r := newTestRouter(source, metrics.NewTestManager())

	var start, end Sampled
	rr := serve(r, "/user/12/charts/sessions.json?at=0")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &start))
	rr = serve(r, "/user/12/charts/sessions.json?at=60000")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &end))

	assert.False(t, start.Done)
	assert.True(t, end.Done)
	assert.Equal(t, int64(60000), end.ElapsedMs)
	// the path and one marker per day
	require.Len(t, start.Shapes, 8)
	require.Len(t, end.Shapes, 8)
	for _, p := range start.Shapes[0].Points {
		assert.Equal(t, 228.0, p.Y)
	}
	assert.NotEqual(t, start.Shapes[0].Points, end.Shapes[0].Points)
}

func TestHandler_RefreshInvalidates(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := NewMockSource(ctrl)
	expectAll(source)
	source.EXPECT().Invalidate(gomock.Any(), 12).Times(2)
	r := newTestRouter(source, metrics.NewTestManager())

	rr := serve(r, "/user/12/records?refresh=1")
	require.Equal(t, http.StatusOK, rr.Code)
	rr = serve(r, "/user/12/charts/score.svg?refresh=1")
	require.Equal(t, http.StatusOK, rr.Code)
	// no refresh, no invalidation
	rr = serve(r, "/user/12/records")
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestHandler_ChartPNG(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := NewMockSource(ctrl)
	expectAll(source)
	r := newTestRouter(source, metrics.NewTestManager())

	rr := serve(r, "/user/12/charts/sessions.png")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	assert.Equal(t, "\x89PNG", rr.Body.String()[:4])
}

func TestHandler_ChartErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := NewMockSource(ctrl)
	source.EXPECT().GetUser(gomock.Any(), 12).Return(testUser(0.12), nil).AnyTimes()
	source.EXPECT().GetActivity(gomock.Any(), 12).Return(&userdata.Activity{UserID: 12}, nil).AnyTimes()
	source.EXPECT().GetPerformance(gomock.Any(), 12).Return(nil, fmt.Errorf("performance: %w", userdata.ErrMalformed)).AnyTimes()
	r := newTestRouter(source, metrics.NewTestManager())

	testCases := []struct {
		name   string
		target string
		status int
	}{
		{name: "unknown kind", target: "/user/12/charts/pie.svg", status: http.StatusNotFound},
		{name: "unknown format", target: "/user/12/charts/score.gif", status: http.StatusNotFound},
		{name: "bad width", target: "/user/12/charts/score.svg?w=abc", status: http.StatusBadRequest},
		{name: "negative height", target: "/user/12/charts/score.svg?h=-1", status: http.StatusBadRequest},
		{name: "nan width", target: "/user/12/charts/score.svg?w=NaN", status: http.StatusBadRequest},
		{name: "nan height", target: "/user/12/charts/score.json?h=nan", status: http.StatusBadRequest},
		{name: "hover on a radial chart", target: "/user/12/charts/score.json?hover=10", status: http.StatusBadRequest},
		{name: "hover on svg", target: "/user/12/charts/sessions.svg?hover=10", status: http.StatusBadRequest},
		{name: "bad hover", target: "/user/12/charts/sessions.json?hover=left", status: http.StatusBadRequest},
		{name: "negative at", target: "/user/12/charts/score.json?at=-5", status: http.StatusBadRequest},
		{name: "zero width", target: "/user/12/charts/score.svg?w=0", status: http.StatusNoContent},
		{name: "empty series", target: "/user/12/charts/activity.svg", status: http.StatusUnprocessableEntity},
		{name: "malformed payload", target: "/user/12/charts/performance.json", status: http.StatusBadGateway},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr := serve(r, tc.target)
			assert.Equal(t, tc.status, rr.Code)
		})
	}
}

func TestHandler_Dashboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := NewMockSource(ctrl)
	source.EXPECT().GetUser(gomock.Any(), 12).Return(testUser(0.12), nil)
	source.EXPECT().GetActivity(gomock.Any(), 12).Return(testActivity(), nil)
	source.EXPECT().GetAverageSessions(gomock.Any(), 12).Return(nil, userdata.ErrUnavailable)
	source.EXPECT().GetPerformance(gomock.Any(), 12).Return(testPerformance(), nil)
	r := newTestRouter(source, metrics.NewTestManager())

	rr := serve(r, "/user/12/dashboard")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))

	body := rr.Body.String()
	assert.Contains(t, body, "Bonjour Karl Dovineau")
	assert.Contains(t, body, "Vous avez pris un excellent départ")
	assert.Contains(t, body, "1930kCal")
	assert.Contains(t, body, "Lipides")
	assert.Contains(t, body, `class="chart chart-activity"`)
	assert.Contains(t, body, `class="chart chart-score"`)
	// the failed sessions fetch is drawn as its error state
	assert.Contains(t, body, "Oups ! Une erreur est survenue")
}

func TestHandler_Dashboard_AllFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := NewMockSource(ctrl)
	source.EXPECT().GetUser(gomock.Any(), 99).Return(nil, userdata.ErrUnavailable)
	source.EXPECT().GetActivity(gomock.Any(), 99).Return(nil, userdata.ErrUnavailable)
	source.EXPECT().GetAverageSessions(gomock.Any(), 99).Return(nil, userdata.ErrUnavailable)
	source.EXPECT().GetPerformance(gomock.Any(), 99).Return(nil, userdata.ErrUnavailable)
	r := newTestRouter(source, metrics.NewTestManager())

	rr := serve(r, "/user/99/dashboard")
	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, rr.Body.String(), ErrorText)
}

func TestHandler_Records(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := NewMockSource(ctrl)
	source.EXPECT().GetUser(gomock.Any(), 12).Return(testUser(0.12), nil)
	source.EXPECT().GetActivity(gomock.Any(), 12).Return(nil, userdata.ErrUnavailable)
	source.EXPECT().GetAverageSessions(gomock.Any(), 12).Return(testAverageSessions(), nil)
	source.EXPECT().GetPerformance(gomock.Any(), 12).Return(testPerformance(), nil)
	r := newTestRouter(source, metrics.NewTestManager())

	rr := serve(r, "/user/12/records")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		User            *userdata.User            `json:"user"`
		Activity        *userdata.Activity        `json:"activity"`
		AverageSessions *userdata.AverageSessions `json:"averageSessions"`
		Errors          map[string]string         `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotNil(t, resp.User)
	assert.Equal(t, "Karl", resp.User.Infos.FirstName)
	assert.Nil(t, resp.Activity)
	require.NotNil(t, resp.AverageSessions)
	assert.Len(t, resp.AverageSessions.Sessions, 7)
	assert.Contains(t, resp.Errors, "activity")
}

func TestHandler_ECharts(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := NewMockSource(ctrl)
	expectAll(source)
	r := newTestRouter(source, metrics.NewTestManager())

	rr := serve(r, "/user/12/echarts")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "chart-performance")
}

// the whole fetch path against the sample backend
func TestHandler_WithSampleBackend(t *testing.T) {
	backendRouter := mux.NewRouter()
	sample := sampleapi.NewHandler()
	sample.SetupRoutes(backendRouter)
	backend := httptest.NewServer(backendRouter)
	defer backend.Close()

	metricsManager := metrics.NewTestManager()
	api := userdata.NewApi(userdata.NewApiParams{
		BaseUrl:        backend.URL,
		HttpClient:     backend.Client(),
		CacheTTL:       time.Minute,
		MetricsManager: metricsManager,
	})
	r := newTestRouter(api, metricsManager)

	rr := serve(r, "/user/18/dashboard")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Bonjour Cecilia Ratorez")
	assert.Contains(t, rr.Body.String(), MessageHalfway)

	rr = serve(r, "/user/18/charts/score.svg")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), ">30%</text>")

	sample.SetFailing(sampleapi.EndpointActivity, true)
	api.Invalidate(t.Context(), 12)
	rr = serve(r, "/user/12/charts/activity.svg")
	assert.Equal(t, http.StatusBadGateway, rr.Code)
}
