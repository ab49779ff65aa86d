package test

import (
	"context"
	"fmt"
	"io"
	"net/http"

	pkgtesting "github.com/2beens/fitdash/pkg/testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) get(ctx context.Context, url string) (int, string) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	return resp.StatusCode, string(body)
}

func (s *IntegrationTestSuite) TestDashboardPage() {
	ctx := context.Background()

	status, body := s.get(ctx, serverEndpoint+"/user/12/dashboard")
	require.Equal(s.T(), http.StatusOK, status)
	assert.Contains(s.T(), body, "Bonjour Karl Dovineau")
	assert.Contains(s.T(), body, "1930kCal")
	assert.Contains(s.T(), body, `class="chart chart-performance"`)

	// the raw payloads are shared through redis
	redisCtx, rdb := pkgtesting.GetRedisClientAndCtx(s.T(), s.redisPort)
	for _, key := range []string{
		"user-data::/user/12",
		"user-data::/user/12/activity",
		"user-data::/user/12/average-sessions",
		"user-data::/user/12/performance",
	} {
		exists, err := rdb.Exists(redisCtx, key).Result()
		require.NoError(s.T(), err)
		assert.Equal(s.T(), int64(1), exists, key)
	}
}

func (s *IntegrationTestSuite) TestGeneratedUserCharts() {
	ctx := context.Background()

	for _, kind := range []string{"activity", "sessions", "performance", "score"} {
		status, body := s.get(ctx, fmt.Sprintf("%s/user/42/charts/%s.svg", serverEndpoint, kind))
		require.Equal(s.T(), http.StatusOK, status, kind)
		assert.Contains(s.T(), body, "chart-"+kind)
	}
}

func (s *IntegrationTestSuite) TestBackendDown() {
	ctx := context.Background()
	s.sample.SetFailing("performance", true)
	defer s.sample.SetFailing("performance", false)

	status, _ := s.get(ctx, serverEndpoint+"/user/7/charts/performance.json")
	assert.Equal(s.T(), http.StatusBadGateway, status)

	// the other charts of the user are still served
	status, _ = s.get(ctx, serverEndpoint+"/user/7/charts/sessions.json")
	assert.Equal(s.T(), http.StatusOK, status)
}

func (s *IntegrationTestSuite) TestZzChartsRateLimited() {
	ctx := context.Background()

	limited := false
	for i := 0; i < chartsAllowedPerMin+5; i++ {
		status, _ := s.get(ctx, serverEndpoint+"/user/18/charts/score.json")
		if status == http.StatusTooManyRequests {
			limited = true
			break
		}
		require.Equal(s.T(), http.StatusOK, status)
	}
	assert.True(s.T(), limited)

	// pages are not limited by the charts limiter
	status, _ := s.get(ctx, serverEndpoint+"/user/18/records")
	assert.Equal(s.T(), http.StatusOK, status)

	status, body := s.get(ctx, metricsEndpoint)
	require.Equal(s.T(), http.StatusOK, status)
	assert.Contains(s.T(), body, "fitdash_main_rate_limited_requests")
	assert.Contains(s.T(), body, "fitdash_main_charts_rendered")
}
