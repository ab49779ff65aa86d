package userdata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/2beens/fitdash/internal/telemetry/metrics"
	"github.com/2beens/fitdash/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"
)

const (
	EndpointUser            = "user"
	EndpointActivity        = "activity"
	EndpointAverageSessions = "average-sessions"
	EndpointPerformance     = "performance"
)

const (
	maxPayloadBytes = 1 << 20
	cacheKeyPrefix  = "user-data::"
)

// Api fetches raw user payloads from the backend API. Payloads are cached
// locally (freecache) and, when a redis client is given, shared between
// instances; concurrent identical fetches are collapsed into one call.
type Api struct {
	baseUrl        string
	httpClient     *http.Client
	cache          *freecache.Cache
	cacheTTL       time.Duration
	fetchTimeout   time.Duration
	redisClient    *redis.Client
	group          singleflight.Group
	metricsManager *metrics.Manager
}

type NewApiParams struct {
	BaseUrl        string
	HttpClient     *http.Client
	CacheSizeMB    int
	CacheTTL       time.Duration
	FetchTimeout   time.Duration // bounds a shared backend fetch
	RedisClient    *redis.Client // optional
	MetricsManager *metrics.Manager
}

func NewApi(params NewApiParams) *Api {
	megabyte := 1024 * 1024
	cacheSize := params.CacheSizeMB * megabyte
	if cacheSize <= 0 {
		cacheSize = 10 * megabyte
	}

	httpClient := params.HttpClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Api{
		baseUrl:        strings.TrimSuffix(params.BaseUrl, "/"),
		httpClient:     httpClient,
		cache:          freecache.NewCache(cacheSize),
		cacheTTL:       params.CacheTTL,
		fetchTimeout:   params.FetchTimeout,
		redisClient:    params.RedisClient,
		metricsManager: params.MetricsManager,
	}
}

func (api *Api) GetUser(ctx context.Context, userID int) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "userdataApi.getUser")
	defer tracing.EndSpanWithErrCheck(span, &err)

	return fetch(ctx, api, EndpointUser, userID, NormalizeUser)
}

func (api *Api) GetActivity(ctx context.Context, userID int) (_ *Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "userdataApi.getActivity")
	defer tracing.EndSpanWithErrCheck(span, &err)

	return fetch(ctx, api, EndpointActivity, userID, NormalizeActivity)
}

func (api *Api) GetAverageSessions(ctx context.Context, userID int) (_ *AverageSessions, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "userdataApi.getAverageSessions")
	defer tracing.EndSpanWithErrCheck(span, &err)

	return fetch(ctx, api, EndpointAverageSessions, userID, NormalizeAverageSessions)
}

func (api *Api) GetPerformance(ctx context.Context, userID int) (_ *Performance, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "userdataApi.getPerformance")
	defer tracing.EndSpanWithErrCheck(span, &err)

	return fetch(ctx, api, EndpointPerformance, userID, NormalizePerformance)
}

func endpointPath(endpoint string, userID int) string {
	if endpoint == EndpointUser {
		return fmt.Sprintf("/user/%d", userID)
	}
	return fmt.Sprintf("/user/%d/%s", userID, endpoint)
}

// fetch returns the normalized payload of an endpoint. Only payloads that
// normalize are cached; a cached one that no longer does is dropped and
// fetched again.
func fetch[T any](ctx context.Context, api *Api, endpoint string, userID int, normalize func([]byte) (T, error)) (T, error) {
	var zero T
	path := endpointPath(endpoint, userID)
	cacheKey := cacheKeyPrefix + path

	if raw, err := api.cache.Get([]byte(cacheKey)); err == nil {
		if v, err := normalize(raw); err == nil {
			log.Tracef("found %s in local cache", path)
			api.cacheHit(endpoint, "local")
			return v, nil
		}
		log.Warnf("dropping unreadable %s from local cache", path)
		api.cache.Del([]byte(cacheKey))
	}

	// concurrent dashboards for the same user share one backend call; it
	// outlives any single caller, so it runs detached from their cancellation
	ch := api.group.DoChan(cacheKey, func() (any, error) {
		fetchCtx := context.WithoutCancel(ctx)
		if api.fetchTimeout > 0 {
			var cancel context.CancelFunc
			fetchCtx, cancel = context.WithTimeout(fetchCtx, api.fetchTimeout)
			defer cancel()
		}

		if raw := api.redisGet(fetchCtx, cacheKey); raw != nil {
			if v, err := normalize(raw); err == nil {
				api.cacheHit(endpoint, "redis")
				api.cacheSet(cacheKey, raw)
				return v, nil
			}
			log.Warnf("ignoring unreadable %s from redis", path)
		}

		raw, err := api.call(fetchCtx, endpoint, path)
		if err != nil {
			return nil, err
		}
		v, err := normalize(raw)
		if err != nil {
			return nil, err
		}
		api.cacheSet(cacheKey, raw)
		api.redisSet(fetchCtx, cacheKey, raw)
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, fmt.Errorf("%w: %w", ErrUnavailable, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		if res.Shared {
			log.Tracef("backend fetch for %s shared", path)
		}
		return res.Val.(T), nil
	}
}

func (api *Api) call(ctx context.Context, endpoint, path string) (raw []byte, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "userdataApi.call")
	defer tracing.EndSpanWithErrCheck(span, &err)
	span.SetAttributes(attribute.String("backend.path", path))

	start := time.Now()
	defer func() {
		result := "ok"
		if err != nil {
			result = "error"
		}
		if api.metricsManager != nil {
			api.metricsManager.CounterBackendFetches.WithLabelValues(endpoint, result).Inc()
			api.metricsManager.HistBackendFetchDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
		}
	}()

	url := api.baseUrl + path
	log.Debugf("calling backend api: %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: new request: %w", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := api.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: http client do: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxPayloadBytes))
		return nil, fmt.Errorf("%w: %s returned status %d", ErrUnavailable, path, resp.StatusCode)
	}

	raw, err = io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", ErrUnavailable, err)
	}

	return raw, nil
}

func (api *Api) cacheHit(endpoint, layer string) {
	if api.metricsManager != nil {
		api.metricsManager.CounterCacheHits.WithLabelValues(endpoint, layer).Inc()
	}
}

func (api *Api) cacheSet(key string, raw []byte) {
	if api.cacheTTL <= 0 {
		return
	}
	if err := api.cache.Set([]byte(key), raw, int(api.cacheTTL.Seconds())); err != nil {
		log.Errorf("failed to cache %s: %s", key, err)
	}
}

func (api *Api) redisGet(ctx context.Context, key string) []byte {
	if api.redisClient == nil {
		return nil
	}

	raw, err := api.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Errorf("failed to get %s from redis: %s", key, err)
		}
		return nil
	}
	log.Tracef("found %s in redis cache", key)
	return raw
}

func (api *Api) redisSet(ctx context.Context, key string, raw []byte) {
	if api.redisClient == nil || api.cacheTTL <= 0 {
		return
	}
	if err := api.redisClient.Set(ctx, key, raw, api.cacheTTL).Err(); err != nil {
		log.Errorf("failed to set %s in redis: %s", key, err)
	}
}

// Invalidate drops the cached payloads of a user, locally and in redis.
func (api *Api) Invalidate(ctx context.Context, userID int) {
	for _, endpoint := range []string{EndpointUser, EndpointActivity, EndpointAverageSessions, EndpointPerformance} {
		key := cacheKeyPrefix + endpointPath(endpoint, userID)
		api.cache.Del([]byte(key))
		if api.redisClient != nil {
			if err := api.redisClient.Del(ctx, key).Err(); err != nil {
				log.Errorf("failed to delete %s from redis: %s", key, err)
			}
		}
	}
}
