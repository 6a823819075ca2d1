package onerepmax

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/liftstats/internal/analytics"
	"github.com/2beens/liftstats/internal/telemetry/metrics"
	"github.com/2beens/liftstats/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const cacheName = "one_rep_max"

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=onerepmax_test
type oneRepMaxRepo interface {
	ListSets(ctx context.Context, params Params) ([]analytics.RawOneRepMaxRow, error)
}

// Result is a computed payload and the time it was built.
// Results read back from redis keep their original SyncedAt.
type Result struct {
	Payload  *analytics.OneRepMaxPayload `json:"payload"`
	SyncedAt time.Time                   `json:"syncedAt"`
}

type Service struct {
	repo           oneRepMaxRepo
	redisClient    *redis.Client
	cacheTTL       time.Duration
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewService(
	repo oneRepMaxRepo,
	redisClient *redis.Client,
	cacheTTL time.Duration,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		repo:           repo,
		redisClient:    redisClient,
		cacheTTL:       cacheTTL,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CacheKey identifies a payload by owner and the normalised query.
func CacheKey(ownerID string, query analytics.OneRepMaxQuery) string {
	queryBytes, _ := json.Marshal(struct {
		Method  analytics.Method  `json:"method"`
		Filters analytics.Filters `json:"filters"`
	}{
		Method:  analytics.NormaliseMethod(string(query.Method)),
		Filters: query.Filters(),
	})
	sum := sha1.Sum(queryBytes)
	return fmt.Sprintf("one-rep-max::%s::%s", ownerID, hex.EncodeToString(sum[:]))
}

// Get serves a cached result while its redis key lives, so sets logged in
// the meantime show up only after the cache TTL.
func (s *Service) Get(ctx context.Context, ownerID string, query analytics.OneRepMaxQuery) (_ *Result, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.onerepmax.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	method := analytics.NormaliseMethod(string(query.Method))
	span.SetAttributes(attribute.String("method", string(method)))

	cacheKey := CacheKey(ownerID, query)
	if result, ok := s.cached(ctx, cacheKey); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return result, nil
	}

	syncedAt := s.now().UTC()
	from, to := query.Bounds()
	rows, err := s.repo.ListSets(ctx, Params{
		OwnerID:     ownerID,
		ExerciseIDs: query.ExerciseIDs,
		From:        from,
		To:          to,
		Method:      method,
	})
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	s.metricsManager.ObserveAnalyticsRows("one_rep_max", len(rows))

	payload := analytics.BuildOneRepMaxPayload(rows, method, query.Filters())
	result := &Result{
		Payload:  &payload,
		SyncedAt: syncedAt,
	}
	s.store(ctx, cacheKey, result)

	return result, nil
}

func (s *Service) cached(ctx context.Context, key string) (*Result, bool) {
	if s.redisClient == nil {
		return nil, false
	}

	resultJson, err := s.redisClient.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Errorf("failed to get one rep max payload from redis [%s]: %s", key, err)
		}
		s.metricsManager.CacheMiss(cacheName)
		return nil, false
	}

	result := &Result{}
	if err := json.Unmarshal([]byte(resultJson), result); err != nil || result.Payload == nil {
		log.Errorf("failed to unmarshal cached one rep max payload [%s]: %v", key, err)
		s.metricsManager.CacheMiss(cacheName)
		return nil, false
	}

	s.metricsManager.CacheHit(cacheName)
	return result, true
}

func (s *Service) store(ctx context.Context, key string, result *Result) {
	if s.redisClient == nil || s.cacheTTL <= 0 {
		return
	}

	resultJson, err := json.Marshal(result)
	if err != nil {
		log.Errorf("failed to marshal one rep max payload: %s", err)
		return
	}

	if err := s.redisClient.Set(ctx, key, resultJson, s.cacheTTL).Err(); err != nil {
		log.Errorf("failed to cache one rep max payload in redis [%s]: %s", key, err)
	}
}
