package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/2beens/liftstats/internal/analytics"
	"github.com/2beens/liftstats/internal/telemetry/metrics"
	"github.com/2beens/liftstats/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const volumeCacheName = "volume"

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=history_test
type historyRepo interface {
	ListEntries(ctx context.Context, params ListParams) ([]Row, error)
	VolumeView(ctx context.Context, ownerID string) ([]VolumeViewRow, error)
}

type Snapshot struct {
	Entries  []analytics.HistoryEntry
	Trend    []analytics.HistoryTrendPoint
	Range    analytics.Range
	SyncedAt time.Time
}

// VolumeSnapshot is a volume summary together with the time it was computed.
// Cached snapshots keep their original SyncedAt.
type VolumeSnapshot struct {
	Summary  []analytics.VolumeSummary `json:"summary"`
	SyncedAt time.Time                 `json:"syncedAt"`
}

type NewServiceParams struct {
	Repo           historyRepo
	Cache          *freecache.Cache
	CacheTTL       time.Duration
	EntriesLimit   int
	Location       *time.Location
	MetricsManager *metrics.Manager
}

type Service struct {
	repo           historyRepo
	cache          *freecache.Cache
	cacheTTL       time.Duration
	entriesLimit   int
	loc            *time.Location
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewService(params NewServiceParams) *Service {
	loc := params.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo:           params.Repo,
		cache:          params.Cache,
		cacheTTL:       params.CacheTTL,
		entriesLimit:   params.EntriesLimit,
		loc:            loc,
		metricsManager: params.MetricsManager,
		now:            time.Now,
	}
}

// WithClock replaces the service clock, used by tests to pin the reference day.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Snapshot(ctx context.Context, ownerID string, rng analytics.Range) (_ *Snapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.history.snapshot")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("range", string(rng)))

	now := s.now().In(s.loc)
	entries, err := s.listEntries(ctx, ownerID, rng, now)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Entries:  entries,
		Trend:    analytics.BuildHistoryTrend(entries, rng, now),
		Range:    rng,
		SyncedAt: now.UTC(),
	}, nil
}

// VolumeSummary prefers the precomputed volume view and falls back to
// totals computed from the last 30 days of entries when the view fails or is empty.
// A cached snapshot is served until the cache TTL runs out.
func (s *Service) VolumeSummary(ctx context.Context, ownerID string) (_ *VolumeSnapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.history.volume_summary")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	cacheKey := []byte(fmt.Sprintf("volume::%s", ownerID))
	if snapshot, ok := s.cachedSnapshot(cacheKey); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return snapshot, nil
	}

	syncedAt := s.now().UTC()
	summary, err := s.buildVolumeSummary(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	snapshot := &VolumeSnapshot{
		Summary:  summary,
		SyncedAt: syncedAt,
	}
	s.cacheSnapshot(cacheKey, snapshot)
	return snapshot, nil
}

func (s *Service) buildVolumeSummary(ctx context.Context, ownerID string) ([]analytics.VolumeSummary, error) {
	viewRows, err := s.repo.VolumeView(ctx, ownerID)
	if err != nil {
		log.Warnf("volume view unavailable for owner %s, falling back to entries: %s", ownerID, err)
	} else if summary, ok := SummaryFromView(viewRows); ok {
		s.metricsManager.ObserveAnalyticsRows("volume_view", len(viewRows))
		return summary, nil
	}

	now := s.now().In(s.loc)
	entries, err := s.listEntries(ctx, ownerID, analytics.Range30d, now)
	if err != nil {
		return nil, err
	}

	return analytics.BuildVolumeSummary(entries, now), nil
}

func (s *Service) listEntries(ctx context.Context, ownerID string, rng analytics.Range, now time.Time) ([]analytics.HistoryEntry, error) {
	rows, err := s.repo.ListEntries(ctx, ListParams{
		OwnerID: ownerID,
		Since:   analytics.RangeStart(rng, now),
		Limit:   s.entriesLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	s.metricsManager.ObserveAnalyticsRows("history", len(rows))

	return MapRows(rows, now), nil
}

func (s *Service) cachedSnapshot(key []byte) (*VolumeSnapshot, bool) {
	if s.cache == nil {
		return nil, false
	}

	cached, err := s.cache.Get(key)
	if err != nil {
		s.metricsManager.CacheMiss(volumeCacheName)
		return nil, false
	}

	snapshot := &VolumeSnapshot{}
	if err := json.Unmarshal(cached, snapshot); err != nil {
		log.Errorf("unmarshal cached volume summary: %s", err)
		s.metricsManager.CacheMiss(volumeCacheName)
		return nil, false
	}

	s.metricsManager.CacheHit(volumeCacheName)
	return snapshot, true
}

func (s *Service) cacheSnapshot(key []byte, snapshot *VolumeSnapshot) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}

	snapshotBytes, err := json.Marshal(snapshot)
	if err != nil {
		log.Errorf("marshal volume summary: %s", err)
		return
	}
	if err := s.cache.Set(key, snapshotBytes, int(s.cacheTTL.Seconds())); err != nil {
		log.Errorf("cache volume summary: %s", err)
	}
}
