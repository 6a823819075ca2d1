package history

import (
	"context"
	"net/http"
	"time"

	"github.com/2beens/liftstats/internal/analytics"
	"github.com/2beens/liftstats/internal/auth"
	"github.com/2beens/liftstats/internal/telemetry/tracing"
	"github.com/2beens/liftstats/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=history_test
type historyService interface {
	Snapshot(ctx context.Context, ownerID string, rng analytics.Range) (*Snapshot, error)
	VolumeSummary(ctx context.Context, ownerID string) (*VolumeSnapshot, error)
}

type HistoryResponse struct {
	Data         []analytics.HistoryEntry      `json:"data"`
	Trend        []analytics.HistoryTrendPoint `json:"trend"`
	Range        analytics.Range               `json:"range"`
	LastSyncedAt time.Time                     `json:"lastSyncedAt"`
}

type VolumeResponse struct {
	Data         []analytics.VolumeSummary `json:"data"`
	LastSyncedAt time.Time                 `json:"lastSyncedAt"`
}

type Handler struct {
	service historyService
}

func NewHandler(service historyService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.history")
	defer span.End()

	ownerID, ok := auth.OwnerFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	rng := analytics.ParseRange(r.URL.Query().Get("range"))
	span.SetAttributes(attribute.String("range", string(rng)))

	snapshot, err := handler.service.Snapshot(ctx, ownerID, rng)
	if err != nil {
		log.Errorf("history snapshot for owner %s: %s", ownerID, err)
		pkg.WriteJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	entries := snapshot.Entries
	if entries == nil {
		entries = []analytics.HistoryEntry{}
	}

	pkg.WriteJSON(w, HistoryResponse{
		Data:         entries,
		Trend:        snapshot.Trend,
		Range:        snapshot.Range,
		LastSyncedAt: snapshot.SyncedAt,
	}, http.StatusOK)
}

func (handler *Handler) HandleVolume(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.volume")
	defer span.End()

	ownerID, ok := auth.OwnerFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	snapshot, err := handler.service.VolumeSummary(ctx, ownerID)
	if err != nil {
		log.Errorf("volume summary for owner %s: %s", ownerID, err)
		pkg.WriteJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, VolumeResponse{
		Data:         snapshot.Summary,
		LastSyncedAt: snapshot.SyncedAt,
	}, http.StatusOK)
}
