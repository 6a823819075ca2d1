package onerepmax

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/2beens/liftstats/internal/analytics"
	"github.com/2beens/liftstats/internal/auth"
	"github.com/2beens/liftstats/internal/telemetry/metrics"
	"github.com/2beens/liftstats/internal/telemetry/tracing"
	"github.com/2beens/liftstats/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=onerepmax_test
type oneRepMaxService interface {
	Get(ctx context.Context, ownerID string, query analytics.OneRepMaxQuery) (*Result, error)
}

type Response struct {
	Data         *analytics.OneRepMaxPayload `json:"data"`
	LastSyncedAt time.Time                   `json:"lastSyncedAt"`
}

type Handler struct {
	service        oneRepMaxService
	metricsManager *metrics.Manager
}

func NewHandler(service oneRepMaxService, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service:        service,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) HandleOneRepMax(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.one_rep_max")
	defer span.End()

	ownerID, ok := auth.OwnerFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	query, err := analytics.ParseOneRepMaxQuery(r.URL.Query())
	if err != nil {
		pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := handler.service.Get(ctx, ownerID, query)
	if err != nil {
		switch {
		case errors.Is(err, ErrForbidden):
			pkg.WriteJSONError(w, "Forbidden", http.StatusForbidden)
		case errors.Is(err, ErrInvalidParams):
			pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		default:
			log.Errorf("failed to load one rep max analytics for owner %s: %s", ownerID, err)
			pkg.WriteJSONError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	payload := result.Payload
	fingerprint, err := Fingerprint(payload)
	if err != nil {
		log.Errorf("one rep max fingerprint: %s", err)
		pkg.WriteJSONError(w, "failed to marshal response", http.StatusInternalServerError)
		return
	}

	etag := pkg.StrongETag(fingerprint)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	span.SetAttributes(attribute.Int("series.count", len(payload.Series)))

	if pkg.ETagMatches(r.Header.Get("If-None-Match"), etag) {
		if handler.metricsManager != nil {
			handler.metricsManager.CounterNotModified.Inc()
		}
		w.WriteHeader(http.StatusNotModified)
		return
	}

	pkg.WriteJSON(w, Response{
		Data:         payload,
		LastSyncedAt: result.SyncedAt,
	}, http.StatusOK)
}

// Fingerprint is the content identity of a payload, stable for identical results.
func Fingerprint(payload *analytics.OneRepMaxPayload) ([]byte, error) {
	return json.Marshal(struct {
		Method  analytics.Method           `json:"method"`
		Filters analytics.Filters          `json:"filters"`
		Series  []analytics.OneRepMaxPoint `json:"series"`
		Max     *analytics.OneRepMaxPoint  `json:"max"`
	}{
		Method:  payload.Method,
		Filters: payload.Filters,
		Series:  payload.Series,
		Max:     payload.Max,
	})
}
