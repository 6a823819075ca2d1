package middleware

import (
	"errors"
	"net/http"

	"github.com/2beens/liftstats/internal/auth"
	"github.com/2beens/liftstats/internal/telemetry/tracing"
	"github.com/2beens/liftstats/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=$GOFILE -destination=owner_scope_mocks_test.go -package=middleware_test
type requestAuthorizer interface {
	Authorize(r *http.Request) (string, error)
}

type OwnerScopeHandler struct {
	authorizer   requestAuthorizer
	allowedPaths map[string]bool
}

func NewOwnerScopeHandler(authorizer requestAuthorizer, allowedPaths ...string) *OwnerScopeHandler {
	allowed := make(map[string]bool, len(allowedPaths))
	for _, path := range allowedPaths {
		allowed[path] = true
	}
	return &OwnerScopeHandler{
		authorizer:   authorizer,
		allowedPaths: allowed,
	}
}

// OwnerScope resolves the owner of every request and stores it in the request
// context; handlers only ever read data of that owner.
func (h *OwnerScopeHandler) OwnerScope() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.owner_scope")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if h.allowedPaths[r.URL.Path] {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			ownerID, err := h.authorizer.Authorize(r)
			if err != nil {
				if errors.Is(err, auth.ErrMissingSecret) {
					log.Tracef("[missing secret] [owner scope] unauthorized => %s", r.URL.Path)
				} else {
					log.Warnf("[owner scope] unauthorized => %s: %s", r.URL.Path, err)
				}
				pkg.WriteJSONError(w, "Unauthorized", http.StatusUnauthorized)
				span.SetStatus(codes.Error, err.Error())
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(auth.ContextWithOwner(ctx, ownerID)))
		})
	}
}
