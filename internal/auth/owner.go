package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const OwnerHeader = "X-Owner-ID"

var (
	ErrMissingSecret = errors.New("missing api secret")
	ErrInvalidSecret = errors.New("invalid api secret")
	ErrInvalidOwner  = errors.New("missing or invalid owner id")
)

type ownerCtxKey struct{}

func ContextWithOwner(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ownerCtxKey{}, ownerID)
}

func OwnerFromContext(ctx context.Context) (string, bool) {
	ownerID, ok := ctx.Value(ownerCtxKey{}).(string)
	return ownerID, ok && ownerID != ""
}

// SecretChecker trusts requests coming through the gateway: the gateway
// authenticates the user and forwards the shared api secret together with the
// user id in the X-Owner-ID header.
type SecretChecker struct {
	apiSecret []byte
}

func NewSecretChecker(apiSecret string) *SecretChecker {
	return &SecretChecker{
		apiSecret: []byte(apiSecret),
	}
}

// Authorize returns the canonical (lower case) owner id of an authorized request.
func (c *SecretChecker) Authorize(r *http.Request) (string, error) {
	token := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
	if token == "" {
		return "", ErrMissingSecret
	}
	if len(c.apiSecret) == 0 || subtle.ConstantTimeCompare([]byte(token), c.apiSecret) != 1 {
		return "", ErrInvalidSecret
	}

	ownerID, err := uuid.Parse(strings.TrimSpace(r.Header.Get(OwnerHeader)))
	if err != nil || ownerID == uuid.Nil {
		return "", ErrInvalidOwner
	}

	return ownerID.String(), nil
}
