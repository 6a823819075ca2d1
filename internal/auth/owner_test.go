package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOwner = "7c9e6679-7425-40de-944b-e07fc1f90ae7"

func TestOwnerContext(t *testing.T) {
	_, ok := OwnerFromContext(context.Background())
	assert.False(t, ok)

	_, ok = OwnerFromContext(ContextWithOwner(context.Background(), ""))
	assert.False(t, ok)

	ownerID, ok := OwnerFromContext(ContextWithOwner(context.Background(), testOwner))
	require.True(t, ok)
	assert.Equal(t, testOwner, ownerID)
}

func TestSecretChecker_Authorize(t *testing.T) {
	checker := NewSecretChecker("gateway-secret")

	testCases := []struct {
		name          string
		authorization string
		owner         string
		expectedOwner string
		expectedErr   error
	}{
		{
			name:          "valid",
			authorization: "gateway-secret",
			owner:         testOwner,
			expectedOwner: testOwner,
		},
		{
			name:          "valid bearer and upper case owner",
			authorization: "Bearer gateway-secret",
			owner:         "7C9E6679-7425-40DE-944B-E07FC1F90AE7",
			expectedOwner: testOwner,
		},
		{
			name:        "missing secret",
			owner:       testOwner,
			expectedErr: ErrMissingSecret,
		},
		{
			name:          "wrong secret",
			authorization: "guess",
			owner:         testOwner,
			expectedErr:   ErrInvalidSecret,
		},
		{
			name:          "missing owner",
			authorization: "gateway-secret",
			expectedErr:   ErrInvalidOwner,
		},
		{
			name:          "malformed owner",
			authorization: "gateway-secret",
			owner:         "user-42",
			expectedErr:   ErrInvalidOwner,
		},
		{
			name:          "nil owner",
			authorization: "gateway-secret",
			owner:         "00000000-0000-0000-0000-000000000000",
			expectedErr:   ErrInvalidOwner,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/history", nil)
			if tc.authorization != "" {
				req.Header.Set("Authorization", tc.authorization)
			}
			if tc.owner != "" {
				req.Header.Set(OwnerHeader, tc.owner)
			}

			ownerID, err := checker.Authorize(req)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Empty(t, ownerID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedOwner, ownerID)
		})
	}
}

func TestSecretChecker_EmptySecretRejectsAll(t *testing.T) {
	checker := NewSecretChecker("")
	req := httptest.NewRequest(http.MethodGet, "/history", nil)
	req.Header.Set("Authorization", "anything")
	req.Header.Set(OwnerHeader, testOwner)

	_, err := checker.Authorize(req)
	assert.ErrorIs(t, err, ErrInvalidSecret)
}
