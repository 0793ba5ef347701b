package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tasker-api/internal/api/shared"
	"github.com/phrazzld/tasker-api/internal/mocks"
	"github.com/phrazzld/tasker-api/internal/service/auth"
)

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name        string
		authHeader  string
		validateErr error
		wantStatus  int
		wantError   string
	}{
		{
			name:       "valid token",
			authHeader: "Bearer valid-token",
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
			wantError:  "Authorization header required",
		},
		{
			name:       "malformed header",
			authHeader: "NotBearer token",
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid authorization format",
		},
		{
			name:        "expired token",
			authHeader:  "Bearer expired-token",
			validateErr: auth.ErrExpiredToken,
			wantStatus:  http.StatusUnauthorized,
			wantError:   "Token expired",
		},
		{
			name:        "invalid token",
			authHeader:  "Bearer garbage",
			validateErr: auth.ErrInvalidToken,
			wantStatus:  http.StatusUnauthorized,
			wantError:   "Invalid token",
		},
		{
			name:        "refresh token used as access token",
			authHeader:  "Bearer refresh-token",
			validateErr: auth.ErrWrongTokenType,
			wantStatus:  http.StatusUnauthorized,
			wantError:   "Invalid token",
		},
		{
			name:        "unexpected validation failure",
			authHeader:  "Bearer token",
			validateErr: errors.New("key store unreachable"),
			wantStatus:  http.StatusInternalServerError,
			wantError:   "Authentication error",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			jwtService := &mocks.MockJWTService{
				Claims:      &auth.Claims{UserID: userID, TokenType: "access"},
				ValidateErr: tt.validateErr,
			}
			middleware := NewAuthMiddleware(jwtService)

			var gotUserID uuid.UUID
			var nextCalled bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				gotUserID, _ = GetUserID(r)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			recorder := httptest.NewRecorder()
			middleware.Authenticate(next).ServeHTTP(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusOK {
				assert.True(t, nextCalled)
				assert.Equal(t, userID, gotUserID)
			} else {
				assert.False(t, nextCalled, "next handler must not run on auth failure")

				var resp struct {
					Error string `json:"error"`
				}
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
				assert.Equal(t, tt.wantError, resp.Error)
			}
		})
	}
}

func TestGetUserID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := GetUserID(req)
	assert.False(t, ok)

	userID := uuid.New()
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
	req = req.WithContext(ctx)

	got, ok := GetUserID(req)
	assert.True(t, ok)
	assert.Equal(t, userID, got)
}
