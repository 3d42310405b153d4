package middlewarectx_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/profile-platform/internal/http/middlewarectx"
	jwtlib "github.com/magabrotheeeer/profile-platform/internal/lib/jwt"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) ValidateToken(tokenStr string) (*jwtlib.CustomClaims, error) {
	args := m.Called(tokenStr)
	claims, _ := args.Get(0).(*jwtlib.CustomClaims)
	return claims, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestJWTMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		setupMock      func(*AuthServiceMock)
		expectedStatus int
		expectNext     bool
	}{
		{
			name:       "валидный токен",
			authHeader: "Bearer good-token",
			setupMock: func(m *AuthServiceMock) {
				m.On("ValidateToken", "good-token").Return(&jwtlib.CustomClaims{
					Email:   "ana@example.com",
					Role:    "model",
					UserUID: "uid-1",
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:           "нет заголовка",
			authHeader:     "",
			setupMock:      func(m *AuthServiceMock) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "заголовок без Bearer",
			authHeader:     "Token abc",
			setupMock:      func(m *AuthServiceMock) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer bad-token",
			setupMock: func(m *AuthServiceMock) {
				m.On("ValidateToken", "bad-token").Return(nil, errors.New("token is expired"))
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			tt.setupMock(authMock)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				userUID, _ := r.Context().Value(middlewarectx.UserUID).(string)
				assert.Equal(t, "uid-1", userUID)
				role, _ := r.Context().Value(middlewarectx.Role).(string)
				assert.Equal(t, "model", role)
			})

			handler := middlewarectx.JWTMiddleware(authMock, newNoopLogger())(next)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/session", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectNext, nextCalled)
			authMock.AssertExpectations(t)
		})
	}
}
