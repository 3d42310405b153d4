package like

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/profile-platform/internal/http/middlewarectx"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Like(ctx context.Context, likerUID, profileUID string) (bool, error) {
	args := m.Called(ctx, likerUID, profileUID)
	return args.Bool(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newRequest(userUID, profileUID string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/profiles/"+profileUID+"/like", nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("uid", profileUID)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if userUID != "" {
		ctx = context.WithValue(ctx, middlewarectx.UserUID, userUID)
	}
	return req.WithContext(ctx)
}

func TestLikeHandler(t *testing.T) {
	tests := []struct {
		name           string
		userUID        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "первая отметка",
			userUID: "user-1",
			setupMock: func(m *MockService) {
				m.On("Like", mock.Anything, "user-1", "model-1").Return(true, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"added":true`,
		},
		{
			name:    "повторная отметка - no-op",
			userUID: "user-1",
			setupMock: func(m *MockService) {
				m.On("Like", mock.Anything, "user-1", "model-1").Return(false, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"added":false`,
		},
		{
			name:           "без авторизации",
			userUID:        "",
			setupMock:      func(m *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `unauthorized`,
		},
		{
			name:    "ошибка хранилища",
			userUID: "user-1",
			setupMock: func(m *MockService) {
				m.On("Like", mock.Anything, "user-1", "model-1").Return(false, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `could not like profile`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(newNoopLogger(), mockService)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, newRequest(tt.userUID, "model-1"))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
