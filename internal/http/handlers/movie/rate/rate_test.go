package rate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kinobilet/movie-catalog/internal/http/middlewarectx"
	"github.com/kinobilet/movie-catalog/internal/models"
	"github.com/kinobilet/movie-catalog/internal/storage"
)

// MockService реализует интерфейс rate.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Rate(ctx context.Context, userID string, req models.DummyRating) (*models.Movie, error) {
	args := m.Called(ctx, userID, req)
	if movie, ok := args.Get(0).(*models.Movie); ok {
		return movie, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestRateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	movieID := primitive.NewObjectID()

	tests := []struct {
		name           string
		requestBody    interface{}
		userID         string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная оценка фильма",
			requestBody: models.DummyRating{
				MovieID: movieID.Hex(),
				Rating:  5,
			},
			userID: "user-1",
			setupMock: func(m *MockService) {
				m.On("Rate", mock.Anything, "user-1", mock.AnythingOfType("models.DummyRating")).
					Return(&models.Movie{
						ID:       movieID,
						Name:     "Alien",
						Genre:    "horror",
						Ratings:  []models.Rating{{UserID: "user-1", Rating: 5}},
						Comments: []models.Comment{},
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"ratings":[{"userId":"user-1","rating":5}]`,
		},
		{
			name: "отсутствует авторизация",
			requestBody: models.DummyRating{
				MovieID: movieID.Hex(),
				Rating:  5,
			},
			userID:         "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			userID:         "user-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:           "ошибка валидации",
			requestBody:    models.DummyRating{},
			userID:         "user-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"status":"Error","error":"field MovieID is a required field, field Rating is a required field"}`,
		},
		{
			name: "некорректный идентификатор фильма",
			requestBody: models.DummyRating{
				MovieID: "abc",
				Rating:  5,
			},
			userID: "user-1",
			setupMock: func(m *MockService) {
				m.On("Rate", mock.Anything, "user-1", mock.AnythingOfType("models.DummyRating")).
					Return(nil, storage.ErrInvalidMovieID)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid movie id"}`,
		},
		{
			name: "фильм не найден",
			requestBody: models.DummyRating{
				MovieID: movieID.Hex(),
				Rating:  5,
			},
			userID: "user-1",
			setupMock: func(m *MockService) {
				m.On("Rate", mock.Anything, "user-1", mock.AnythingOfType("models.DummyRating")).
					Return(nil, storage.ErrMovieNotFound)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"movie not found"}`,
		},
		{
			name: "повторная оценка",
			requestBody: models.DummyRating{
				MovieID: movieID.Hex(),
				Rating:  3,
			},
			userID: "user-1",
			setupMock: func(m *MockService) {
				m.On("Rate", mock.Anything, "user-1", mock.AnythingOfType("models.DummyRating")).
					Return(nil, storage.ErrAlreadyRated)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"movie already rated"}`,
		},
		{
			name: "ошибка сервиса",
			requestBody: models.DummyRating{
				MovieID: movieID.Hex(),
				Rating:  5,
			},
			userID: "user-1",
			setupMock: func(m *MockService) {
				m.On("Rate", mock.Anything, "user-1", mock.AnythingOfType("models.DummyRating")).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not rate movie"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/movies/rate", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			ctx := context.WithValue(req.Context(), middlewarectx.UserUID, tt.userID)
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-id")
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
