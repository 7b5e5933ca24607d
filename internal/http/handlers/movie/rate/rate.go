// Package rate реализует HTTP-обработчик выставления оценки фильму.
//
// Оценка привязывается к пользователю из JWT-токена. Повторная оценка
// одного фильма тем же пользователем отклоняется.
package rate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/kinobilet/movie-catalog/internal/http/middlewarectx"
	"github.com/kinobilet/movie-catalog/internal/http/response"
	"github.com/kinobilet/movie-catalog/internal/lib/sl"
	"github.com/kinobilet/movie-catalog/internal/models"
	"github.com/kinobilet/movie-catalog/internal/storage"
)

// Handler управляет HTTP-запросами на выставление оценок.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики каталога
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики выставления оценки.
type Service interface {
	Rate(ctx context.Context, userID string, req models.DummyRating) (*models.Movie, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Оценить фильм
// @Description Добавляет оценку фильму от имени авторизованного пользователя. Повторная оценка запрещена.
// @Tags Movies
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param request body models.DummyRating true "Идентификатор фильма и оценка"
// @Success 200 {object} map[string]any "Фильм с новой оценкой"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос, фильм не найден или уже оценен"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при сохранении оценки"
// @Router /movies/rate [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.movie.rate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userID == "" {
		log.Error("user id is missing in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	var req models.DummyRating
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("movie_id", req.MovieID))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	movie, err := h.service.Rate(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidMovieID):
			log.Error("invalid movie id", slog.String("movie_id", req.MovieID))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid movie id"))
		case errors.Is(err, storage.ErrMovieNotFound):
			log.Error("movie not found", slog.String("movie_id", req.MovieID))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("movie not found"))
		case errors.Is(err, storage.ErrAlreadyRated):
			log.Error("movie already rated",
				slog.String("movie_id", req.MovieID),
				slog.String("user_id", userID))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("movie already rated"))
		default:
			log.Error("failed to rate movie", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not rate movie"))
		}
		return
	}

	log.Info("movie rated",
		slog.String("movie_id", req.MovieID),
		slog.String("user_id", userID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"movie": movie,
	}))
}
