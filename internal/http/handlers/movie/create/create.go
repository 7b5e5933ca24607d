// Package create реализует HTTP-обработчик добавления фильма в каталог.
//
// Handler принимает JSON-запрос с данными фильма, валидирует обязательные
// поля name и genre, вызывает бизнес-логику создания и возвращает созданный
// фильм в JSON-формате.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/kinobilet/movie-catalog/internal/http/response"
	"github.com/kinobilet/movie-catalog/internal/lib/sl"
	"github.com/kinobilet/movie-catalog/internal/models"
)

// Handler управляет HTTP-запросами на создание фильмов.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики каталога
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания фильма.
type Service interface {
	Create(ctx context.Context, req models.DummyMovie) (*models.Movie, error)
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
// @Summary Добавить фильм
// @Description Создает новый фильм с пустыми списками оценок и комментариев.
// @Tags Movies
// @Accept  json
// @Produce  json
// @Param request body models.DummyMovie true "Данные нового фильма"
// @Success 200 {object} map[string]any "Созданный фильм"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании фильма"
// @Router /movies [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.movie.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyMovie
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("name", req.Name))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	movie, err := h.service.Create(r.Context(), req)
	if err != nil {
		log.Error("failed to create movie", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create movie"))
		return
	}

	log.Info("movie created", slog.String("movie_id", movie.ID.Hex()))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"movie": movie,
	}))
}
