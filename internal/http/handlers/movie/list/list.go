// Package list реализует HTTP-обработчик получения полного списка фильмов.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/kinobilet/movie-catalog/internal/http/response"
	"github.com/kinobilet/movie-catalog/internal/lib/sl"
	"github.com/kinobilet/movie-catalog/internal/models"
)

// Handler управляет HTTP-запросами на получение списка фильмов.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики каталога
}

// Service описывает интерфейс бизнес-логики получения списка фильмов.
type Service interface {
	List(ctx context.Context) ([]models.Movie, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список фильмов
// @Description Возвращает все фильмы каталога с вложенными оценками и комментариями.
// @Tags Movies
// @Produce  json
// @Success 200 {object} map[string]any "Список фильмов"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при получении списка"
// @Router /movies [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.movie.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	movies, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list movies", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list movies"))
		return
	}

	log.Info("movies listed", slog.Int("count", len(movies)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"movies": movies,
	}))
}
