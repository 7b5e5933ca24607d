// Package search реализует HTTP-обработчик полнотекстового поиска фильмов.
package search

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

// Handler управляет HTTP-запросами на поиск фильмов.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики каталога
}

// Service описывает интерфейс бизнес-логики поиска фильмов.
type Service interface {
	Search(ctx context.Context, query, genre string) ([]models.Movie, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Поиск фильмов
// @Description Ищет фильмы по названию и описанию, фильм с совпадающим жанром получает больший вес.
// @Tags Movies
// @Produce  json
// @Param query query string true "Поисковый запрос"
// @Param genre query string false "Жанр для приоритезации результатов"
// @Success 200 {object} map[string]any "Найденные фильмы"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при поиске"
// @Router /movies/search [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.movie.search"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	query := r.URL.Query().Get("query")
	genre := r.URL.Query().Get("genre")

	movies, err := h.service.Search(r.Context(), query, genre)
	if err != nil {
		log.Error("failed to search movies", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not search movies"))
		return
	}

	log.Info("search completed",
		slog.String("query", query),
		slog.Int("count", len(movies)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"movies": movies,
	}))
}
