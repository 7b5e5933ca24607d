// Package remove реализует HTTP-обработчик удаления фильма из каталога.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/kinobilet/movie-catalog/internal/http/response"
	"github.com/kinobilet/movie-catalog/internal/lib/sl"
	"github.com/kinobilet/movie-catalog/internal/models"
	"github.com/kinobilet/movie-catalog/internal/storage"
)

// Handler управляет HTTP-запросами на удаление фильмов.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики каталога
}

// Service описывает интерфейс бизнес-логики удаления фильма.
type Service interface {
	Remove(ctx context.Context, id string) (*models.Movie, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить фильм
// @Description Удаляет фильм по идентификатору и возвращает его последнее состояние.
// @Tags Movies
// @Produce  json
// @Param id path string true "Идентификатор фильма"
// @Success 200 {object} map[string]any "Удаленный фильм"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 404 {object} response.ErrorResponse "Фильм не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при удалении фильма"
// @Router /movies/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.movie.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	movie, err := h.service.Remove(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidMovieID):
			log.Error("invalid movie id", slog.String("movie_id", id))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid movie id"))
		case errors.Is(err, storage.ErrMovieNotFound):
			log.Error("movie not found", slog.String("movie_id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("movie not found"))
		default:
			log.Error("failed to remove movie", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not remove movie"))
		}
		return
	}

	log.Info("movie removed", slog.String("movie_id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"movie": movie,
	}))
}
