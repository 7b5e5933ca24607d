// Package services содержит бизнес-логику каталога фильмов: жизненный цикл
// фильма, оценки и комментарии, а также best-effort зеркалирование записей
// в поисковый индекс.
package services

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kinobilet/movie-catalog/internal/lib/sl"
	"github.com/kinobilet/movie-catalog/internal/metrics"
	"github.com/kinobilet/movie-catalog/internal/models"
	"github.com/kinobilet/movie-catalog/internal/storage"
)

// MovieRepository определяет методы для работы с фильмами в хранилище.
type MovieRepository interface {
	// CreateMovie сохраняет новый фильм и возвращает его.
	CreateMovie(ctx context.Context, movie models.Movie) (*models.Movie, error)
	// ListMovies возвращает все фильмы.
	ListMovies(ctx context.Context) ([]models.Movie, error)
	// GetMovieByID возвращает фильм по ID или storage.ErrMovieNotFound.
	GetMovieByID(ctx context.Context, id primitive.ObjectID) (*models.Movie, error)
	// UpdateMovieByID полностью обновляет поля фильма.
	UpdateMovieByID(ctx context.Context, id primitive.ObjectID, entry models.DummyMovie) (*models.Movie, error)
	// RemoveMovieByID удаляет фильм и возвращает удаленный документ.
	RemoveMovieByID(ctx context.Context, id primitive.ObjectID) (*models.Movie, error)
	// AddRating атомарно добавляет оценку; storage.ErrAlreadyRated при повторе.
	AddRating(ctx context.Context, id primitive.ObjectID, rating models.Rating) (*models.Movie, error)
	// AddComment добавляет комментарий без ограничений уникальности.
	AddComment(ctx context.Context, id primitive.ObjectID, comment models.Comment) (*models.Movie, error)
}

// SearchIndex описывает границу с поисковым коллаборатором. Любой движок
// с этими четырьмя операциями взаимозаменяем.
type SearchIndex interface {
	IndexMovie(ctx context.Context, movie *models.Movie) error
	UpdateMovie(ctx context.Context, movie *models.Movie) error
	DeleteMovie(ctx context.Context, movieID string) error
	SearchMovies(ctx context.Context, query, genre string) ([]models.Movie, error)
}

// MovieService реализует бизнес-логику каталога фильмов.
type MovieService struct {
	repo   MovieRepository
	search SearchIndex // nil, если поисковый индекс выключен
	log    *slog.Logger
}

// NewMovieService создает новый экземпляр MovieService.
// search может быть nil — тогда каталог работает без поискового индекса.
func NewMovieService(repo MovieRepository, search SearchIndex, log *slog.Logger) *MovieService {
	return &MovieService{
		repo:   repo,
		search: search,
		log:    log,
	}
}

// ParseMovieID проверяет синтаксис идентификатора фильма до обращения
// к хранилищу.
func ParseMovieID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, storage.ErrInvalidMovieID
	}
	return oid, nil
}

// Create сохраняет новый фильм с пустыми списками оценок и комментариев
// и зеркалирует его в поисковый индекс. Ошибка индексации не отменяет
// уже зафиксированную запись.
func (s *MovieService) Create(ctx context.Context, req models.DummyMovie) (*models.Movie, error) {
	movie := models.Movie{
		Name:        req.Name,
		Description: req.Description,
		ReleaseDate: req.ReleaseDate,
		TicketPrice: req.TicketPrice,
		Country:     req.Country,
		Genre:       req.Genre,
		PhotoURI:    req.PhotoURI,
		Ratings:     []models.Rating{},
		Comments:    []models.Comment{},
	}

	created, err := s.repo.CreateMovie(ctx, movie)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new movie", slog.String("movie_id", created.ID.Hex()))

	if s.search != nil {
		if err := s.search.IndexMovie(ctx, created); err != nil {
			s.log.Warn("failed to index movie", slog.String("movie_id", created.ID.Hex()), sl.Err(err))
			metrics.SearchIndexErrors.WithLabelValues("index").Inc()
		}
	}
	return created, nil
}

// List возвращает все фильмы, порядок определяется хранилищем.
func (s *MovieService) List(ctx context.Context) ([]models.Movie, error) {
	return s.repo.ListMovies(ctx)
}

// GetByID возвращает фильм по идентификатору.
// Некорректный идентификатор отвергается до обращения к хранилищу.
func (s *MovieService) GetByID(ctx context.Context, movieID string) (*models.Movie, error) {
	oid, err := ParseMovieID(movieID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetMovieByID(ctx, oid)
}

// Update полностью обновляет поля фильма и зеркалирует изменение в индекс.
func (s *MovieService) Update(ctx context.Context, movieID string, req models.DummyMovie) (*models.Movie, error) {
	oid, err := ParseMovieID(movieID)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateMovieByID(ctx, oid, req)
	if err != nil {
		return nil, err
	}

	if s.search != nil {
		if err := s.search.UpdateMovie(ctx, updated); err != nil {
			s.log.Warn("failed to update movie in search index", slog.String("movie_id", updated.ID.Hex()), sl.Err(err))
			metrics.SearchIndexErrors.WithLabelValues("update").Inc()
		}
	}
	return updated, nil
}

// Remove удаляет фильм вместе со встроенными оценками и комментариями
// и убирает его из поискового индекса.
func (s *MovieService) Remove(ctx context.Context, movieID string) (*models.Movie, error) {
	oid, err := ParseMovieID(movieID)
	if err != nil {
		return nil, err
	}

	removed, err := s.repo.RemoveMovieByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	if s.search != nil {
		if err := s.search.DeleteMovie(ctx, removed.ID.Hex()); err != nil {
			s.log.Warn("failed to delete movie from search index", slog.String("movie_id", removed.ID.Hex()), sl.Err(err))
			metrics.SearchIndexErrors.WithLabelValues("delete").Inc()
		}
	}
	return removed, nil
}

// Rate добавляет оценку пользователя к фильму.
//
// Инвариант: не более одной оценки на пару (фильм, пользователь). Проверка
// по встроенному списку отвечает за понятную ошибку, а фильтр в AddRating
// закрывает гонку между конкурентными запросами.
func (s *MovieService) Rate(ctx context.Context, userID string, req models.DummyRating) (*models.Movie, error) {
	oid, err := ParseMovieID(req.MovieID)
	if err != nil {
		return nil, err
	}

	movie, err := s.repo.GetMovieByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	for _, r := range movie.Ratings {
		if r.UserID == userID {
			return nil, storage.ErrAlreadyRated
		}
	}

	updated, err := s.repo.AddRating(ctx, oid, models.Rating{UserID: userID, Rating: req.Rating})
	if err != nil {
		return nil, err
	}
	s.log.Info("movie rated", slog.String("movie_id", req.MovieID), slog.String("user_id", userID))
	return updated, nil
}

// Comment добавляет комментарий пользователя к фильму. Пользователь может
// комментировать один фильм сколько угодно раз.
func (s *MovieService) Comment(ctx context.Context, userID string, req models.DummyComment) (*models.Movie, error) {
	oid, err := ParseMovieID(req.MovieID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetMovieByID(ctx, oid); err != nil {
		return nil, err
	}

	updated, err := s.repo.AddComment(ctx, oid, models.Comment{UserID: userID, Text: req.Text})
	if err != nil {
		return nil, err
	}
	s.log.Info("movie commented", slog.String("movie_id", req.MovieID), slog.String("user_id", userID))
	return updated, nil
}

// Search выполняет полнотекстовый поиск по каталогу.
//
// Пустой запрос возвращает пустой результат без обращения к коллаборатору.
// При выключенном индексе поиск также возвращает пустой результат.
func (s *MovieService) Search(ctx context.Context, query, genre string) ([]models.Movie, error) {
	if query == "" {
		return []models.Movie{}, nil
	}
	if s.search == nil {
		s.log.Warn("search requested but search index is disabled")
		return []models.Movie{}, nil
	}
	return s.search.SearchMovies(ctx, query, genre)
}
