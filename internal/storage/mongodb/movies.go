package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kinobilet/movie-catalog/internal/models"
	"github.com/kinobilet/movie-catalog/internal/storage"
)

// CreateMovie сохраняет новый фильм с пустыми списками оценок и комментариев.
func (s *Storage) CreateMovie(ctx context.Context, movie models.Movie) (*models.Movie, error) {
	const op = "storage.mongodb.CreateMovie"

	movie.ID = primitive.NewObjectID()
	if movie.Ratings == nil {
		movie.Ratings = []models.Rating{}
	}
	if movie.Comments == nil {
		movie.Comments = []models.Comment{}
	}

	if _, err := s.movies.InsertOne(ctx, movie); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &movie, nil
}

// ListMovies возвращает все фильмы в порядке, определяемом хранилищем.
func (s *Storage) ListMovies(ctx context.Context) ([]models.Movie, error) {
	const op = "storage.mongodb.ListMovies"

	cur, err := s.movies.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = cur.Close(ctx)
	}()

	out := []models.Movie{}
	for cur.Next(ctx) {
		var m models.Movie
		if err := cur.Decode(&m); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, m)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// GetMovieByID возвращает фильм по идентификатору.
func (s *Storage) GetMovieByID(ctx context.Context, id primitive.ObjectID) (*models.Movie, error) {
	const op = "storage.mongodb.GetMovieByID"

	var m models.Movie
	err := s.movies.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrMovieNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &m, nil
}

// UpdateMovieByID полностью обновляет поля фильма и возвращает обновленный документ.
// Встроенные списки оценок и комментариев при этом не затрагиваются.
func (s *Storage) UpdateMovieByID(ctx context.Context, id primitive.ObjectID, entry models.DummyMovie) (*models.Movie, error) {
	const op = "storage.mongodb.UpdateMovieByID"

	update := bson.M{"$set": bson.M{
		"name":         entry.Name,
		"description":  entry.Description,
		"release_date": entry.ReleaseDate,
		"ticket_price": entry.TicketPrice,
		"country":      entry.Country,
		"genre":        entry.Genre,
		"photo_uri":    entry.PhotoURI,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var m models.Movie
	err := s.movies.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrMovieNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &m, nil
}

// RemoveMovieByID удаляет фильм и возвращает удаленный документ.
// Оценки и комментарии удаляются вместе с документом.
func (s *Storage) RemoveMovieByID(ctx context.Context, id primitive.ObjectID) (*models.Movie, error) {
	const op = "storage.mongodb.RemoveMovieByID"

	var m models.Movie
	err := s.movies.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrMovieNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &m, nil
}

// AddRating добавляет оценку пользователя к фильму.
//
// Фильтр с $ne делает проверку "пользователь еще не оценивал" и запись
// одной атомарной операцией над документом, закрывая гонку между
// конкурентными оценками одного пользователя.
func (s *Storage) AddRating(ctx context.Context, id primitive.ObjectID, rating models.Rating) (*models.Movie, error) {
	const op = "storage.mongodb.AddRating"

	filter := bson.M{
		"_id":            id,
		"ratings.userId": bson.M{"$ne": rating.UserID},
	}
	update := bson.M{"$push": bson.M{"ratings": rating}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var m models.Movie
	err := s.movies.FindOneAndUpdate(ctx, filter, update, opts).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Документ существует, но не подошел под фильтр: оценка уже есть.
		if _, getErr := s.GetMovieByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, storage.ErrAlreadyRated
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &m, nil
}

// AddComment добавляет комментарий пользователя к фильму. Без дедупликации.
func (s *Storage) AddComment(ctx context.Context, id primitive.ObjectID, comment models.Comment) (*models.Movie, error) {
	const op = "storage.mongodb.AddComment"

	update := bson.M{"$push": bson.M{"comments": comment}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var m models.Movie
	err := s.movies.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrMovieNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &m, nil
}
