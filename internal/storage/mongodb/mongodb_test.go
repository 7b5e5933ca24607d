package mongodb

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/kinobilet/movie-catalog/internal/models"
	"github.com/kinobilet/movie-catalog/internal/storage"
)

func setupTestDb(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort(nat.Port("27017/tcp")),
			wait.ForLog("Waiting for connections"),
		).WithDeadline(3 * time.Minute),
	}

	mongoContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start container")

	port, err := mongoContainer.MappedPort(ctx, nat.Port("27017/tcp"))
	require.NoError(t, err, "Failed to get port")

	connStr := fmt.Sprintf("mongodb://localhost:%s", port.Port())

	// Пробуем подключиться несколько раз с ретраями
	var db *Storage
	for range 10 {
		connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		db, err = New(connectCtx, connStr, "testdb")
		cancel()
		if err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "Failed to create storage after retries")

	cleanup := func() {
		if db != nil {
			_ = db.Close(ctx)
		}
		_ = mongoContainer.Terminate(ctx)
	}

	return db, cleanup
}

func newTestUser() models.User {
	uid := uuid.New().String()
	return models.User{
		Username:     "user-" + uid,
		Email:        uid + "@example.com",
		FirstName:    "Ivan",
		LastName:     "Petrov",
		PasswordHash: "hashedpassword",
	}
}

func newTestMovie(name string) models.Movie {
	return models.Movie{
		Name:        name,
		Description: "test description",
		ReleaseDate: "2024-01-01",
		TicketPrice: 10.5,
		Country:     "USA",
		Genre:       "sci-fi",
		PhotoURI:    "http://example.com/poster.jpg",
	}
}

func TestRegisterUser(t *testing.T) {
	db, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()

	user := newTestUser()

	id, err := db.RegisterUser(ctx, user)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	got, err := db.GetUserByUsername(ctx, user.Username)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
	assert.Equal(t, user.PasswordHash, got.PasswordHash)
	assert.Equal(t, id, got.ID.Hex())
}

func TestRegisterUser_DuplicateUsername(t *testing.T) {
	db, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()

	user := newTestUser()

	_, err := db.RegisterUser(ctx, user)
	require.NoError(t, err)

	duplicate := newTestUser()
	duplicate.Username = user.Username

	_, err = db.RegisterUser(ctx, duplicate)
	assert.True(t, errors.Is(err, storage.ErrUserExists))
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	db, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()

	user := newTestUser()

	_, err := db.RegisterUser(ctx, user)
	require.NoError(t, err)

	duplicate := newTestUser()
	duplicate.Email = user.Email

	_, err = db.RegisterUser(ctx, duplicate)
	assert.True(t, errors.Is(err, storage.ErrUserExists))
}

func TestGetUserByUsername_NotFound(t *testing.T) {
	db, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()

	_, err := db.GetUserByUsername(ctx, "no-such-user")
	assert.True(t, errors.Is(err, storage.ErrUserNotFound))
}

func TestMovieLifecycle(t *testing.T) {
	db, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()

	created, err := db.CreateMovie(ctx, newTestMovie("Inception"))
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())
	assert.NotNil(t, created.Ratings)
	assert.NotNil(t, created.Comments)
	assert.Empty(t, created.Ratings)
	assert.Empty(t, created.Comments)

	movies, err := db.ListMovies(ctx)
	require.NoError(t, err)
	assert.Len(t, movies, 1)
	assert.Equal(t, "Inception", movies[0].Name)

	got, err := db.GetMovieByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, 10.5, got.TicketPrice)

	_, err = db.AddRating(ctx, created.ID, models.Rating{UserID: "u1", Rating: 5})
	require.NoError(t, err)

	updated, err := db.UpdateMovieByID(ctx, created.ID, models.DummyMovie{
		Name:        "Inception: Director's Cut",
		Description: "extended edition",
		Genre:       "sci-fi",
	})
	require.NoError(t, err)
	assert.Equal(t, "Inception: Director's Cut", updated.Name)
	// Обновление описательных полей не трогает оценки
	assert.Len(t, updated.Ratings, 1)

	removed, err := db.RemoveMovieByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, removed.ID)

	_, err = db.GetMovieByID(ctx, created.ID)
	assert.True(t, errors.Is(err, storage.ErrMovieNotFound))
}

func TestMovie_NotFound(t *testing.T) {
	db, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()

	missing := newTestMovie("missing")
	created, err := db.CreateMovie(ctx, missing)
	require.NoError(t, err)
	_, err = db.RemoveMovieByID(ctx, created.ID)
	require.NoError(t, err)

	_, err = db.GetMovieByID(ctx, created.ID)
	assert.True(t, errors.Is(err, storage.ErrMovieNotFound))

	_, err = db.UpdateMovieByID(ctx, created.ID, models.DummyMovie{Name: "x", Genre: "y"})
	assert.True(t, errors.Is(err, storage.ErrMovieNotFound))

	_, err = db.RemoveMovieByID(ctx, created.ID)
	assert.True(t, errors.Is(err, storage.ErrMovieNotFound))

	_, err = db.AddRating(ctx, created.ID, models.Rating{UserID: "u1", Rating: 5})
	assert.True(t, errors.Is(err, storage.ErrMovieNotFound))

	_, err = db.AddComment(ctx, created.ID, models.Comment{UserID: "u1", Text: "hi"})
	assert.True(t, errors.Is(err, storage.ErrMovieNotFound))
}

func TestAddRating(t *testing.T) {
	db, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()

	created, err := db.CreateMovie(ctx, newTestMovie("Alien"))
	require.NoError(t, err)

	movie, err := db.AddRating(ctx, created.ID, models.Rating{UserID: "u1", Rating: 5})
	require.NoError(t, err)
	assert.Len(t, movie.Ratings, 1)

	// Повторная оценка того же пользователя отклоняется
	_, err = db.AddRating(ctx, created.ID, models.Rating{UserID: "u1", Rating: 3})
	assert.True(t, errors.Is(err, storage.ErrAlreadyRated))

	// Другой пользователь может оценить тот же фильм
	movie, err = db.AddRating(ctx, created.ID, models.Rating{UserID: "u2", Rating: 4})
	require.NoError(t, err)
	assert.Len(t, movie.Ratings, 2)
}

func TestAddComment(t *testing.T) {
	db, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()

	created, err := db.CreateMovie(ctx, newTestMovie("Alien"))
	require.NoError(t, err)

	movie, err := db.AddComment(ctx, created.ID, models.Comment{UserID: "u1", Text: "great"})
	require.NoError(t, err)
	assert.Len(t, movie.Comments, 1)

	// Один пользователь может оставить несколько комментариев
	movie, err = db.AddComment(ctx, created.ID, models.Comment{UserID: "u1", Text: "saw it twice"})
	require.NoError(t, err)
	assert.Len(t, movie.Comments, 2)
	assert.Equal(t, "saw it twice", movie.Comments[1].Text)
}
