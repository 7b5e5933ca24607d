// Package moviecatalog собирает приложение каталога фильмов: подключение
// к MongoDB, опциональный поисковый индекс, сервисы и HTTP-сервер.
package moviecatalog

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/kinobilet/movie-catalog/internal/config"
	"github.com/kinobilet/movie-catalog/internal/lib/jwt"
	"github.com/kinobilet/movie-catalog/internal/search"
	authservice "github.com/kinobilet/movie-catalog/internal/services/auth"
	movieservice "github.com/kinobilet/movie-catalog/internal/services/movie"
	"github.com/kinobilet/movie-catalog/internal/storage/mongodb"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *mongodb.Storage
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := mongodb.New(ctx, cfg.StorageConnectionString, cfg.MongoDatabase)
	if err != nil {
		return nil, err
	}

	var searchIndex movieservice.SearchIndex
	if cfg.ElasticConnection.Enabled {
		es, err := search.New(cfg.AddressesES, cfg.MovieIndexES, logger)
		if err != nil {
			return nil, err
		}
		searchIndex = es
	} else {
		logger.Info("search index is disabled, search will return empty results")
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker)
	movieService := movieservice.NewMovieService(db, searchIndex, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, jwtMaker, authService, movieService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.db.Close(timeoutCtx); closeErr != nil {
			a.logger.Error("failed to close storage", slog.Any("err", closeErr))
		}
		return err
	}
}
