// Package moviecatalog предоставляет маршруты для основного приложения.
package moviecatalog

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/kinobilet/movie-catalog/internal/http/handlers/auth/login"
	"github.com/kinobilet/movie-catalog/internal/http/handlers/auth/register"
	"github.com/kinobilet/movie-catalog/internal/http/handlers/movie/comment"
	"github.com/kinobilet/movie-catalog/internal/http/handlers/movie/create"
	"github.com/kinobilet/movie-catalog/internal/http/handlers/movie/health"
	"github.com/kinobilet/movie-catalog/internal/http/handlers/movie/list"
	"github.com/kinobilet/movie-catalog/internal/http/handlers/movie/rate"
	"github.com/kinobilet/movie-catalog/internal/http/handlers/movie/read"
	"github.com/kinobilet/movie-catalog/internal/http/handlers/movie/remove"
	"github.com/kinobilet/movie-catalog/internal/http/handlers/movie/search"
	"github.com/kinobilet/movie-catalog/internal/http/handlers/movie/update"
	"github.com/kinobilet/movie-catalog/internal/http/middlewarectx"
	"github.com/kinobilet/movie-catalog/internal/lib/jwt"
	authservice "github.com/kinobilet/movie-catalog/internal/services/auth"
	movieservice "github.com/kinobilet/movie-catalog/internal/services/movie"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker, authService *authservice.AuthService, movieService *movieservice.MovieService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Открытые конечные точки
	r.Post("/auth/register", register.New(logger, authService).ServeHTTP)
	r.Post("/auth/login", login.New(logger, authService).ServeHTTP)

	r.Post("/movies", create.New(logger, movieService).ServeHTTP)
	r.Get("/movies", list.New(logger, movieService).ServeHTTP)
	r.Get("/movies/search", search.New(logger, movieService).ServeHTTP)
	r.Get("/movies/{id}", read.New(logger, movieService).ServeHTTP)
	r.Put("/movies/{id}", update.New(logger, movieService).ServeHTTP)
	r.Delete("/movies/{id}", remove.New(logger, movieService).ServeHTTP)

	// Группа с JWT аутентификацией
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
		r.Post("/movies/rate", rate.New(logger, movieService).ServeHTTP)
		r.Post("/movies/comment", comment.New(logger, movieService).ServeHTTP)
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
