// internal/handlers/router.go
package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"cinepetro_api/internal/config"
	"cinepetro_api/internal/metrics"
	"cinepetro_api/internal/middleware"
	"cinepetro_api/internal/service"
	"cinepetro_api/internal/telemetry"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

// Services はルーターが必要とするサービス一式
type Services struct {
	Auth     service.AuthService
	User     service.UserService
	Progress service.ProgressService
	Genre    service.GenreService
	Movie    service.MovieService
	Series   service.SeriesService
	Episode  service.EpisodeService
}

// NewRouter はミドルウェアとすべてのルートを組み立てる
func NewRouter(cfg *config.Config, db *gorm.DB, svc Services, logger *slog.Logger) http.Handler {
	authHandler := NewAuthHandler(svc.Auth)
	userHandler := NewUserHandler(svc.User, logger)
	progressHandler := NewProgressHandler(svc.Progress, logger)
	genreHandler := NewGenreHandler(svc.Genre, logger)
	movieHandler := NewMovieHandler(svc.Movie, logger)
	seriesHandler := NewSeriesHandler(svc.Series, logger)
	episodeHandler := NewEpisodeHandler(svc.Episode, logger)
	systemHandler := NewSystemHandler(db, cfg.App.Name)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware)
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
		Debug:            false,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(telemetry.PanicReporter)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	var authMiddleware func(http.Handler) http.Handler
	if cfg.Auth.Enabled {
		logger.Info("Applying JWT authentication middleware")
		authMiddleware = middleware.JWTAuthMiddleware(cfg, svc.Auth)
	} else {
		logger.Warn("Authentication disabled: using X-User-ID development middleware")
		authMiddleware = middleware.DevUserContextMiddleware
	}

	r.Get("/", systemHandler.Root)
	r.Get("/health", systemHandler.Health)
	if cfg.Metrics.Enabled {
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		// --- Public routes ---
		r.Post("/auth/login", authHandler.Login)
		r.Post("/users", userHandler.CreateUser)

		r.Get("/genres", genreHandler.ListGenres)
		r.Get("/genres/{genre_id}", genreHandler.GetGenre)
		r.Get("/movies", movieHandler.ListMovies)
		r.Get("/movies/{movie_id}", movieHandler.GetMovie)
		r.Get("/series", seriesHandler.ListSeries)
		r.Get("/series/{series_id}", seriesHandler.GetSeries)
		r.Get("/series/{series_id}/episodes", seriesHandler.ListEpisodes)
		r.Get("/episodes", episodeHandler.ListEpisodes)
		r.Get("/episodes/{episode_id}", episodeHandler.GetEpisode)

		// --- Protected routes ---
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)

			r.With(middleware.RequireAdmin).Get("/users", userHandler.ListUsers)
			r.Get("/users/me", userHandler.GetMe)
			r.Get("/users/{user_id}", userHandler.GetUser)
			r.Put("/users/{user_id}", userHandler.UpdateUser)
			r.Delete("/users/{user_id}", userHandler.DeleteUser)

			r.Route("/progress", func(r chi.Router) {
				r.Post("/save", progressHandler.SaveProgress)
				r.Get("/get", progressHandler.GetProgress)
				r.Get("/continuar", progressHandler.ContinueWatching)
			})

			r.Post("/genres", genreHandler.CreateGenre)
			r.Post("/genres/batch", genreHandler.CreateGenres)
			r.Put("/genres/{genre_id}", genreHandler.UpdateGenre)
			r.Delete("/genres/{genre_id}", genreHandler.DeleteGenre)

			r.Post("/movies", movieHandler.CreateMovie)
			r.Put("/movies/{movie_id}", movieHandler.UpdateMovie)
			r.Delete("/movies/{movie_id}", movieHandler.DeleteMovie)

			r.Post("/series", seriesHandler.CreateSeries)
			r.Put("/series/{series_id}", seriesHandler.UpdateSeries)
			r.Delete("/series/{series_id}", seriesHandler.DeleteSeries)

			r.Post("/episodes", episodeHandler.CreateEpisode)
			r.Put("/episodes/{episode_id}", episodeHandler.UpdateEpisode)
			r.Delete("/episodes/{episode_id}", episodeHandler.DeleteEpisode)

			r.Post("/serie-genero", seriesHandler.LinkGenre)
			r.Delete("/serie-genero", seriesHandler.UnlinkGenre)
		})
	})

	return r
}
