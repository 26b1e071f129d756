// cmd/seed/main.go
// 開発用のサンプルカタログを投入する
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"cinepetro_api/internal/config"
	"cinepetro_api/internal/model"
	"cinepetro_api/internal/repository"
	"cinepetro_api/internal/service"

	"github.com/lmittmann/tint"
	"gorm.io/gorm"
)

type sampleEpisode struct {
	title           string
	season, number  int
	durationMinutes int
}

type sampleSeries struct {
	title    string
	start    int
	genres   []string
	episodes []sampleEpisode
}

type sampleMovie struct {
	title           string
	year            int
	durationMinutes int
	genres          []string
}

var (
	sampleGenres = []string{"Drama", "Comédia", "Crime", "Documentário", "Ficção científica"}

	sampleMovies = []sampleMovie{
		{title: "Cidade de Deus", year: 2002, durationMinutes: 130, genres: []string{"Drama", "Crime"}},
		{title: "Central do Brasil", year: 1998, durationMinutes: 113, genres: []string{"Drama"}},
		{title: "O Auto da Compadecida", year: 2000, durationMinutes: 104, genres: []string{"Comédia"}},
		{title: "Bacurau", year: 2019, durationMinutes: 131, genres: []string{"Ficção científica", "Drama"}},
	}

	sampleSeriesList = []sampleSeries{
		{
			title:  "Irmandade",
			start:  2019,
			genres: []string{"Crime", "Drama"},
			episodes: []sampleEpisode{
				{title: "Episódio 1", season: 1, number: 1, durationMinutes: 50},
				{title: "Episódio 2", season: 1, number: 2, durationMinutes: 48},
			},
		},
		{
			title:  "Cidade Invisível",
			start:  2021,
			genres: []string{"Drama"},
			episodes: []sampleEpisode{
				{title: "Episódio 1", season: 1, number: 1, durationMinutes: 35},
			},
		},
	}
)

func main() {
	configDir := flag.String("config", "configs", "directory containing config.yaml")
	adminPassword := flag.String("admin-password", "", "password for the seeded admin user (skipped when empty)")
	flag.Parse()

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelInfo, TimeFormat: time.Kitchen}))
	slog.SetDefault(logger)

	if err := config.LoadConfig(*configDir); err != nil {
		logger.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}
	cfg := &config.Cfg

	db, err := repository.NewDB(cfg.Database.Driver, cfg.Database.URL, logger)
	if err != nil {
		logger.Error("Failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := repository.AutoMigrate(db); err != nil {
		logger.Error("Failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}

	if err := seed(context.Background(), db, cfg, *adminPassword, logger); err != nil {
		logger.Error("Seeding failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Seeding finished")
}

func seed(ctx context.Context, db *gorm.DB, cfg *config.Config, adminPassword string, logger *slog.Logger) error {
	userRepo := repository.NewGormUserRepository()
	genreRepo := repository.NewGormGenreRepository()
	seriesRepo := repository.NewGormSeriesRepository()
	episodeRepo := repository.NewGormEpisodeRepository()

	userService := service.NewUserService(db, userRepo, repository.NewGormProgressRepository(), &service.LogMailer{}, cfg)
	genreService := service.NewGenreService(db, genreRepo)
	movieService := service.NewMovieService(db, repository.NewGormMovieRepository(), genreRepo)
	seriesService := service.NewSeriesService(db, seriesRepo, genreRepo, episodeRepo)
	episodeService := service.NewEpisodeService(db, episodeRepo, seriesRepo)

	existing, err := movieService.ListMovies(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.Warn("Catalog already has movies, skipping", slog.Int("movies", len(existing)))
		return nil
	}

	var createdBy uint
	if adminPassword != "" && len(cfg.Auth.AdminEmails) > 0 {
		admin, err := userService.CreateUser(ctx, &model.CreateUserRequest{
			Name:     "Administrador",
			Email:    cfg.Auth.AdminEmails[0],
			Password: adminPassword,
		})
		switch {
		case err == nil:
			createdBy = admin.ID
			logger.Info("Admin user created", slog.String("email", admin.Email))
		case errors.Is(err, model.ErrConflict):
			logger.Warn("Admin user already exists", slog.String("email", cfg.Auth.AdminEmails[0]))
		default:
			return err
		}
	}

	batch := &model.GenreBatchRequest{}
	for _, name := range sampleGenres {
		batch.Genres = append(batch.Genres, model.GenreRequest{Name: name})
	}
	genres, err := genreService.CreateGenres(ctx, batch)
	if err != nil {
		return err
	}
	genreIDs := make(map[string]uint, len(genres))
	for _, g := range genres {
		genreIDs[g.Name] = g.ID
	}
	idsOf := func(names []string) []uint {
		ids := make([]uint, 0, len(names))
		for _, n := range names {
			ids = append(ids, genreIDs[n])
		}
		return ids
	}

	for _, m := range sampleMovies {
		year, duration := m.year, m.durationMinutes
		movie, err := movieService.CreateMovie(ctx, createdBy, &model.CreateMovieRequest{
			Title:    m.title,
			Year:     &year,
			Duration: &duration,
			GenreIDs: idsOf(m.genres),
		})
		if err != nil {
			return err
		}
		logger.Info("Movie created", slog.Uint64("id", uint64(movie.ID)), slog.String("title", movie.Title))
	}

	for _, s := range sampleSeriesList {
		start := s.start
		series, err := seriesService.CreateSeries(ctx, createdBy, &model.CreateSeriesRequest{
			Title:     s.title,
			StartYear: &start,
			GenreIDs:  idsOf(s.genres),
		})
		if err != nil {
			return err
		}
		for _, e := range s.episodes {
			season, number, duration := e.season, e.number, e.durationMinutes
			if _, err := episodeService.CreateEpisode(ctx, createdBy, &model.CreateEpisodeRequest{
				SeriesID:      series.ID,
				Title:         e.title,
				SeasonNumber:  &season,
				EpisodeNumber: &number,
				Duration:      &duration,
			}); err != nil {
				return err
			}
		}
		logger.Info("Series created", slog.Uint64("id", uint64(series.ID)), slog.String("title", series.Title), slog.Int("episodes", len(s.episodes)))
	}
	return nil
}
