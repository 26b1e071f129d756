//go:build integration

// postgres_integration_test.go
package repository_test

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"testing"
	"time"

	"cinepetro_api/internal/model"
	"cinepetro_api/internal/repository"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var pgDB *gorm.DB

const pgContainerName = "test_postgres_cinepetro"

// TestMain は PostgreSQL コンテナを起動してマイグレーションまで行う
func TestMain(m *testing.M) {
	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct pool: %s", err)
	}
	pool.MaxWait = 120 * time.Second

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Name:       pgContainerName,
		Repository: "postgres",
		Tag:        "15-alpine",
		Env: []string{
			"POSTGRES_USER=user",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=cinepetro",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("Could not start PostgreSQL resource: %s", err)
	}

	// devcontainer からは host.docker.internal を指定する
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		host = "localhost"
	}
	dsn := fmt.Sprintf("postgres://user:secret@%s:%s/cinepetro?sslmode=disable", host, resource.GetPort("5432/tcp"))

	if err = pool.Retry(func() error {
		var errRetry error
		pgDB, errRetry = repository.NewDB(repository.DriverPostgres, dsn, testLogger)
		return errRetry
	}); err != nil {
		_ = pool.Purge(resource)
		log.Fatalf("Could not connect to PostgreSQL: %s", err)
	}

	if err := repository.AutoMigrate(pgDB); err != nil {
		_ = pool.Purge(resource)
		log.Fatalf("Failed to migrate: %s", err)
	}

	exitCode := m.Run()

	if err := pool.Purge(resource); err != nil {
		log.Printf("Could not purge resource: %s", err)
	}
	os.Exit(exitCode)
}

type pgFixture struct {
	user    *model.User
	movie   *model.Movie
	episode *model.Episode
}

func seedPostgres(t *testing.T) pgFixture {
	t.Helper()
	suffix := time.Now().UnixNano()
	user := &model.User{Name: "Ana", Email: fmt.Sprintf("ana-%d@example.com", suffix), PasswordHash: "x"}
	require.NoError(t, pgDB.Create(user).Error)

	duration := 100
	movie := &model.Movie{Title: fmt.Sprintf("Filme %d", suffix), Duration: &duration}
	require.NoError(t, pgDB.Create(movie).Error)

	series := &model.Series{Title: "Série"}
	require.NoError(t, pgDB.Create(series).Error)
	season, number, epDuration := 1, 1, 40
	episode := &model.Episode{SeriesID: series.ID, Title: "Piloto", SeasonNumber: &season, EpisodeNumber: &number, Duration: &epDuration}
	require.NoError(t, pgDB.Create(episode).Error)

	return pgFixture{user: user, movie: movie, episode: episode}
}

func TestPostgres_ProgressConstraints(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewGormProgressRepository()
	f := seedPostgres(t)

	t.Run("正常系: 映画とエピソードで同じIDでも別の行", func(t *testing.T) {
		movieID := f.movie.ID
		episodeID := f.episode.ID
		require.NoError(t, repo.Create(ctx, pgDB, &model.WatchProgress{UserID: f.user.ID, MovieID: &movieID, TimeSeconds: 10}))
		require.NoError(t, repo.Create(ctx, pgDB, &model.WatchProgress{UserID: f.user.ID, EpisodeID: &episodeID, TimeSeconds: 10}))

		got, err := repo.FindByRef(ctx, pgDB, f.user.ID, model.MovieRef(movieID))
		require.NoError(t, err)
		assert.Equal(t, float64(10), got.TimeSeconds)
	})

	t.Run("異常系: 部分一意インデックスで2行目は ErrConflict", func(t *testing.T) {
		movieID := f.movie.ID
		err := repo.Create(ctx, pgDB, &model.WatchProgress{UserID: f.user.ID, MovieID: &movieID, TimeSeconds: 20})
		assert.ErrorIs(t, err, model.ErrConflict)
	})

	t.Run("異常系: 両方指定は CHECK 制約で拒否", func(t *testing.T) {
		movieID := f.movie.ID
		episodeID := f.episode.ID
		err := repo.Create(ctx, pgDB, &model.WatchProgress{UserID: f.user.ID, MovieID: &movieID, EpisodeID: &episodeID})
		require.Error(t, err)
		assert.NotErrorIs(t, err, model.ErrConflict)
	})

	t.Run("異常系: 存在しない映画は ErrInvalidInput", func(t *testing.T) {
		missing := uint(987654)
		err := repo.Create(ctx, pgDB, &model.WatchProgress{UserID: f.user.ID, MovieID: &missing})
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})
}

func TestPostgres_FindUnfinished(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewGormProgressRepository()
	f := seedPostgres(t)

	movieID := f.movie.ID
	episodeID := f.episode.ID
	// 100分 * 0.95 = 5700秒
	require.NoError(t, repo.Create(ctx, pgDB, &model.WatchProgress{UserID: f.user.ID, MovieID: &movieID, TimeSeconds: 5699}))
	require.NoError(t, repo.Create(ctx, pgDB, &model.WatchProgress{UserID: f.user.ID, EpisodeID: &episodeID, TimeSeconds: 2280}))

	movies, err := repo.FindUnfinishedMovies(ctx, pgDB, f.user.ID, model.CompletionThreshold)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, movieID, *movies[0].MovieID)

	// 40分 * 0.95 = 2280秒ちょうどは視聴済み
	episodes, err := repo.FindUnfinishedEpisodes(ctx, pgDB, f.user.ID, model.CompletionThreshold)
	require.NoError(t, err)
	assert.Empty(t, episodes)
}
