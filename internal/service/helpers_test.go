// internal/service/helpers_test.go
package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"cinepetro_api/internal/config"
	"cinepetro_api/internal/model"
	"cinepetro_api/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestDB はテストごとに独立したインメモリSQLiteを作る
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := repository.NewDB(repository.DriverSQLite, dsn, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		App:  config.AppConfig{Name: "cinepetro-test"},
		JWT:  config.JWTConfig{SecretKey: "test-secret-key", AccessTokenTTL: time.Hour},
		Auth: config.AuthConfig{Enabled: true, AdminEmails: []string{"admin@cinepetro.com.br"}},
	}
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func seedUser(t *testing.T, db *gorm.DB) *model.User {
	t.Helper()
	u := &model.User{
		Name:         "Usuário Teste",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedMovie(t *testing.T, db *gorm.DB, title string, durationMinutes *int) *model.Movie {
	t.Helper()
	m := &model.Movie{Title: title, Duration: durationMinutes, Poster: strPtr("/posters/" + title + ".jpg")}
	require.NoError(t, db.Create(m).Error)
	return m
}

func seedSeries(t *testing.T, db *gorm.DB, title string) *model.Series {
	t.Helper()
	s := &model.Series{Title: title, Poster: strPtr("/posters/" + title + ".jpg")}
	require.NoError(t, db.Create(s).Error)
	return s
}

func seedEpisode(t *testing.T, db *gorm.DB, seriesID uint, season, number int, durationMinutes *int) *model.Episode {
	t.Helper()
	e := &model.Episode{
		SeriesID:      seriesID,
		Title:         fmt.Sprintf("S%02dE%02d", season, number),
		SeasonNumber:  intPtr(season),
		EpisodeNumber: intPtr(number),
		Duration:      durationMinutes,
	}
	require.NoError(t, db.Create(e).Error)
	return e
}

// setUpdatedAt は並び順を検証するため updated_at を固定する
func setUpdatedAt(t *testing.T, db *gorm.DB, progressID uint, at time.Time) {
	t.Helper()
	require.NoError(t, db.Model(&model.WatchProgress{}).Where("id = ?", progressID).UpdateColumn("updated_at", at.UTC()).Error)
}

// recordingMailer は送信先を記録する
type recordingMailer struct {
	sent []string
}

func (m *recordingMailer) Send(_ context.Context, to, subject, body string) error {
	m.sent = append(m.sent, to)
	return nil
}
