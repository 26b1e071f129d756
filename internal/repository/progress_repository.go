//go:generate mockery --name ProgressRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"cinepetro_api/internal/middleware"
	"cinepetro_api/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository interface {
	Create(ctx context.Context, tx *gorm.DB, progress *model.WatchProgress) error
	FindByRef(ctx context.Context, db *gorm.DB, userID uint, ref model.ContentRef) (*model.WatchProgress, error)
	UpdateTime(ctx context.Context, tx *gorm.DB, progress *model.WatchProgress, timeSeconds float64) error
	DeleteByUser(ctx context.Context, tx *gorm.DB, userID uint) error
	FindUnfinishedMovies(ctx context.Context, db *gorm.DB, userID uint, threshold float64) ([]model.MovieProgressRow, error)
	FindUnfinishedEpisodes(ctx context.Context, db *gorm.DB, userID uint, threshold float64) ([]model.EpisodeProgressRow, error)
}

type gormProgressRepository struct{}

func NewGormProgressRepository() ProgressRepository {
	return &gormProgressRepository{}
}

func (r *gormProgressRepository) Create(ctx context.Context, tx *gorm.DB, progress *model.WatchProgress) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(progress)
	if result.Error != nil {
		switch {
		case isDuplicateKeyError(result.Error):
			// 同じ (user, content) への初回書き込みが並行した
			logger.Warn("Duplicate key error on create watch progress",
				"error", result.Error,
				"user_id", progress.UserID,
				"content", progress.Ref().String(),
			)
			return model.ErrConflict
		case isForeignKeyError(result.Error):
			logger.Warn("Foreign key violation on create watch progress",
				"error", result.Error,
				"user_id", progress.UserID,
				"content", progress.Ref().String(),
			)
			return model.ErrInvalidInput
		}
		logger.Error("Error creating watch progress in DB",
			"error", result.Error,
			"user_id", progress.UserID,
			"content", progress.Ref().String(),
		)
		return fmt.Errorf("gormProgressRepository.Create: %w", result.Error)
	}
	return nil
}

// FindByRef は (user_id, movie_id, episode_id) を完全に固定して検索する。
// 使わない側のカラムも必ず IS NULL で絞る。
func (r *gormProgressRepository) FindByRef(ctx context.Context, db *gorm.DB, userID uint, ref model.ContentRef) (*model.WatchProgress, error) {
	logger := middleware.GetLogger(ctx)

	query := db.WithContext(ctx).Where("user_id = ?", userID)
	switch ref.Kind() {
	case model.ContentKindMovie:
		query = query.Where("movie_id = ? AND episode_id IS NULL", ref.ID())
	case model.ContentKindEpisode:
		query = query.Where("episode_id = ? AND movie_id IS NULL", ref.ID())
	default:
		return nil, model.ErrInvalidInput
	}

	var progress model.WatchProgress
	result := query.First(&progress)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding watch progress in DB",
			"error", result.Error,
			"user_id", userID,
			"content", ref.String(),
		)
		return nil, fmt.Errorf("gormProgressRepository.FindByRef: %w", result.Error)
	}
	return &progress, nil
}

// UpdateTime は再生位置を上書きし updated_at を更新する
func (r *gormProgressRepository) UpdateTime(ctx context.Context, tx *gorm.DB, progress *model.WatchProgress, timeSeconds float64) error {
	logger := middleware.GetLogger(ctx)
	// Updates は updated_at を自動で更新する
	result := tx.WithContext(ctx).Model(progress).Updates(map[string]interface{}{"time_seconds": timeSeconds})
	if result.Error != nil {
		logger.Error("Error updating watch progress in DB",
			"error", result.Error,
			"progress_id", progress.ID,
		)
		return fmt.Errorf("gormProgressRepository.UpdateTime: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	progress.TimeSeconds = timeSeconds
	return nil
}

func (r *gormProgressRepository) DeleteByUser(ctx context.Context, tx *gorm.DB, userID uint) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.WatchProgress{})
	if result.Error != nil {
		logger.Error("Error deleting watch progress by user in DB",
			"error", result.Error,
			"user_id", userID,
		)
		return fmt.Errorf("gormProgressRepository.DeleteByUser: %w", result.Error)
	}
	logger.Debug("Deleted watch progress rows for user", "user_id", userID, "rows", result.RowsAffected)
	return nil
}

// FindUnfinishedMovies は途中まで視聴した映画を新しい順に返す。
// duration が NULL の映画は完了率を計算できないので対象外。
func (r *gormProgressRepository) FindUnfinishedMovies(ctx context.Context, db *gorm.DB, userID uint, threshold float64) ([]model.MovieProgressRow, error) {
	logger := middleware.GetLogger(ctx)
	var rows []model.MovieProgressRow
	result := db.WithContext(ctx).
		Table("watch_progress").
		Select(`watch_progress.movie_id AS movie_id,
			movies.title AS title,
			movies.poster AS poster,
			watch_progress.time_seconds AS time_seconds,
			movies.duration AS duration_minutes,
			watch_progress.updated_at AS updated_at`).
		Joins("JOIN movies ON movies.id = watch_progress.movie_id AND movies.deleted_at IS NULL").
		Where("watch_progress.user_id = ?", userID).
		Where("watch_progress.movie_id IS NOT NULL AND watch_progress.episode_id IS NULL").
		Where("watch_progress.time_seconds > 0").
		Where("movies.duration IS NOT NULL").
		Where("watch_progress.time_seconds < movies.duration * 60 * CAST(? AS DOUBLE PRECISION)", threshold).
		Order("watch_progress.updated_at DESC").
		Order("watch_progress.id DESC").
		Scan(&rows)
	if result.Error != nil {
		logger.Error("Error finding unfinished movies in DB",
			"error", result.Error,
			"user_id", userID,
		)
		return nil, fmt.Errorf("gormProgressRepository.FindUnfinishedMovies: %w", result.Error)
	}
	return rows, nil
}

// FindUnfinishedEpisodes はエピソード版。シリーズも論理削除されていないものだけ。
func (r *gormProgressRepository) FindUnfinishedEpisodes(ctx context.Context, db *gorm.DB, userID uint, threshold float64) ([]model.EpisodeProgressRow, error) {
	logger := middleware.GetLogger(ctx)
	var rows []model.EpisodeProgressRow
	result := db.WithContext(ctx).
		Table("watch_progress").
		Select(`watch_progress.episode_id AS episode_id,
			episodes.series_id AS series_id,
			series.title AS series_title,
			episodes.season_number AS season_number,
			episodes.episode_number AS episode_number,
			episodes.title AS title,
			series.poster AS poster,
			watch_progress.time_seconds AS time_seconds,
			episodes.duration AS duration_minutes,
			watch_progress.updated_at AS updated_at`).
		Joins("JOIN episodes ON episodes.id = watch_progress.episode_id AND episodes.deleted_at IS NULL").
		Joins("JOIN series ON series.id = episodes.series_id AND series.deleted_at IS NULL").
		Where("watch_progress.user_id = ?", userID).
		Where("watch_progress.episode_id IS NOT NULL AND watch_progress.movie_id IS NULL").
		Where("watch_progress.time_seconds > 0").
		Where("episodes.duration IS NOT NULL").
		Where("watch_progress.time_seconds < episodes.duration * 60 * CAST(? AS DOUBLE PRECISION)", threshold).
		Order("watch_progress.updated_at DESC").
		Order("watch_progress.id DESC").
		Scan(&rows)
	if result.Error != nil {
		logger.Error("Error finding unfinished episodes in DB",
			"error", result.Error,
			"user_id", userID,
		)
		return nil, fmt.Errorf("gormProgressRepository.FindUnfinishedEpisodes: %w", result.Error)
	}
	return rows, nil
}
