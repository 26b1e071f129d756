//go:generate mockery --name EpisodeRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"cinepetro_api/internal/middleware"
	"cinepetro_api/internal/model"

	"gorm.io/gorm"
)

type EpisodeRepository interface {
	Create(ctx context.Context, tx *gorm.DB, episode *model.Episode) error
	FindByID(ctx context.Context, db *gorm.DB, episodeID uint) (*model.Episode, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]*model.Episode, error)
	FindBySeries(ctx context.Context, db *gorm.DB, seriesID uint) ([]*model.Episode, error)
	Update(ctx context.Context, tx *gorm.DB, episodeID uint, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, episodeID uint) error
}

type gormEpisodeRepository struct{}

func NewGormEpisodeRepository() EpisodeRepository {
	return &gormEpisodeRepository{}
}

func (r *gormEpisodeRepository) Create(ctx context.Context, tx *gorm.DB, episode *model.Episode) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(episode)
	if result.Error != nil {
		switch {
		case isDuplicateKeyError(result.Error):
			logger.Warn("Duplicate key error on create episode",
				"error", result.Error,
				"series_id", episode.SeriesID,
			)
			return model.ErrConflict
		case isForeignKeyError(result.Error):
			logger.Warn("Foreign key violation on create episode",
				"error", result.Error,
				"series_id", episode.SeriesID,
			)
			return model.ErrInvalidInput
		}
		logger.Error("Error creating episode in DB",
			"error", result.Error,
			"series_id", episode.SeriesID,
		)
		return fmt.Errorf("gormEpisodeRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormEpisodeRepository) FindByID(ctx context.Context, db *gorm.DB, episodeID uint) (*model.Episode, error) {
	logger := middleware.GetLogger(ctx)
	var episode model.Episode
	result := db.WithContext(ctx).First(&episode, episodeID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding episode by ID in DB",
			"error", result.Error,
			"episode_id", episodeID,
		)
		return nil, fmt.Errorf("gormEpisodeRepository.FindByID: %w", result.Error)
	}
	return &episode, nil
}

func (r *gormEpisodeRepository) FindAll(ctx context.Context, db *gorm.DB) ([]*model.Episode, error) {
	logger := middleware.GetLogger(ctx)
	var episodes []*model.Episode
	result := db.WithContext(ctx).Order("id ASC").Find(&episodes)
	if result.Error != nil {
		logger.Error("Error finding episodes in DB", "error", result.Error)
		return nil, fmt.Errorf("gormEpisodeRepository.FindAll: %w", result.Error)
	}
	return episodes, nil
}

// FindBySeries はシーズン→話数の順で返す
func (r *gormEpisodeRepository) FindBySeries(ctx context.Context, db *gorm.DB, seriesID uint) ([]*model.Episode, error) {
	logger := middleware.GetLogger(ctx)
	var episodes []*model.Episode
	result := db.WithContext(ctx).
		Where("series_id = ?", seriesID).
		Order("season_number ASC").
		Order("episode_number ASC").
		Order("id ASC").
		Find(&episodes)
	if result.Error != nil {
		logger.Error("Error finding episodes by series in DB",
			"error", result.Error,
			"series_id", seriesID,
		)
		return nil, fmt.Errorf("gormEpisodeRepository.FindBySeries: %w", result.Error)
	}
	return episodes, nil
}

func (r *gormEpisodeRepository) Update(ctx context.Context, tx *gorm.DB, episodeID uint, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Episode{}).Where("id = ?", episodeID).Updates(updates)
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			logger.Warn("Duplicate key error on update episode",
				"error", result.Error,
				"episode_id", episodeID,
			)
			return model.ErrConflict
		}
		logger.Error("Error updating episode in DB",
			"error", result.Error,
			"episode_id", episodeID,
		)
		return fmt.Errorf("gormEpisodeRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormEpisodeRepository) Delete(ctx context.Context, tx *gorm.DB, episodeID uint) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Delete(&model.Episode{}, episodeID)
	if result.Error != nil {
		logger.Error("Error deleting episode in DB",
			"error", result.Error,
			"episode_id", episodeID,
		)
		return fmt.Errorf("gormEpisodeRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
