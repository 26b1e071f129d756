//go:generate mockery --name SeriesRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"cinepetro_api/internal/middleware"
	"cinepetro_api/internal/model"

	"gorm.io/gorm"
)

type SeriesRepository interface {
	Create(ctx context.Context, tx *gorm.DB, series *model.Series) error
	FindByID(ctx context.Context, db *gorm.DB, seriesID uint) (*model.Series, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]*model.Series, error)
	Update(ctx context.Context, tx *gorm.DB, seriesID uint, updates map[string]interface{}) error
	ReplaceGenres(ctx context.Context, tx *gorm.DB, series *model.Series, genres []model.Genre) error
	Delete(ctx context.Context, tx *gorm.DB, seriesID uint) error
	LinkGenre(ctx context.Context, tx *gorm.DB, link *model.SerieGenre) error
	UnlinkGenre(ctx context.Context, tx *gorm.DB, link *model.SerieGenre) error
}

type gormSeriesRepository struct{}

func NewGormSeriesRepository() SeriesRepository {
	return &gormSeriesRepository{}
}

func (r *gormSeriesRepository) Create(ctx context.Context, tx *gorm.DB, series *model.Series) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Omit("Genres.*").Create(series)
	if result.Error != nil {
		if isForeignKeyError(result.Error) {
			logger.Warn("Foreign key violation on create series",
				"error", result.Error,
				"title", series.Title,
			)
			return model.ErrInvalidInput
		}
		logger.Error("Error creating series in DB",
			"error", result.Error,
			"title", series.Title,
		)
		return fmt.Errorf("gormSeriesRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormSeriesRepository) FindByID(ctx context.Context, db *gorm.DB, seriesID uint) (*model.Series, error) {
	logger := middleware.GetLogger(ctx)
	var series model.Series
	result := db.WithContext(ctx).Preload("Genres").First(&series, seriesID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding series by ID in DB",
			"error", result.Error,
			"series_id", seriesID,
		)
		return nil, fmt.Errorf("gormSeriesRepository.FindByID: %w", result.Error)
	}
	return &series, nil
}

func (r *gormSeriesRepository) FindAll(ctx context.Context, db *gorm.DB) ([]*model.Series, error) {
	logger := middleware.GetLogger(ctx)
	var series []*model.Series
	result := db.WithContext(ctx).Preload("Genres").Order("id ASC").Find(&series)
	if result.Error != nil {
		logger.Error("Error finding series in DB", "error", result.Error)
		return nil, fmt.Errorf("gormSeriesRepository.FindAll: %w", result.Error)
	}
	return series, nil
}

func (r *gormSeriesRepository) Update(ctx context.Context, tx *gorm.DB, seriesID uint, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Series{}).Where("id = ?", seriesID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating series in DB",
			"error", result.Error,
			"series_id", seriesID,
		)
		return fmt.Errorf("gormSeriesRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormSeriesRepository) ReplaceGenres(ctx context.Context, tx *gorm.DB, series *model.Series, genres []model.Genre) error {
	logger := middleware.GetLogger(ctx)
	assoc := tx.WithContext(ctx).Model(series).Omit("Genres.*").Association("Genres")
	var err error
	if len(genres) == 0 {
		err = assoc.Clear()
	} else {
		err = assoc.Replace(genres)
	}
	if err != nil {
		logger.Error("Error replacing series genres in DB",
			"error", err,
			"series_id", series.ID,
		)
		return fmt.Errorf("gormSeriesRepository.ReplaceGenres: %w", err)
	}
	return nil
}

func (r *gormSeriesRepository) Delete(ctx context.Context, tx *gorm.DB, seriesID uint) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Delete(&model.Series{}, seriesID)
	if result.Error != nil {
		logger.Error("Error deleting series in DB",
			"error", result.Error,
			"series_id", seriesID,
		)
		return fmt.Errorf("gormSeriesRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// LinkGenre は serie_genre に1行追加する。既にあれば ErrConflict。
func (r *gormSeriesRepository) LinkGenre(ctx context.Context, tx *gorm.DB, link *model.SerieGenre) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(link)
	if result.Error != nil {
		switch {
		case isDuplicateKeyError(result.Error):
			logger.Warn("Duplicate key error on link series genre",
				"error", result.Error,
				"series_id", link.SerieID,
				"genre_id", link.GenreID,
			)
			return model.ErrConflict
		case isForeignKeyError(result.Error):
			logger.Warn("Foreign key violation on link series genre",
				"error", result.Error,
				"series_id", link.SerieID,
				"genre_id", link.GenreID,
			)
			return model.ErrNotFound
		}
		logger.Error("Error linking series genre in DB",
			"error", result.Error,
			"series_id", link.SerieID,
			"genre_id", link.GenreID,
		)
		return fmt.Errorf("gormSeriesRepository.LinkGenre: %w", result.Error)
	}
	return nil
}

// UnlinkGenre は serie_genre から1行削除する。無ければ ErrNotFound。
func (r *gormSeriesRepository) UnlinkGenre(ctx context.Context, tx *gorm.DB, link *model.SerieGenre) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).
		Where("serie_id = ? AND genre_id = ?", link.SerieID, link.GenreID).
		Delete(&model.SerieGenre{})
	if result.Error != nil {
		logger.Error("Error unlinking series genre in DB",
			"error", result.Error,
			"series_id", link.SerieID,
			"genre_id", link.GenreID,
		)
		return fmt.Errorf("gormSeriesRepository.UnlinkGenre: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
