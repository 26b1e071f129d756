//go:generate mockery --name GenreRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"cinepetro_api/internal/middleware"
	"cinepetro_api/internal/model"

	"gorm.io/gorm"
)

type GenreRepository interface {
	Create(ctx context.Context, tx *gorm.DB, genre *model.Genre) error
	FindByID(ctx context.Context, db *gorm.DB, genreID uint) (*model.Genre, error)
	FindByIDs(ctx context.Context, db *gorm.DB, genreIDs []uint) ([]model.Genre, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]*model.Genre, error)
	Update(ctx context.Context, tx *gorm.DB, genreID uint, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, genreID uint) error
}

type gormGenreRepository struct{}

func NewGormGenreRepository() GenreRepository {
	return &gormGenreRepository{}
}

func (r *gormGenreRepository) Create(ctx context.Context, tx *gorm.DB, genre *model.Genre) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(genre)
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			logger.Warn("Duplicate key error on create genre",
				"error", result.Error,
				"name", genre.Name,
			)
			return model.ErrConflict
		}
		logger.Error("Error creating genre in DB",
			"error", result.Error,
			"name", genre.Name,
		)
		return fmt.Errorf("gormGenreRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormGenreRepository) FindByID(ctx context.Context, db *gorm.DB, genreID uint) (*model.Genre, error) {
	logger := middleware.GetLogger(ctx)
	var genre model.Genre
	result := db.WithContext(ctx).First(&genre, genreID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding genre by ID in DB",
			"error", result.Error,
			"genre_id", genreID,
		)
		return nil, fmt.Errorf("gormGenreRepository.FindByID: %w", result.Error)
	}
	return &genre, nil
}

// FindByIDs は存在する分だけ返す。件数の突き合わせは呼び出し側で行う。
func (r *gormGenreRepository) FindByIDs(ctx context.Context, db *gorm.DB, genreIDs []uint) ([]model.Genre, error) {
	logger := middleware.GetLogger(ctx)
	var genres []model.Genre
	if len(genreIDs) == 0 {
		return genres, nil
	}
	result := db.WithContext(ctx).Where("id IN ?", genreIDs).Order("id ASC").Find(&genres)
	if result.Error != nil {
		logger.Error("Error finding genres by IDs in DB",
			"error", result.Error,
			"genre_ids", genreIDs,
		)
		return nil, fmt.Errorf("gormGenreRepository.FindByIDs: %w", result.Error)
	}
	return genres, nil
}

func (r *gormGenreRepository) FindAll(ctx context.Context, db *gorm.DB) ([]*model.Genre, error) {
	logger := middleware.GetLogger(ctx)
	var genres []*model.Genre
	result := db.WithContext(ctx).Order("name ASC").Find(&genres)
	if result.Error != nil {
		logger.Error("Error finding genres in DB", "error", result.Error)
		return nil, fmt.Errorf("gormGenreRepository.FindAll: %w", result.Error)
	}
	return genres, nil
}

func (r *gormGenreRepository) Update(ctx context.Context, tx *gorm.DB, genreID uint, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Genre{}).Where("id = ?", genreID).Updates(updates)
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			logger.Warn("Duplicate key error on update genre",
				"error", result.Error,
				"genre_id", genreID,
			)
			return model.ErrConflict
		}
		logger.Error("Error updating genre in DB",
			"error", result.Error,
			"genre_id", genreID,
		)
		return fmt.Errorf("gormGenreRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormGenreRepository) Delete(ctx context.Context, tx *gorm.DB, genreID uint) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Delete(&model.Genre{}, genreID)
	if result.Error != nil {
		logger.Error("Error deleting genre in DB",
			"error", result.Error,
			"genre_id", genreID,
		)
		return fmt.Errorf("gormGenreRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
