//go:generate mockery --name MovieRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"cinepetro_api/internal/middleware"
	"cinepetro_api/internal/model"

	"gorm.io/gorm"
)

type MovieRepository interface {
	Create(ctx context.Context, tx *gorm.DB, movie *model.Movie) error
	FindByID(ctx context.Context, db *gorm.DB, movieID uint) (*model.Movie, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]*model.Movie, error)
	Update(ctx context.Context, tx *gorm.DB, movieID uint, updates map[string]interface{}) error
	ReplaceGenres(ctx context.Context, tx *gorm.DB, movie *model.Movie, genres []model.Genre) error
	Delete(ctx context.Context, tx *gorm.DB, movieID uint) error
}

type gormMovieRepository struct{}

func NewGormMovieRepository() MovieRepository {
	return &gormMovieRepository{}
}

// Create は movie_genre の行も作る。genres 自体は既存のものなので upsert しない。
func (r *gormMovieRepository) Create(ctx context.Context, tx *gorm.DB, movie *model.Movie) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Omit("Genres.*").Create(movie)
	if result.Error != nil {
		if isForeignKeyError(result.Error) {
			logger.Warn("Foreign key violation on create movie",
				"error", result.Error,
				"title", movie.Title,
			)
			return model.ErrInvalidInput
		}
		logger.Error("Error creating movie in DB",
			"error", result.Error,
			"title", movie.Title,
		)
		return fmt.Errorf("gormMovieRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormMovieRepository) FindByID(ctx context.Context, db *gorm.DB, movieID uint) (*model.Movie, error) {
	logger := middleware.GetLogger(ctx)
	var movie model.Movie
	result := db.WithContext(ctx).Preload("Genres").First(&movie, movieID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding movie by ID in DB",
			"error", result.Error,
			"movie_id", movieID,
		)
		return nil, fmt.Errorf("gormMovieRepository.FindByID: %w", result.Error)
	}
	return &movie, nil
}

func (r *gormMovieRepository) FindAll(ctx context.Context, db *gorm.DB) ([]*model.Movie, error) {
	logger := middleware.GetLogger(ctx)
	var movies []*model.Movie
	result := db.WithContext(ctx).Preload("Genres").Order("id ASC").Find(&movies)
	if result.Error != nil {
		logger.Error("Error finding movies in DB", "error", result.Error)
		return nil, fmt.Errorf("gormMovieRepository.FindAll: %w", result.Error)
	}
	return movies, nil
}

func (r *gormMovieRepository) Update(ctx context.Context, tx *gorm.DB, movieID uint, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Movie{}).Where("id = ?", movieID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating movie in DB",
			"error", result.Error,
			"movie_id", movieID,
		)
		return fmt.Errorf("gormMovieRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// ReplaceGenres は movie_genre を genres で置き換える
func (r *gormMovieRepository) ReplaceGenres(ctx context.Context, tx *gorm.DB, movie *model.Movie, genres []model.Genre) error {
	logger := middleware.GetLogger(ctx)
	assoc := tx.WithContext(ctx).Model(movie).Omit("Genres.*").Association("Genres")
	var err error
	if len(genres) == 0 {
		err = assoc.Clear()
	} else {
		err = assoc.Replace(genres)
	}
	if err != nil {
		logger.Error("Error replacing movie genres in DB",
			"error", err,
			"movie_id", movie.ID,
		)
		return fmt.Errorf("gormMovieRepository.ReplaceGenres: %w", err)
	}
	return nil
}

func (r *gormMovieRepository) Delete(ctx context.Context, tx *gorm.DB, movieID uint) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Delete(&model.Movie{}, movieID)
	if result.Error != nil {
		logger.Error("Error deleting movie in DB",
			"error", result.Error,
			"movie_id", movieID,
		)
		return fmt.Errorf("gormMovieRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
