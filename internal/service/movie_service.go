// internal/service/movie_service.go
//go:generate mockery --name MovieService --output ./mocks --outpkg mocks --case=underscore --structname MockMovieService --filename mock_movie_service.go
package service

import (
	"context"
	"errors"
	"strings"

	"cinepetro_api/internal/middleware"
	"cinepetro_api/internal/model"
	"cinepetro_api/internal/repository"

	"gorm.io/gorm"
)

type MovieService interface {
	CreateMovie(ctx context.Context, createdBy uint, req *model.CreateMovieRequest) (*model.Movie, error)
	GetMovie(ctx context.Context, movieID uint) (*model.Movie, error)
	ListMovies(ctx context.Context) ([]*model.Movie, error)
	UpdateMovie(ctx context.Context, movieID uint, req *model.UpdateMovieRequest) (*model.Movie, error)
	DeleteMovie(ctx context.Context, movieID uint) error
}

type movieService struct {
	db        *gorm.DB
	movieRepo repository.MovieRepository
	genreRepo repository.GenreRepository
}

func NewMovieService(db *gorm.DB, movieRepo repository.MovieRepository, genreRepo repository.GenreRepository) MovieService {
	return &movieService{
		db:        db,
		movieRepo: movieRepo,
		genreRepo: genreRepo,
	}
}

func errMovieNotFound() error {
	return model.NewAppError("MOVIE_NOT_FOUND", "Filme não encontrado.", "", model.ErrNotFound)
}

func (s *movieService) CreateMovie(ctx context.Context, createdBy uint, req *model.CreateMovieRequest) (*model.Movie, error) {
	logger := middleware.GetLogger(ctx)
	var created *model.Movie

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		movie := &model.Movie{
			Title:       strings.TrimSpace(req.Title),
			Description: req.Description,
			Year:        req.Year,
			Duration:    req.Duration,
			Poster:      req.Poster,
			CreatedBy:   creatorRef(createdBy),
		}
		if len(req.GenreIDs) > 0 {
			genres, err := resolveGenres(ctx, tx, s.genreRepo, req.GenreIDs)
			if err != nil {
				return err
			}
			movie.Genres = genres
		}

		if err := s.movieRepo.Create(ctx, tx, movie); err != nil {
			if errors.Is(err, model.ErrInvalidInput) {
				return model.NewAppError("INVALID_REFERENCE", "Referência inválida ao criar o filme.", "", model.ErrInvalidInput)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao criar o filme.", "", err)
		}

		reloaded, err := s.movieRepo.FindByID(ctx, tx, movie.ID)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao criar o filme.", "", err)
		}
		created = reloaded
		return nil
	})
	if err != nil {
		if !errors.Is(err, model.ErrInvalidInput) {
			logger.Error("Failed to create movie", "error", err)
		}
		return nil, err
	}

	logger.Info("Movie created", "movie_id", created.ID, "created_by", createdBy)
	return created, nil
}

func (s *movieService) GetMovie(ctx context.Context, movieID uint) (*model.Movie, error) {
	logger := middleware.GetLogger(ctx)
	movie, err := s.movieRepo.FindByID(ctx, s.db, movieID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, errMovieNotFound()
		}
		logger.Error("Failed to get movie", "error", err, "movie_id", movieID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Ocorreu um erro interno no servidor.", "", err)
	}
	return movie, nil
}

func (s *movieService) ListMovies(ctx context.Context) ([]*model.Movie, error) {
	logger := middleware.GetLogger(ctx)
	movies, err := s.movieRepo.FindAll(ctx, s.db)
	if err != nil {
		logger.Error("Failed to list movies", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao listar os filmes.", "", err)
	}
	return movies, nil
}

// UpdateMovie は指定された項目だけを更新する。genre_ids があれば置き換え。
func (s *movieService) UpdateMovie(ctx context.Context, movieID uint, req *model.UpdateMovieRequest) (*model.Movie, error) {
	logger := middleware.GetLogger(ctx).With("movie_id", movieID)
	var updated *model.Movie

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		movie, err := s.movieRepo.FindByID(ctx, tx, movieID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return errMovieNotFound()
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao atualizar o filme.", "", err)
		}

		updates := make(map[string]interface{})
		if req.Title != nil {
			updates["title"] = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Year != nil {
			updates["year"] = *req.Year
		}
		if req.Duration != nil {
			updates["duration"] = *req.Duration
		}
		if req.Poster != nil {
			updates["poster"] = *req.Poster
		}
		if err := s.movieRepo.Update(ctx, tx, movieID, updates); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao atualizar o filme.", "", err)
		}

		if req.GenreIDs != nil {
			genres := []model.Genre{}
			if len(*req.GenreIDs) > 0 {
				genres, err = resolveGenres(ctx, tx, s.genreRepo, *req.GenreIDs)
				if err != nil {
					return err
				}
			}
			if err := s.movieRepo.ReplaceGenres(ctx, tx, movie, genres); err != nil {
				return model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao atualizar os gêneros do filme.", "", err)
			}
		}

		reloaded, err := s.movieRepo.FindByID(ctx, tx, movieID)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao atualizar o filme.", "", err)
		}
		updated = reloaded
		return nil
	})
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) && !errors.Is(err, model.ErrInvalidInput) {
			logger.Error("Failed to update movie", "error", err)
		}
		return nil, err
	}

	logger.Info("Movie updated")
	return updated, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, movieID uint) error {
	logger := middleware.GetLogger(ctx).With("movie_id", movieID)
	if err := s.movieRepo.Delete(ctx, s.db, movieID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return errMovieNotFound()
		}
		logger.Error("Failed to delete movie", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao remover o filme.", "", err)
	}
	logger.Info("Movie deleted")
	return nil
}

// creatorRef は作成者ID 0 (シード投入など) を NULL として扱う
func creatorRef(userID uint) *uint {
	if userID == 0 {
		return nil
	}
	return &userID
}
