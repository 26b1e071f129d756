// internal/service/genre_service.go
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

type GenreService interface {
	CreateGenre(ctx context.Context, req *model.GenreRequest) (*model.Genre, error)
	CreateGenres(ctx context.Context, req *model.GenreBatchRequest) ([]*model.Genre, error)
	GetGenre(ctx context.Context, genreID uint) (*model.Genre, error)
	ListGenres(ctx context.Context) ([]*model.Genre, error)
	UpdateGenre(ctx context.Context, genreID uint, req *model.GenreRequest) (*model.Genre, error)
	DeleteGenre(ctx context.Context, genreID uint) error
}

type genreService struct {
	db        *gorm.DB
	genreRepo repository.GenreRepository
}

func NewGenreService(db *gorm.DB, genreRepo repository.GenreRepository) GenreService {
	return &genreService{
		db:        db,
		genreRepo: genreRepo,
	}
}

func errGenreNotFound() error {
	return model.NewAppError("GENRE_NOT_FOUND", "Gênero não encontrado.", "", model.ErrNotFound)
}

func errDuplicateGenre() error {
	return model.NewAppError("DUPLICATE_GENRE", "Já existe um gênero com este nome.", "name", model.ErrConflict)
}

func (s *genreService) CreateGenre(ctx context.Context, req *model.GenreRequest) (*model.Genre, error) {
	logger := middleware.GetLogger(ctx)
	genre := &model.Genre{Name: strings.TrimSpace(req.Name)}

	if err := s.genreRepo.Create(ctx, s.db, genre); err != nil {
		if errors.Is(err, model.ErrConflict) {
			return nil, errDuplicateGenre()
		}
		logger.Error("Failed to create genre", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao criar o gênero.", "", err)
	}
	logger.Info("Genre created", "genre_id", genre.ID)
	return genre, nil
}

// CreateGenres は全件を1トランザクションで作る。1件でも重複があれば何も作らない。
func (s *genreService) CreateGenres(ctx context.Context, req *model.GenreBatchRequest) ([]*model.Genre, error) {
	logger := middleware.GetLogger(ctx)
	created := make([]*model.Genre, 0, len(req.Genres))

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, g := range req.Genres {
			genre := &model.Genre{Name: strings.TrimSpace(g.Name)}
			if err := s.genreRepo.Create(ctx, tx, genre); err != nil {
				if errors.Is(err, model.ErrConflict) {
					return errDuplicateGenre()
				}
				return model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao criar os gêneros.", "", err)
			}
			created = append(created, genre)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, model.ErrConflict) {
			logger.Error("Failed to create genres in batch", "error", err)
		}
		return nil, err
	}

	logger.Info("Genres created in batch", "count", len(created))
	return created, nil
}

func (s *genreService) GetGenre(ctx context.Context, genreID uint) (*model.Genre, error) {
	logger := middleware.GetLogger(ctx)
	genre, err := s.genreRepo.FindByID(ctx, s.db, genreID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, errGenreNotFound()
		}
		logger.Error("Failed to get genre", "error", err, "genre_id", genreID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Ocorreu um erro interno no servidor.", "", err)
	}
	return genre, nil
}

func (s *genreService) ListGenres(ctx context.Context) ([]*model.Genre, error) {
	logger := middleware.GetLogger(ctx)
	genres, err := s.genreRepo.FindAll(ctx, s.db)
	if err != nil {
		logger.Error("Failed to list genres", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao listar os gêneros.", "", err)
	}
	return genres, nil
}

func (s *genreService) UpdateGenre(ctx context.Context, genreID uint, req *model.GenreRequest) (*model.Genre, error) {
	logger := middleware.GetLogger(ctx).With("genre_id", genreID)
	var updated *model.Genre

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.genreRepo.Update(ctx, tx, genreID, map[string]interface{}{"name": strings.TrimSpace(req.Name)}); err != nil {
			switch {
			case errors.Is(err, model.ErrNotFound):
				return errGenreNotFound()
			case errors.Is(err, model.ErrConflict):
				return errDuplicateGenre()
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao atualizar o gênero.", "", err)
		}
		genre, err := s.genreRepo.FindByID(ctx, tx, genreID)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao atualizar o gênero.", "", err)
		}
		updated = genre
		return nil
	})
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) && !errors.Is(err, model.ErrConflict) {
			logger.Error("Failed to update genre", "error", err)
		}
		return nil, err
	}
	return updated, nil
}

func (s *genreService) DeleteGenre(ctx context.Context, genreID uint) error {
	logger := middleware.GetLogger(ctx).With("genre_id", genreID)
	if err := s.genreRepo.Delete(ctx, s.db, genreID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return errGenreNotFound()
		}
		logger.Error("Failed to delete genre", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao remover o gênero.", "", err)
	}
	logger.Info("Genre deleted")
	return nil
}

// resolveGenres は genre_ids を Genre に解決する。存在しない ID が1つでもあれば 400。
func resolveGenres(ctx context.Context, tx *gorm.DB, genreRepo repository.GenreRepository, ids []uint) ([]model.Genre, error) {
	unique := make([]uint, 0, len(ids))
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	genres, err := genreRepo.FindByIDs(ctx, tx, unique)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Ocorreu um erro interno no servidor.", "", err)
	}
	if len(genres) != len(unique) {
		return nil, model.NewAppError("GENRE_NOT_FOUND", "Um ou mais gêneros informados não existem.", "genre_ids", model.ErrInvalidInput)
	}
	return genres, nil
}
