// internal/service/series_service.go
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

type SeriesService interface {
	CreateSeries(ctx context.Context, createdBy uint, req *model.CreateSeriesRequest) (*model.Series, error)
	GetSeries(ctx context.Context, seriesID uint) (*model.Series, error)
	ListSeries(ctx context.Context) ([]*model.Series, error)
	ListEpisodes(ctx context.Context, seriesID uint) ([]*model.Episode, error)
	UpdateSeries(ctx context.Context, seriesID uint, req *model.UpdateSeriesRequest) (*model.Series, error)
	DeleteSeries(ctx context.Context, seriesID uint) error
	LinkGenre(ctx context.Context, req *model.SerieGeneroRequest) error
	UnlinkGenre(ctx context.Context, req *model.SerieGeneroRequest) error
}

type seriesService struct {
	db          *gorm.DB
	seriesRepo  repository.SeriesRepository
	genreRepo   repository.GenreRepository
	episodeRepo repository.EpisodeRepository
}

func NewSeriesService(db *gorm.DB, seriesRepo repository.SeriesRepository, genreRepo repository.GenreRepository, episodeRepo repository.EpisodeRepository) SeriesService {
	return &seriesService{
		db:          db,
		seriesRepo:  seriesRepo,
		genreRepo:   genreRepo,
		episodeRepo: episodeRepo,
	}
}

func errSeriesNotFound() error {
	return model.NewAppError("SERIES_NOT_FOUND", "Série não encontrada.", "", model.ErrNotFound)
}

func (s *seriesService) CreateSeries(ctx context.Context, createdBy uint, req *model.CreateSeriesRequest) (*model.Series, error) {
	logger := middleware.GetLogger(ctx)
	var created *model.Series

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		series := &model.Series{
			Title:       strings.TrimSpace(req.Title),
			Description: req.Description,
			StartYear:   req.StartYear,
			EndYear:     req.EndYear,
			Poster:      req.Poster,
			CreatedBy:   creatorRef(createdBy),
		}
		if len(req.GenreIDs) > 0 {
			genres, err := resolveGenres(ctx, tx, s.genreRepo, req.GenreIDs)
			if err != nil {
				return err
			}
			series.Genres = genres
		}

		if err := s.seriesRepo.Create(ctx, tx, series); err != nil {
			if errors.Is(err, model.ErrInvalidInput) {
				return model.NewAppError("INVALID_REFERENCE", "Referência inválida ao criar a série.", "", model.ErrInvalidInput)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao criar a série.", "", err)
		}

		reloaded, err := s.seriesRepo.FindByID(ctx, tx, series.ID)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao criar a série.", "", err)
		}
		created = reloaded
		return nil
	})
	if err != nil {
		if !errors.Is(err, model.ErrInvalidInput) {
			logger.Error("Failed to create series", "error", err)
		}
		return nil, err
	}

	logger.Info("Series created", "series_id", created.ID, "created_by", createdBy)
	return created, nil
}

func (s *seriesService) GetSeries(ctx context.Context, seriesID uint) (*model.Series, error) {
	logger := middleware.GetLogger(ctx)
	series, err := s.seriesRepo.FindByID(ctx, s.db, seriesID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, errSeriesNotFound()
		}
		logger.Error("Failed to get series", "error", err, "series_id", seriesID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Ocorreu um erro interno no servidor.", "", err)
	}
	return series, nil
}

func (s *seriesService) ListSeries(ctx context.Context) ([]*model.Series, error) {
	logger := middleware.GetLogger(ctx)
	series, err := s.seriesRepo.FindAll(ctx, s.db)
	if err != nil {
		logger.Error("Failed to list series", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao listar as séries.", "", err)
	}
	return series, nil
}

// ListEpisodes はシリーズのエピソードをシーズン→話数の順で返す
func (s *seriesService) ListEpisodes(ctx context.Context, seriesID uint) ([]*model.Episode, error) {
	logger := middleware.GetLogger(ctx).With("series_id", seriesID)
	if _, err := s.seriesRepo.FindByID(ctx, s.db, seriesID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, errSeriesNotFound()
		}
		logger.Error("Failed to get series", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Ocorreu um erro interno no servidor.", "", err)
	}

	episodes, err := s.episodeRepo.FindBySeries(ctx, s.db, seriesID)
	if err != nil {
		logger.Error("Failed to list episodes of series", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao listar os episódios.", "", err)
	}
	return episodes, nil
}

func (s *seriesService) UpdateSeries(ctx context.Context, seriesID uint, req *model.UpdateSeriesRequest) (*model.Series, error) {
	logger := middleware.GetLogger(ctx).With("series_id", seriesID)
	var updated *model.Series

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		series, err := s.seriesRepo.FindByID(ctx, tx, seriesID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return errSeriesNotFound()
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao atualizar a série.", "", err)
		}

		updates := make(map[string]interface{})
		if req.Title != nil {
			updates["title"] = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.StartYear != nil {
			updates["start_year"] = *req.StartYear
		}
		if req.EndYear != nil {
			updates["end_year"] = *req.EndYear
		}
		if req.Poster != nil {
			updates["poster"] = *req.Poster
		}
		if err := s.seriesRepo.Update(ctx, tx, seriesID, updates); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao atualizar a série.", "", err)
		}

		if req.GenreIDs != nil {
			genres := []model.Genre{}
			if len(*req.GenreIDs) > 0 {
				genres, err = resolveGenres(ctx, tx, s.genreRepo, *req.GenreIDs)
				if err != nil {
					return err
				}
			}
			if err := s.seriesRepo.ReplaceGenres(ctx, tx, series, genres); err != nil {
				return model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao atualizar os gêneros da série.", "", err)
			}
		}

		reloaded, err := s.seriesRepo.FindByID(ctx, tx, seriesID)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao atualizar a série.", "", err)
		}
		updated = reloaded
		return nil
	})
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) && !errors.Is(err, model.ErrInvalidInput) {
			logger.Error("Failed to update series", "error", err)
		}
		return nil, err
	}

	logger.Info("Series updated")
	return updated, nil
}

func (s *seriesService) DeleteSeries(ctx context.Context, seriesID uint) error {
	logger := middleware.GetLogger(ctx).With("series_id", seriesID)
	if err := s.seriesRepo.Delete(ctx, s.db, seriesID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return errSeriesNotFound()
		}
		logger.Error("Failed to delete series", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao remover a série.", "", err)
	}
	logger.Info("Series deleted")
	return nil
}

// LinkGenre はシリーズとジャンルを紐付ける。
// 論理削除済みのシリーズ/ジャンルは FK では弾けないので先に存在確認する。
func (s *seriesService) LinkGenre(ctx context.Context, req *model.SerieGeneroRequest) error {
	logger := middleware.GetLogger(ctx).With("series_id", req.SerieID, "genre_id", req.GeneroID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.ensureSeriesAndGenre(ctx, tx, req); err != nil {
			return err
		}
		link := &model.SerieGenre{SerieID: req.SerieID, GenreID: req.GeneroID}
		if err := s.seriesRepo.LinkGenre(ctx, tx, link); err != nil {
			switch {
			case errors.Is(err, model.ErrConflict):
				return model.NewAppError("LINK_ALREADY_EXISTS", "Este gênero já está vinculado à série.", "", model.ErrConflict)
			case errors.Is(err, model.ErrNotFound):
				return model.NewAppError("LINK_TARGET_NOT_FOUND", "Série ou gênero não encontrado.", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao vincular o gênero à série.", "", err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) && !errors.Is(err, model.ErrConflict) {
			logger.Error("Failed to link genre to series", "error", err)
		}
		return err
	}

	logger.Info("Genre linked to series")
	return nil
}

func (s *seriesService) UnlinkGenre(ctx context.Context, req *model.SerieGeneroRequest) error {
	logger := middleware.GetLogger(ctx).With("series_id", req.SerieID, "genre_id", req.GeneroID)

	link := &model.SerieGenre{SerieID: req.SerieID, GenreID: req.GeneroID}
	if err := s.seriesRepo.UnlinkGenre(ctx, s.db, link); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("LINK_NOT_FOUND", "Vínculo entre série e gênero não encontrado.", "", model.ErrNotFound)
		}
		logger.Error("Failed to unlink genre from series", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao desvincular o gênero da série.", "", err)
	}

	logger.Info("Genre unlinked from series")
	return nil
}

func (s *seriesService) ensureSeriesAndGenre(ctx context.Context, tx *gorm.DB, req *model.SerieGeneroRequest) error {
	if _, err := s.seriesRepo.FindByID(ctx, tx, req.SerieID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return errSeriesNotFound()
		}
		return model.NewAppError("INTERNAL_SERVER_ERROR", "Ocorreu um erro interno no servidor.", "", err)
	}
	if _, err := s.genreRepo.FindByID(ctx, tx, req.GeneroID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return errGenreNotFound()
		}
		return model.NewAppError("INTERNAL_SERVER_ERROR", "Ocorreu um erro interno no servidor.", "", err)
	}
	return nil
}
