// internal/service/episode_service.go
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

type EpisodeService interface {
	CreateEpisode(ctx context.Context, createdBy uint, req *model.CreateEpisodeRequest) (*model.Episode, error)
	GetEpisode(ctx context.Context, episodeID uint) (*model.Episode, error)
	ListEpisodes(ctx context.Context) ([]*model.Episode, error)
	UpdateEpisode(ctx context.Context, episodeID uint, req *model.UpdateEpisodeRequest) (*model.Episode, error)
	DeleteEpisode(ctx context.Context, episodeID uint) error
}

type episodeService struct {
	db          *gorm.DB
	episodeRepo repository.EpisodeRepository
	seriesRepo  repository.SeriesRepository
}

func NewEpisodeService(db *gorm.DB, episodeRepo repository.EpisodeRepository, seriesRepo repository.SeriesRepository) EpisodeService {
	return &episodeService{
		db:          db,
		episodeRepo: episodeRepo,
		seriesRepo:  seriesRepo,
	}
}

func errEpisodeNotFound() error {
	return model.NewAppError("EPISODE_NOT_FOUND", "Episódio não encontrado.", "", model.ErrNotFound)
}

func errDuplicateEpisode() error {
	return model.NewAppError("DUPLICATE_EPISODE", "Já existe um episódio nesta temporada com este número.", "episode_number", model.ErrConflict)
}

func (s *episodeService) CreateEpisode(ctx context.Context, createdBy uint, req *model.CreateEpisodeRequest) (*model.Episode, error) {
	logger := middleware.GetLogger(ctx).With("series_id", req.SeriesID)
	var created *model.Episode

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 論理削除済みシリーズは FK では弾けない
		if _, err := s.seriesRepo.FindByID(ctx, tx, req.SeriesID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("SERIES_NOT_FOUND", "A série informada não existe.", "series_id", model.ErrInvalidInput)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Ocorreu um erro interno no servidor.", "", err)
		}

		episode := &model.Episode{
			SeriesID:      req.SeriesID,
			Title:         strings.TrimSpace(req.Title),
			Description:   req.Description,
			SeasonNumber:  req.SeasonNumber,
			EpisodeNumber: req.EpisodeNumber,
			Duration:      req.Duration,
			CreatedBy:     creatorRef(createdBy),
		}
		if err := s.episodeRepo.Create(ctx, tx, episode); err != nil {
			switch {
			case errors.Is(err, model.ErrConflict):
				return errDuplicateEpisode()
			case errors.Is(err, model.ErrInvalidInput):
				return model.NewAppError("INVALID_REFERENCE", "Referência inválida ao criar o episódio.", "", model.ErrInvalidInput)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao criar o episódio.", "", err)
		}
		created = episode
		return nil
	})
	if err != nil {
		if !errors.Is(err, model.ErrInvalidInput) && !errors.Is(err, model.ErrConflict) {
			logger.Error("Failed to create episode", "error", err)
		}
		return nil, err
	}

	logger.Info("Episode created", "episode_id", created.ID, "created_by", createdBy)
	return created, nil
}

func (s *episodeService) GetEpisode(ctx context.Context, episodeID uint) (*model.Episode, error) {
	logger := middleware.GetLogger(ctx)
	episode, err := s.episodeRepo.FindByID(ctx, s.db, episodeID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, errEpisodeNotFound()
		}
		logger.Error("Failed to get episode", "error", err, "episode_id", episodeID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Ocorreu um erro interno no servidor.", "", err)
	}
	return episode, nil
}

func (s *episodeService) ListEpisodes(ctx context.Context) ([]*model.Episode, error) {
	logger := middleware.GetLogger(ctx)
	episodes, err := s.episodeRepo.FindAll(ctx, s.db)
	if err != nil {
		logger.Error("Failed to list episodes", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao listar os episódios.", "", err)
	}
	return episodes, nil
}

func (s *episodeService) UpdateEpisode(ctx context.Context, episodeID uint, req *model.UpdateEpisodeRequest) (*model.Episode, error) {
	logger := middleware.GetLogger(ctx).With("episode_id", episodeID)
	var updated *model.Episode

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.episodeRepo.FindByID(ctx, tx, episodeID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return errEpisodeNotFound()
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao atualizar o episódio.", "", err)
		}

		updates := make(map[string]interface{})
		if req.Title != nil {
			updates["title"] = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.SeasonNumber != nil {
			updates["season_number"] = *req.SeasonNumber
		}
		if req.EpisodeNumber != nil {
			updates["episode_number"] = *req.EpisodeNumber
		}
		if req.Duration != nil {
			updates["duration"] = *req.Duration
		}
		if err := s.episodeRepo.Update(ctx, tx, episodeID, updates); err != nil {
			if errors.Is(err, model.ErrConflict) {
				return errDuplicateEpisode()
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao atualizar o episódio.", "", err)
		}

		episode, err := s.episodeRepo.FindByID(ctx, tx, episodeID)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao atualizar o episódio.", "", err)
		}
		updated = episode
		return nil
	})
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) && !errors.Is(err, model.ErrConflict) {
			logger.Error("Failed to update episode", "error", err)
		}
		return nil, err
	}

	logger.Info("Episode updated")
	return updated, nil
}

func (s *episodeService) DeleteEpisode(ctx context.Context, episodeID uint) error {
	logger := middleware.GetLogger(ctx).With("episode_id", episodeID)
	if err := s.episodeRepo.Delete(ctx, s.db, episodeID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return errEpisodeNotFound()
		}
		logger.Error("Failed to delete episode", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao remover o episódio.", "", err)
	}
	logger.Info("Episode deleted")
	return nil
}
