// internal/service/progress_service.go
//go:generate mockery --name ProgressService --output ./mocks --outpkg mocks --case=underscore --structname MockProgressService --filename mock_progress_service.go
package service

import (
	"context"
	"errors"
	"math"

	"cinepetro_api/internal/metrics"
	"cinepetro_api/internal/middleware"
	"cinepetro_api/internal/model"
	"cinepetro_api/internal/repository"

	"gorm.io/gorm"
)

type ProgressService interface {
	SaveProgress(ctx context.Context, userID uint, ref model.ContentRef, timeSeconds float64) (*model.WatchProgress, error)
	GetProgress(ctx context.Context, userID uint, ref model.ContentRef) (*model.WatchProgress, error)
	ListContinueWatching(ctx context.Context, userID uint) ([]model.ContentProgressSummary, error)
}

type progressService struct {
	db           *gorm.DB
	progressRepo repository.ProgressRepository
}

func NewProgressService(db *gorm.DB, progressRepo repository.ProgressRepository) ProgressService {
	return &progressService{
		db:           db,
		progressRepo: progressRepo,
	}
}

// SaveProgress は (user, content) の行があれば再生位置を上書きし、なければ作る。
// 同じキーの行が2つできることはない。
func (s *progressService) SaveProgress(ctx context.Context, userID uint, ref model.ContentRef, timeSeconds float64) (*model.WatchProgress, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "content", ref.String())

	if ref.IsZero() {
		return nil, model.NewAppError("INVALID_CONTENT_REF", "É necessário informar movie_id ou episode_id.", "movie_id,episode_id", model.ErrInvalidInput)
	}
	if timeSeconds < 0 || math.IsNaN(timeSeconds) || math.IsInf(timeSeconds, 0) {
		return nil, model.NewAppError("INVALID_TIME", "time_seconds deve ser um número maior ou igual a zero.", "time_seconds", model.ErrInvalidInput)
	}

	kind := string(ref.Kind())
	outcome := metrics.ResultUpdated
	var saved *model.WatchProgress

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.progressRepo.FindByRef(ctx, tx, userID, ref)
		if err == nil {
			if err := s.progressRepo.UpdateTime(ctx, tx, existing, timeSeconds); err != nil {
				return err
			}
			saved = existing
			return nil
		}
		if !errors.Is(err, model.ErrNotFound) {
			return err
		}

		movieID, episodeID := ref.Columns()
		progress := &model.WatchProgress{
			UserID:      userID,
			MovieID:     movieID,
			EpisodeID:   episodeID,
			TimeSeconds: timeSeconds,
		}
		// 一意制約違反は更新としてリトライしない
		if err := s.progressRepo.Create(ctx, tx, progress); err != nil {
			return err
		}
		outcome = metrics.ResultCreated
		saved = progress
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, model.ErrConflict):
			metrics.ProgressSaves.WithLabelValues(kind, metrics.ResultConflict).Inc()
			logger.Warn("Concurrent first write for the same content")
			return nil, model.NewAppError("PROGRESS_CONFLICT", "O progresso deste conteúdo foi alterado simultaneamente. Tente novamente.", "", model.ErrConflict)
		case errors.Is(err, model.ErrInvalidInput):
			metrics.ProgressSaves.WithLabelValues(kind, metrics.ResultError).Inc()
			logger.Warn("Watch progress references unknown content")
			return nil, model.NewAppError("CONTENT_NOT_FOUND", "O conteúdo informado não existe.", kind+"_id", model.ErrInvalidInput)
		}
		metrics.ProgressSaves.WithLabelValues(kind, metrics.ResultError).Inc()
		logger.Error("Failed to save watch progress", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao salvar o progresso.", "", model.ErrInternalServer)
	}

	metrics.ProgressSaves.WithLabelValues(kind, outcome).Inc()
	logger.Info("Watch progress saved", "result", outcome, "time_seconds", timeSeconds)
	return saved, nil
}

// GetProgress は (user, content) の行を1件返す
func (s *progressService) GetProgress(ctx context.Context, userID uint, ref model.ContentRef) (*model.WatchProgress, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "content", ref.String())

	if ref.IsZero() {
		return nil, model.NewAppError("INVALID_CONTENT_REF", "É necessário informar movie_id ou episode_id.", "movie_id,episode_id", model.ErrInvalidInput)
	}

	progress, err := s.progressRepo.FindByRef(ctx, s.db, userID, ref)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("PROGRESS_NOT_FOUND", "Progresso não encontrado.", "", model.ErrNotFound)
		}
		logger.Error("Failed to get watch progress", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao buscar o progresso.", "", model.ErrInternalServer)
	}
	return progress, nil
}

// ListContinueWatching は視聴途中の映画、続けてエピソードを返す。
// 各グループは updated_at の新しい順。
func (s *progressService) ListContinueWatching(ctx context.Context, userID uint) ([]model.ContentProgressSummary, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	movieRows, err := s.progressRepo.FindUnfinishedMovies(ctx, s.db, userID, model.CompletionThreshold)
	if err != nil {
		logger.Error("Failed to query unfinished movies", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao buscar a lista de continuar assistindo.", "", model.ErrInternalServer)
	}
	episodeRows, err := s.progressRepo.FindUnfinishedEpisodes(ctx, s.db, userID, model.CompletionThreshold)
	if err != nil {
		logger.Error("Failed to query unfinished episodes", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao buscar a lista de continuar assistindo.", "", model.ErrInternalServer)
	}

	summaries := make([]model.ContentProgressSummary, 0, len(movieRows)+len(episodeRows))
	for _, row := range movieRows {
		summary, ok := movieSummaryFromRow(row)
		if !ok {
			// 1件の不整合でリスト全体を失敗させない
			logger.Warn("Skipping continue-watching movie row with missing fields", "movie_id", row.MovieID)
			metrics.ContinueWatchingSkipped.WithLabelValues(string(model.ContentKindMovie)).Inc()
			continue
		}
		summaries = append(summaries, summary)
	}
	for _, row := range episodeRows {
		summary, ok := episodeSummaryFromRow(row)
		if !ok {
			logger.Warn("Skipping continue-watching episode row with missing fields", "episode_id", row.EpisodeID)
			metrics.ContinueWatchingSkipped.WithLabelValues(string(model.ContentKindEpisode)).Inc()
			continue
		}
		summaries = append(summaries, summary)
	}

	logger.Debug("Continue-watching list built", "count", len(summaries))
	return summaries, nil
}

func movieSummaryFromRow(row model.MovieProgressRow) (*model.MovieProgressSummary, bool) {
	if row.MovieID == nil || row.Title == nil || row.DurationMinutes == nil {
		return nil, false
	}
	return &model.MovieProgressSummary{
		Type:            model.SummaryTypeMovie,
		MovieID:         *row.MovieID,
		Title:           *row.Title,
		Poster:          row.Poster,
		TimeSeconds:     row.TimeSeconds,
		DurationSeconds: *row.DurationMinutes * 60,
		UpdatedAt:       row.UpdatedAt,
	}, true
}

func episodeSummaryFromRow(row model.EpisodeProgressRow) (*model.EpisodeProgressSummary, bool) {
	if row.EpisodeID == nil || row.SeriesID == nil || row.SeriesTitle == nil || row.Title == nil || row.DurationMinutes == nil {
		return nil, false
	}
	return &model.EpisodeProgressSummary{
		Type:            model.SummaryTypeSeries,
		EpisodeID:       *row.EpisodeID,
		SeriesID:        *row.SeriesID,
		SeriesTitle:     *row.SeriesTitle,
		SeasonNumber:    row.SeasonNumber,
		EpisodeNumber:   row.EpisodeNumber,
		Title:           *row.Title,
		Poster:          row.Poster,
		TimeSeconds:     row.TimeSeconds,
		DurationSeconds: *row.DurationMinutes * 60,
		UpdatedAt:       row.UpdatedAt,
	}, true
}
