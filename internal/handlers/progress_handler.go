// internal/handlers/progress_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"cinepetro_api/internal/middleware"
	"cinepetro_api/internal/model"
	"cinepetro_api/internal/service"
	"cinepetro_api/internal/webutil"
)

type ProgressHandler struct {
	service service.ProgressService
	logger  *slog.Logger
}

func NewProgressHandler(s service.ProgressService, logger *slog.Logger) *ProgressHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressHandler{
		service: s,
		logger:  logger,
	}
}

// SaveProgress は POST /progress/save
func (h *ProgressHandler) SaveProgress(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SaveProgress"))

	principal, err := middleware.GetPrincipalFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With(slog.Uint64("user_id", uint64(principal.UserID)))

	var req model.SaveProgressRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid save progress request", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	ref, err := model.NewContentRef(req.MovieID, req.EpisodeID)
	if err != nil {
		logger.Warn("Invalid content reference", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	progress, err := h.service.SaveProgress(r.Context(), principal.UserID, ref, *req.TimeSeconds)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, progress, logger)
}

// GetProgress は GET /progress/get?movie_id=|episode_id=
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetProgress"))

	principal, err := middleware.GetPrincipalFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	movieID, err := webutil.QueryOptionalID(r, "movie_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	episodeID, err := webutil.QueryOptionalID(r, "episode_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	ref, err := model.NewContentRef(movieID, episodeID)
	if err != nil {
		logger.Warn("Invalid content reference", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	progress, err := h.service.GetProgress(r.Context(), principal.UserID, ref)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, progress, logger)
}

// ContinueWatching は GET /progress/continuar
func (h *ProgressHandler) ContinueWatching(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ContinueWatching"))

	principal, err := middleware.GetPrincipalFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	items, err := h.service.ListContinueWatching(r.Context(), principal.UserID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if items == nil {
		items = []model.ContentProgressSummary{}
	}

	logger.Info("Continue-watching listed", slog.Int("count", len(items)))
	webutil.RespondWithJSON(w, http.StatusOK, items, logger)
}
