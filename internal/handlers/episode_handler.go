// internal/handlers/episode_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"cinepetro_api/internal/middleware"
	"cinepetro_api/internal/model"
	"cinepetro_api/internal/service"
	"cinepetro_api/internal/webutil"
)

type EpisodeHandler struct {
	service service.EpisodeService
	logger  *slog.Logger
}

func NewEpisodeHandler(s service.EpisodeService, logger *slog.Logger) *EpisodeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &EpisodeHandler{
		service: s,
		logger:  logger,
	}
}

func (h *EpisodeHandler) ListEpisodes(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListEpisodes"))

	episodes, err := h.service.ListEpisodes(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if episodes == nil {
		episodes = []*model.Episode{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, episodes, logger)
}

func (h *EpisodeHandler) GetEpisode(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetEpisode"))

	episodeID, err := webutil.URLParamID(r, "episode_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	episode, err := h.service.GetEpisode(r.Context(), episodeID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, episode, logger)
}

func (h *EpisodeHandler) CreateEpisode(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CreateEpisode"))

	principal, err := middleware.GetPrincipalFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.CreateEpisodeRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid create episode request", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	episode, err := h.service.CreateEpisode(r.Context(), principal.UserID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusCreated, episode, logger)
}

func (h *EpisodeHandler) UpdateEpisode(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "UpdateEpisode"))

	episodeID, err := webutil.URLParamID(r, "episode_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	var req model.UpdateEpisodeRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid update episode request", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	episode, err := h.service.UpdateEpisode(r.Context(), episodeID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, episode, logger)
}

func (h *EpisodeHandler) DeleteEpisode(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteEpisode"))

	episodeID, err := webutil.URLParamID(r, "episode_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if err := h.service.DeleteEpisode(r.Context(), episodeID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, detailResponse("Episódio removido com sucesso."), logger)
}
