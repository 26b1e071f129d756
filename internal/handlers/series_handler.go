// internal/handlers/series_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"cinepetro_api/internal/middleware"
	"cinepetro_api/internal/model"
	"cinepetro_api/internal/service"
	"cinepetro_api/internal/webutil"
)

type SeriesHandler struct {
	service service.SeriesService
	logger  *slog.Logger
}

func NewSeriesHandler(s service.SeriesService, logger *slog.Logger) *SeriesHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SeriesHandler{
		service: s,
		logger:  logger,
	}
}

func (h *SeriesHandler) ListSeries(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListSeries"))

	series, err := h.service.ListSeries(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if series == nil {
		series = []*model.Series{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, series, logger)
}

func (h *SeriesHandler) GetSeries(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetSeries"))

	seriesID, err := webutil.URLParamID(r, "series_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	series, err := h.service.GetSeries(r.Context(), seriesID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, series, logger)
}

// ListEpisodes は GET /series/{series_id}/episodes
func (h *SeriesHandler) ListEpisodes(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListSeriesEpisodes"))

	seriesID, err := webutil.URLParamID(r, "series_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	episodes, err := h.service.ListEpisodes(r.Context(), seriesID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if episodes == nil {
		episodes = []*model.Episode{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, episodes, logger)
}

func (h *SeriesHandler) CreateSeries(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CreateSeries"))

	principal, err := middleware.GetPrincipalFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.CreateSeriesRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid create series request", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	series, err := h.service.CreateSeries(r.Context(), principal.UserID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusCreated, series, logger)
}

func (h *SeriesHandler) UpdateSeries(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "UpdateSeries"))

	seriesID, err := webutil.URLParamID(r, "series_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	var req model.UpdateSeriesRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid update series request", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	series, err := h.service.UpdateSeries(r.Context(), seriesID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, series, logger)
}

func (h *SeriesHandler) DeleteSeries(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteSeries"))

	seriesID, err := webutil.URLParamID(r, "series_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if err := h.service.DeleteSeries(r.Context(), seriesID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, detailResponse("Série removida com sucesso."), logger)
}

// LinkGenre は POST /serie-genero
func (h *SeriesHandler) LinkGenre(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "LinkSeriesGenre"))

	var req model.SerieGeneroRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid serie-genero request", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	if err := h.service.LinkGenre(r.Context(), &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusCreated, detailResponse("Gênero vinculado à série com sucesso."), logger)
}

// UnlinkGenre は DELETE /serie-genero (ボディで対象を指定)
func (h *SeriesHandler) UnlinkGenre(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "UnlinkSeriesGenre"))

	var req model.SerieGeneroRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid serie-genero request", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	if err := h.service.UnlinkGenre(r.Context(), &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, detailResponse("Gênero desvinculado da série com sucesso."), logger)
}
