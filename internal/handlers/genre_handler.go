// internal/handlers/genre_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"cinepetro_api/internal/model"
	"cinepetro_api/internal/service"
	"cinepetro_api/internal/webutil"
)

type GenreHandler struct {
	service service.GenreService
	logger  *slog.Logger
}

func NewGenreHandler(s service.GenreService, logger *slog.Logger) *GenreHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GenreHandler{
		service: s,
		logger:  logger,
	}
}

func (h *GenreHandler) ListGenres(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListGenres"))

	genres, err := h.service.ListGenres(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if genres == nil {
		genres = []*model.Genre{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, genres, logger)
}

func (h *GenreHandler) GetGenre(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetGenre"))

	genreID, err := webutil.URLParamID(r, "genre_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	genre, err := h.service.GetGenre(r.Context(), genreID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, genre, logger)
}

func (h *GenreHandler) CreateGenre(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CreateGenre"))

	var req model.GenreRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid genre request", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	genre, err := h.service.CreateGenre(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusCreated, genre, logger)
}

// CreateGenres は POST /genres/batch
func (h *GenreHandler) CreateGenres(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CreateGenres"))

	var req model.GenreBatchRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid genre batch request", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	genres, err := h.service.CreateGenres(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusCreated, genres, logger)
}

func (h *GenreHandler) UpdateGenre(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "UpdateGenre"))

	genreID, err := webutil.URLParamID(r, "genre_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	var req model.GenreRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid genre request", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	genre, err := h.service.UpdateGenre(r.Context(), genreID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, genre, logger)
}

func (h *GenreHandler) DeleteGenre(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteGenre"))

	genreID, err := webutil.URLParamID(r, "genre_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if err := h.service.DeleteGenre(r.Context(), genreID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, detailResponse("Gênero removido com sucesso."), logger)
}
