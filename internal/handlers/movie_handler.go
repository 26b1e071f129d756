// internal/handlers/movie_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"cinepetro_api/internal/middleware"
	"cinepetro_api/internal/model"
	"cinepetro_api/internal/service"
	"cinepetro_api/internal/webutil"
)

type MovieHandler struct {
	service service.MovieService
	logger  *slog.Logger
}

func NewMovieHandler(s service.MovieService, logger *slog.Logger) *MovieHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &MovieHandler{
		service: s,
		logger:  logger,
	}
}

func (h *MovieHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListMovies"))

	movies, err := h.service.ListMovies(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	res := make([]*model.MovieResponse, 0, len(movies))
	for _, m := range movies {
		res = append(res, model.NewMovieResponse(m))
	}
	webutil.RespondWithJSON(w, http.StatusOK, res, logger)
}

func (h *MovieHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetMovie"))

	movieID, err := webutil.URLParamID(r, "movie_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	movie, err := h.service.GetMovie(r.Context(), movieID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, model.NewMovieResponse(movie), logger)
}

func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CreateMovie"))

	principal, err := middleware.GetPrincipalFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.CreateMovieRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid create movie request", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	movie, err := h.service.CreateMovie(r.Context(), principal.UserID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Movie created successfully", slog.Uint64("movie_id", uint64(movie.ID)))
	webutil.RespondWithJSON(w, http.StatusCreated, model.NewMovieResponse(movie), logger)
}

func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "UpdateMovie"))

	movieID, err := webutil.URLParamID(r, "movie_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	var req model.UpdateMovieRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid update movie request", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	movie, err := h.service.UpdateMovie(r.Context(), movieID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, model.NewMovieResponse(movie), logger)
}

func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteMovie"))

	movieID, err := webutil.URLParamID(r, "movie_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if err := h.service.DeleteMovie(r.Context(), movieID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, detailResponse("Filme removido com sucesso."), logger)
}
