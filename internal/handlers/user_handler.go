// internal/handlers/user_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"cinepetro_api/internal/middleware"
	"cinepetro_api/internal/model"
	"cinepetro_api/internal/service"
	"cinepetro_api/internal/webutil"
)

type UserHandler struct {
	service service.UserService
	logger  *slog.Logger
}

func NewUserHandler(s service.UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		service: s,
		logger:  logger,
	}
}

func errUserForbidden() error {
	return model.NewAppError("FORBIDDEN", "Você não tem permissão para acessar este usuário.", "", model.ErrForbidden)
}

// CreateUser は公開の新規登録
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CreateUser"))

	var req model.CreateUserRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid registration request", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	user, err := h.service.CreateUser(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("User registered successfully", slog.Uint64("user_id", uint64(user.ID)))
	webutil.RespondWithJSON(w, http.StatusCreated, model.NewUserResponse(user), logger)
}

// ListUsers は管理者専用 (RequireAdmin の後ろで使う)
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListUsers"))

	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	res := make([]*model.UserResponse, 0, len(users))
	for _, u := range users {
		res = append(res, model.NewUserResponse(u))
	}
	webutil.RespondWithJSON(w, http.StatusOK, res, logger)
}

// GetMe はログイン中のユーザー自身を返す
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetMe"))

	principal, err := middleware.GetPrincipalFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	user, err := h.service.GetUser(r.Context(), principal.UserID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, model.NewUserResponse(user), logger)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetUser"))

	targetID, ok := h.authorizeTarget(w, r, logger)
	if !ok {
		return
	}

	user, err := h.service.GetUser(r.Context(), targetID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, model.NewUserResponse(user), logger)
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "UpdateUser"))

	targetID, ok := h.authorizeTarget(w, r, logger)
	if !ok {
		return
	}

	var req model.UpdateUserRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid update user request", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	// is_admin を変更できるのは管理者のみ
	principal, _ := middleware.GetPrincipalFromContext(r.Context())
	if req.IsAdmin != nil && !principal.IsAdmin {
		logger.Warn("Non-admin attempted to change is_admin", slog.Uint64("user_id", uint64(principal.UserID)))
		webutil.HandleError(w, logger, model.NewAppError("FORBIDDEN", "Somente administradores podem alterar o campo is_admin.", "is_admin", model.ErrForbidden))
		return
	}

	user, err := h.service.UpdateUser(r.Context(), targetID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, model.NewUserResponse(user), logger)
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteUser"))

	targetID, ok := h.authorizeTarget(w, r, logger)
	if !ok {
		return
	}

	if err := h.service.DeleteUser(r.Context(), targetID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, detailResponse("Usuário removido com sucesso."), logger)
}

// authorizeTarget は {user_id} を読み、本人か管理者でなければ 403 を返す
func (h *UserHandler) authorizeTarget(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uint, bool) {
	principal, err := middleware.GetPrincipalFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return 0, false
	}
	targetID, err := webutil.URLParamID(r, "user_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return 0, false
	}
	if !principal.CanAccessUser(targetID) {
		logger.Warn("Access to another user denied",
			slog.Uint64("user_id", uint64(principal.UserID)),
			slog.Uint64("target_user_id", uint64(targetID)),
		)
		webutil.HandleError(w, logger, errUserForbidden())
		return 0, false
	}
	return targetID, true
}
