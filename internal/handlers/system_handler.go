// internal/handlers/system_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"cinepetro_api/internal/middleware"
	"cinepetro_api/internal/model"
	"cinepetro_api/internal/webutil"

	"gorm.io/gorm"
)

// detailResponse は削除・紐付け系の {"detail": "..."} レスポンス
func detailResponse(msg string) map[string]string {
	return map[string]string{"detail": msg}
}

type SystemHandler struct {
	db      *gorm.DB
	appName string
}

func NewSystemHandler(db *gorm.DB, appName string) *SystemHandler {
	return &SystemHandler{db: db, appName: appName}
}

// Root は GET /
func (h *SystemHandler) Root(w http.ResponseWriter, r *http.Request) {
	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Bem-vindo à API " + h.appName + "!",
	}, middleware.GetLogger(r.Context()))
}

// Health はDBへの疎通を確認する
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(r.Context())
	}
	if err != nil {
		logger.Error("Health check failed: could not ping DB", slog.Any("error", err))
		webutil.HandleError(w, logger, model.NewAppError("SERVICE_UNAVAILABLE", "Banco de dados indisponível.", "", err))
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"}, logger)
}
