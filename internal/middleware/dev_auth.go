// internal/middleware/dev_auth.go
package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"cinepetro_api/internal/model"
	"cinepetro_api/internal/webutil"
)

// DevUserContextMiddleware は開発・テスト用のミドルウェアです。
// X-User-ID ヘッダーのIDをそのまま認証済みユーザーとして扱います (DB確認なし)。
// X-User-Admin: true で管理者になります。
func DevUserContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLogger(r.Context())

		raw := r.Header.Get("X-User-ID")
		if raw == "" {
			logger.Warn("[DEV AUTH] Failed: X-User-ID header missing")
			webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "[DEV] Cabeçalho X-User-ID ausente.", "", model.ErrUnauthorized))
			return
		}
		userID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || userID == 0 {
			logger.Warn("[DEV AUTH] Failed: Invalid X-User-ID format", "value", raw)
			webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "[DEV] X-User-ID inválido.", "", model.ErrUnauthorized))
			return
		}

		principal := model.Principal{
			UserID:  uint(userID),
			IsAdmin: strings.EqualFold(r.Header.Get("X-User-Admin"), "true"),
		}
		logger.Debug("[DEV AUTH] principal set to context (no validation)", "user_id", principal.UserID, "is_admin", principal.IsAdmin)

		ctx := WithPrincipal(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
