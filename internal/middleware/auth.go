package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"cinepetro_api/internal/config"
	"cinepetro_api/internal/model"
	"cinepetro_api/internal/webutil"

	"github.com/golang-jwt/jwt/v5"
)

// PrincipalResolver はトークンの subject から現在のユーザーを解決する。
// ユーザーが存在しない場合は model.ErrNotFound を返すこと。
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, userID uint) (*model.Principal, error)
}

// JWTAuthMiddleware は Authorization ヘッダーの Bearer トークンを検証するミドルウェア
func JWTAuthMiddleware(cfg *config.Config, resolver PrincipalResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("JWT auth failed: Authorization header missing")
				webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "Cabeçalho Authorization é obrigatório.", "", model.ErrUnauthorized))
				return
			}

			// "Bearer {token}"
			headerParts := strings.SplitN(authHeader, " ", 2)
			if len(headerParts) != 2 || !strings.EqualFold(headerParts[0], "bearer") || headerParts[1] == "" {
				logger.Warn("JWT auth failed: Invalid Authorization header format")
				webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "Formato do cabeçalho Authorization inválido.", "", model.ErrUnauthorized))
				return
			}

			claims := &model.JWTCustomClaims{}
			token, err := jwt.ParseWithClaims(headerParts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(cfg.JWT.SecretKey), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				logger.Warn("JWT auth failed: Invalid token", "error", err)
				msg := "Token inválido."
				if errors.Is(err, jwt.ErrTokenExpired) {
					msg = "Token expirado."
				}
				webutil.HandleError(w, logger, model.NewAppError("INVALID_TOKEN", msg, "", model.ErrUnauthorized))
				return
			}

			subject, err := claims.GetSubject()
			if err != nil || subject == "" {
				logger.Warn("JWT auth failed: Subject (sub) claim missing", "error", err)
				webutil.HandleError(w, logger, model.NewAppError("INVALID_TOKEN", "Token sem identificação de usuário.", "", model.ErrUnauthorized))
				return
			}
			userID, err := strconv.ParseUint(subject, 10, 64)
			if err != nil || userID == 0 {
				logger.Warn("JWT auth failed: Invalid subject (sub) format", "subject", subject)
				webutil.HandleError(w, logger, model.NewAppError("INVALID_TOKEN", "Token com identificação de usuário inválida.", "", model.ErrUnauthorized))
				return
			}

			// トークン発行後に削除されたユーザーを弾くためDBで確認する
			principal, err := resolver.ResolvePrincipal(r.Context(), uint(userID))
			if err != nil {
				if errors.Is(err, model.ErrNotFound) {
					logger.Warn("JWT auth failed: user not found", "user_id", userID)
				} else {
					logger.Error("JWT auth failed: could not resolve user", "user_id", userID, "error", err)
				}
				webutil.HandleError(w, logger, err)
				return
			}

			ctx := WithPrincipal(r.Context(), *principal)
			ctx = WithLogger(ctx, logger.With("user_id", principal.UserID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin は管理者以外を 403 で弾く
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLogger(r.Context())
		principal, err := GetPrincipalFromContext(r.Context())
		if err != nil {
			webutil.HandleError(w, logger, err)
			return
		}
		if !principal.IsAdmin {
			logger.Warn("Admin privileges required", "user_id", principal.UserID)
			webutil.HandleError(w, logger, model.NewAppError("FORBIDDEN", "Acesso restrito a administradores.", "", model.ErrForbidden))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func WithPrincipal(ctx context.Context, p model.Principal) context.Context {
	return context.WithValue(ctx, model.PrincipalKey, p)
}

func GetPrincipalFromContext(ctx context.Context) (model.Principal, error) {
	p, ok := ctx.Value(model.PrincipalKey).(model.Principal)
	if !ok || p.UserID == 0 {
		// ミドルウェアが適用されていない
		return model.Principal{}, model.NewAppError("UNAUTHORIZED", "Usuário não autenticado.", "", model.ErrUnauthorized)
	}
	return p, nil
}
