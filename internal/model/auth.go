package model

import (
	"github.com/golang-jwt/jwt/v5"
)

type ContextKey string

const (
	PrincipalKey ContextKey = "principal"
)

// Principal はリクエストを行っている認証済みユーザー
type Principal struct {
	UserID  uint
	Email   string
	IsAdmin bool
}

// CanAccessUser は本人または管理者かどうか
func (p Principal) CanAccessUser(userID uint) bool {
	return p.IsAdmin || p.UserID == userID
}

// LoginRequest はログインAPIのリクエストボディ
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse はログイン成功時のレスポンス
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      uint   `json:"user_id"`
	IsAdmin     bool   `json:"is_admin"`
	Name        string `json:"name"`
	Email       string `json:"email"`
}

// JWTCustomClaims はJWTに含めるカスタムクレーム
type JWTCustomClaims struct {
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}
