// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "cinepetro-api"
	AppVersion = "1.3.0"
)

// デフォルト設定値
const (
	DefaultServerPort       = ":8080"
	DefaultLogLevel         = "info"
	DefaultDatabaseDriver   = "postgres"
	DefaultAccessTokenTTL   = 60 * time.Minute
	DefaultMailerType       = "log"
	DefaultSMTPPort         = 587
	DefaultSentryEnv        = "development"
	DefaultTracesSampleRate = 0.2
)

// CORS のデフォルト (元のAPIは全オリジン許可)
var (
	DefaultAllowedOrigins = []string{"*"}
	DefaultAllowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	DefaultAllowedHeaders = []string{"Accept", "Authorization", "Content-Type", "X-User-ID", "X-User-Admin"}
)
