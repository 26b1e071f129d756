// internal/telemetry/sentry.go
package telemetry

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
)

// InitSentry はSentryを初期化する。dsn が空なら無効のまま nil を返す。
func InitSentry(dsn, environment, release string, tracesSampleRate float64, logger *slog.Logger) error {
	if dsn == "" {
		logger.Info("SENTRY_DSN not set, Sentry disabled")
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		Release:          release,
		TracesSampleRate: tracesSampleRate,
		AttachStacktrace: true,
		BeforeSend: func(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
			return scrubPII(event)
		},
	})
	if err != nil {
		return fmt.Errorf("sentry.Init: %w", err)
	}
	logger.Info("Sentry initialized", "environment", environment, "release", release)
	return nil
}

// CaptureError はエラーをタグ付きで送信する。未初期化なら何もしない。
func CaptureError(err error, tags map[string]string) {
	if err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		sentry.CaptureException(err)
	})
}

func Flush() {
	sentry.Flush(2 * time.Second)
}

// PanicReporter は panic をSentryに送ってから再度 panic させる。
// レスポンスの生成は後ろにある chi の Recoverer に任せる。
func PanicReporter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec != http.ErrAbortHandler {
					hub := sentry.CurrentHub().Clone()
					hub.Scope().SetRequest(r)
					hub.Scope().SetTag("panic", "true")
					err, ok := rec.(error)
					if !ok {
						err = fmt.Errorf("panic: %v", rec)
					}
					hub.CaptureException(err)
					hub.Flush(2 * time.Second)
				}
				panic(rec)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// scrubPII は送信前に個人情報を除去する
func scrubPII(event *sentry.Event) *sentry.Event {
	if event == nil {
		return nil
	}
	if event.User.Email != "" {
		event.User.Email = "[redacted]"
	}
	event.User.IPAddress = ""
	if event.Request != nil {
		for k := range event.Request.Headers {
			switch k {
			case "Authorization", "Cookie":
				event.Request.Headers[k] = "[redacted]"
			}
		}
	}
	return event
}
