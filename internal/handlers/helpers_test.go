// helpers_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"cinepetro_api/internal/middleware"
	"cinepetro_api/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// httpRequestDetails はHTTPリクエストの送信に必要な情報をまとめます。
type httpRequestDetails struct {
	Method  string
	Path    string
	Body    interface{}
	Headers map[string]string
}

// devRouter は X-User-ID ヘッダーで認証するテスト用ルーター
func devRouter(register func(r chi.Router)) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.LoggingMiddleware(discardLogger))
	r.Group(func(r chi.Router) {
		r.Use(middleware.DevUserContextMiddleware)
		register(r)
	})
	return r
}

// asUser は DevUserContextMiddleware 用のヘッダー
func asUser(userID uint, admin bool) map[string]string {
	h := map[string]string{"X-User-ID": strconv.FormatUint(uint64(userID), 10)}
	if admin {
		h["X-User-Admin"] = "true"
	}
	return h
}

func newRequest(t *testing.T, details httpRequestDetails) *http.Request {
	t.Helper()

	var body io.Reader
	if details.Body != nil {
		if raw, ok := details.Body.(string); ok {
			body = strings.NewReader(raw)
		} else {
			b, err := json.Marshal(details.Body)
			require.NoError(t, err, "Failed to marshal request body")
			body = bytes.NewBuffer(b)
		}
	}

	req := httptest.NewRequest(details.Method, details.Path, body)
	if details.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range details.Headers {
		req.Header.Set(k, v)
	}
	return req
}

// serve はルーターにリクエストを流してレコーダーを返す
func serve(t *testing.T, h http.Handler, details httpRequestDetails) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, newRequest(t, details))
	return rr
}

// assertErrorCode はエラーレスポンスの code を検証する
func assertErrorCode(t *testing.T, rr *httptest.ResponseRecorder, wantStatus int, wantCode string) {
	t.Helper()
	assert.Equal(t, wantStatus, rr.Code, "body: %s", rr.Body.String())
	var errResp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errResp), "body: %s", rr.Body.String())
	if wantCode != "" {
		assert.Equal(t, wantCode, errResp.Error.Code)
	}
	assert.NotEmpty(t, errResp.Error.Message)
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), dst), "body: %s", rr.Body.String())
}

func uintPtr(v uint) *uint { return &v }

func floatPtr(v float64) *float64 { return &v }
