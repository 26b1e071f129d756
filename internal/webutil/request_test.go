package webutil_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cinepetro_api/internal/model"
	"cinepetro_api/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appErrorCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *model.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.Detail.Code
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{name: "正常系", body: `{"time_seconds": 12.5, "movie_id": 3}`},
		{name: "正常系: time_seconds=0", body: `{"time_seconds": 0, "episode_id": 3}`},
		{name: "異常系: 壊れたJSON", body: `{"time_seconds":`, wantCode: "INVALID_REQUEST_BODY"},
		{name: "異常系: 未知のフィールド", body: `{"time_seconds": 1, "serie_id": 1}`, wantCode: "INVALID_REQUEST_BODY"},
		{name: "異常系: 負の time_seconds", body: `{"time_seconds": -1, "movie_id": 3}`, wantCode: "VALIDATION_ERROR"},
		{name: "異常系: time_seconds 無し", body: `{"movie_id": 3}`, wantCode: "VALIDATION_ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			var dst model.SaveProgressRequest

			err := webutil.DecodeAndValidate(req, &dst)

			if tc.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, model.ErrInvalidInput)
			assert.Equal(t, tc.wantCode, appErrorCode(t, err))
		})
	}
}

func TestValidateStruct_PortugueseMessage(t *testing.T) {
	err := webutil.ValidateStruct(&model.CreateUserRequest{Name: "Ana", Email: "nao-e-email", Password: "senha-segura"})

	var appErr *model.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Detail.Code)
	assert.Equal(t, "email", appErr.Detail.Field)
	assert.Contains(t, appErr.Detail.Message, "e-mail")
}

func TestURLParamID(t *testing.T) {
	tests := []struct {
		raw     string
		want    uint
		wantErr bool
	}{
		{raw: "15", want: 15},
		{raw: "0", wantErr: true},
		{raw: "-1", wantErr: true},
		{raw: "abc", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			var got uint
			var gotErr error
			r := chi.NewRouter()
			r.Get("/movies/{movie_id}", func(w http.ResponseWriter, r *http.Request) {
				got, gotErr = webutil.URLParamID(r, "movie_id")
			})
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/movies/"+tc.raw, nil))

			if tc.wantErr {
				assert.Equal(t, "INVALID_URL_PARAM", appErrorCode(t, gotErr))
				return
			}
			require.NoError(t, gotErr)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestQueryOptionalID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?movie_id=7&episode_id=x&empty=", nil)

	got, err := webutil.QueryOptionalID(req, "movie_id")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, uint(7), *got)

	got, err = webutil.QueryOptionalID(req, "empty")
	assert.NoError(t, err)
	assert.Nil(t, got)

	got, err = webutil.QueryOptionalID(req, "missing")
	assert.NoError(t, err)
	assert.Nil(t, got)

	_, err = webutil.QueryOptionalID(req, "episode_id")
	assert.Equal(t, "INVALID_QUERY_PARAM", appErrorCode(t, err))
}

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: model.ErrNotFound, want: http.StatusNotFound},
		{err: model.NewAppError("X", "x", "", model.ErrInvalidInput), want: http.StatusBadRequest},
		{err: fmt.Errorf("wrap: %w", model.ErrConflict), want: http.StatusConflict},
		{err: model.ErrUnauthorized, want: http.StatusUnauthorized},
		{err: model.ErrForbidden, want: http.StatusForbidden},
		{err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.err.Error(), func(t *testing.T) {
			assert.Equal(t, tc.want, webutil.MapErrorToStatusCode(tc.err))
		})
	}
}

func TestHandleError_HidesInternalDetails(t *testing.T) {
	rr := httptest.NewRecorder()

	webutil.HandleError(rr, nil, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.NotContains(t, rr.Body.String(), "connection refused")
	assert.Contains(t, rr.Body.String(), "INTERNAL_SERVER_ERROR")
}
