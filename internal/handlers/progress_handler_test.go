// internal/handlers/progress_handler_test.go
package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"cinepetro_api/internal/handlers"
	"cinepetro_api/internal/model"
	"cinepetro_api/internal/service/mocks"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProgressRouter(svc *mocks.MockProgressService) *chi.Mux {
	h := handlers.NewProgressHandler(svc, discardLogger)
	return devRouter(func(r chi.Router) {
		r.Post("/api/v1/progress/save", h.SaveProgress)
		r.Get("/api/v1/progress/get", h.GetProgress)
		r.Get("/api/v1/progress/continuar", h.ContinueWatching)
	})
}

func TestProgressHandler_SaveProgress(t *testing.T) {
	saved := &model.WatchProgress{ID: 1, UserID: 5, MovieID: uintPtr(7), TimeSeconds: 120, UpdatedAt: time.Now()}

	tests := []struct {
		name       string
		headers    map[string]string
		body       interface{}
		setupMock  func(svc *mocks.MockProgressService)
		wantStatus int
		wantCode   string
	}{
		{
			name:    "正常系: 映画の進捗を保存",
			headers: asUser(5, false),
			body:    map[string]interface{}{"time_seconds": 120, "movie_id": 7},
			setupMock: func(svc *mocks.MockProgressService) {
				svc.On("SaveProgress", mock.Anything, uint(5), model.MovieRef(7), float64(120)).Return(saved, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:    "正常系: エピソードの進捗を保存 (time_seconds=0)",
			headers: asUser(5, false),
			body:    map[string]interface{}{"time_seconds": 0, "episode_id": 3},
			setupMock: func(svc *mocks.MockProgressService) {
				svc.On("SaveProgress", mock.Anything, uint(5), model.EpisodeRef(3), float64(0)).
					Return(&model.WatchProgress{ID: 2, UserID: 5, EpisodeID: uintPtr(3)}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "異常系: movie_id と episode_id の両方",
			headers:    asUser(5, false),
			body:       map[string]interface{}{"time_seconds": 1, "movie_id": 7, "episode_id": 3},
			setupMock:  func(svc *mocks.MockProgressService) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_CONTENT_REF",
		},
		{
			name:       "異常系: どちらも無い",
			headers:    asUser(5, false),
			body:       map[string]interface{}{"time_seconds": 1},
			setupMock:  func(svc *mocks.MockProgressService) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_CONTENT_REF",
		},
		{
			name:       "異常系: time_seconds が負",
			headers:    asUser(5, false),
			body:       map[string]interface{}{"time_seconds": -5, "movie_id": 7},
			setupMock:  func(svc *mocks.MockProgressService) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name:       "異常系: time_seconds が無い",
			headers:    asUser(5, false),
			body:       map[string]interface{}{"movie_id": 7},
			setupMock:  func(svc *mocks.MockProgressService) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name:       "異常系: 壊れたJSON",
			headers:    asUser(5, false),
			body:       `{"time_seconds": `,
			setupMock:  func(svc *mocks.MockProgressService) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_REQUEST_BODY",
		},
		{
			name:       "異常系: 認証なし",
			headers:    nil,
			body:       map[string]interface{}{"time_seconds": 1, "movie_id": 7},
			setupMock:  func(svc *mocks.MockProgressService) {},
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHORIZED",
		},
		{
			name:    "異常系: 同時の初回書き込みは 409",
			headers: asUser(5, false),
			body:    map[string]interface{}{"time_seconds": 10, "movie_id": 7},
			setupMock: func(svc *mocks.MockProgressService) {
				svc.On("SaveProgress", mock.Anything, uint(5), model.MovieRef(7), float64(10)).
					Return(nil, model.NewAppError("PROGRESS_CONFLICT", "conflito", "", model.ErrConflict)).Once()
			},
			wantStatus: http.StatusConflict,
			wantCode:   "PROGRESS_CONFLICT",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := mocks.NewMockProgressService(t)
			tc.setupMock(svc)
			router := newProgressRouter(svc)

			rr := serve(t, router, httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/progress/save", Body: tc.body, Headers: tc.headers})

			if tc.wantCode != "" {
				assertErrorCode(t, rr, tc.wantStatus, tc.wantCode)
				return
			}
			assert.Equal(t, tc.wantStatus, rr.Code, "body: %s", rr.Body.String())
			var got model.WatchProgress
			decodeBody(t, rr, &got)
			assert.Equal(t, uint(5), got.UserID)
		})
	}
}

func TestProgressHandler_GetProgress(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		setupMock  func(svc *mocks.MockProgressService)
		wantStatus int
		wantCode   string
	}{
		{
			name:  "正常系: episode_id で取得",
			query: "?episode_id=9",
			setupMock: func(svc *mocks.MockProgressService) {
				svc.On("GetProgress", mock.Anything, uint(5), model.EpisodeRef(9)).
					Return(&model.WatchProgress{ID: 3, UserID: 5, EpisodeID: uintPtr(9), TimeSeconds: 33}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:  "異常系: 未保存は 404",
			query: "?movie_id=1",
			setupMock: func(svc *mocks.MockProgressService) {
				svc.On("GetProgress", mock.Anything, uint(5), model.MovieRef(1)).
					Return(nil, model.NewAppError("PROGRESS_NOT_FOUND", "não encontrado", "", model.ErrNotFound)).Once()
			},
			wantStatus: http.StatusNotFound,
			wantCode:   "PROGRESS_NOT_FOUND",
		},
		{
			name:       "異常系: 数値でないID",
			query:      "?movie_id=abc",
			setupMock:  func(svc *mocks.MockProgressService) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_QUERY_PARAM",
		},
		{
			name:       "異常系: 両方指定",
			query:      "?movie_id=1&episode_id=2",
			setupMock:  func(svc *mocks.MockProgressService) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_CONTENT_REF",
		},
		{
			name:       "異常系: どちらも無い",
			query:      "",
			setupMock:  func(svc *mocks.MockProgressService) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_CONTENT_REF",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := mocks.NewMockProgressService(t)
			tc.setupMock(svc)
			router := newProgressRouter(svc)

			rr := serve(t, router, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/progress/get" + tc.query, Headers: asUser(5, false)})

			if tc.wantCode != "" {
				assertErrorCode(t, rr, tc.wantStatus, tc.wantCode)
				return
			}
			assert.Equal(t, tc.wantStatus, rr.Code)
		})
	}
}

func TestProgressHandler_ContinueWatching(t *testing.T) {
	t.Run("正常系: 映画とエピソードの形を保って返す", func(t *testing.T) {
		svc := mocks.NewMockProgressService(t)
		now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
		svc.On("ListContinueWatching", mock.Anything, uint(5)).Return([]model.ContentProgressSummary{
			&model.MovieProgressSummary{Type: model.SummaryTypeMovie, MovieID: 7, Title: "Filme", TimeSeconds: 60, DurationSeconds: 7200, UpdatedAt: now},
			&model.EpisodeProgressSummary{Type: model.SummaryTypeSeries, EpisodeID: 9, SeriesID: 2, SeriesTitle: "Série", Title: "Ep", TimeSeconds: 30, DurationSeconds: 2700, UpdatedAt: now},
		}, nil).Once()

		rr := serve(t, newProgressRouter(svc), httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/progress/continuar", Headers: asUser(5, false)})

		require.Equal(t, http.StatusOK, rr.Code)
		var items []map[string]interface{}
		decodeBody(t, rr, &items)
		require.Len(t, items, 2)
		assert.Equal(t, "movie", items[0]["type"])
		assert.Equal(t, float64(7), items[0]["movie_id"])
		assert.Equal(t, float64(7200), items[0]["duration_seconds"])
		assert.NotContains(t, items[0], "episode_id")
		assert.Equal(t, "series", items[1]["type"])
		assert.Equal(t, "Série", items[1]["series_title"])
		assert.Contains(t, items[1], "season_number")
	})

	t.Run("正常系: 空なら []", func(t *testing.T) {
		svc := mocks.NewMockProgressService(t)
		svc.On("ListContinueWatching", mock.Anything, uint(5)).Return(nil, nil).Once()

		rr := serve(t, newProgressRouter(svc), httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/progress/continuar", Headers: asUser(5, false)})

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, "[]", rr.Body.String())
	})

	t.Run("異常系: サービスの内部エラーは 500", func(t *testing.T) {
		svc := mocks.NewMockProgressService(t)
		svc.On("ListContinueWatching", mock.Anything, uint(5)).
			Return(nil, model.NewAppError("INTERNAL_SERVER_ERROR", "erro", "", model.ErrInternalServer)).Once()

		rr := serve(t, newProgressRouter(svc), httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/progress/continuar", Headers: asUser(5, false)})

		assertErrorCode(t, rr, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR")
	})
}
