// internal/handlers/e2e_flow_test.go
package handlers_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"cinepetro_api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// registerAndLogin はユーザーを登録してログインし、Authorization ヘッダーを返す
func registerAndLogin(t *testing.T, name, email string) (uint, map[string]string) {
	t.Helper()
	password := "senha-segura-123"

	rr := serve(t, testRouter, httpRequestDetails{
		Method: http.MethodPost,
		Path:   "/api/v1/users",
		Body:   model.CreateUserRequest{Name: name, Email: email, Password: password},
	})
	require.Equal(t, http.StatusCreated, rr.Code, "register: %s", rr.Body.String())

	rr = serve(t, testRouter, httpRequestDetails{
		Method: http.MethodPost,
		Path:   "/api/v1/auth/login",
		Body:   model.LoginRequest{Email: email, Password: password},
	})
	require.Equal(t, http.StatusOK, rr.Code, "login: %s", rr.Body.String())
	var login model.LoginResponse
	decodeBody(t, rr, &login)
	require.Equal(t, "bearer", login.TokenType)

	return login.UserID, map[string]string{"Authorization": "Bearer " + login.AccessToken}
}

func TestE2E_WatchProgressFlow(t *testing.T) {
	clearTables(t)
	_, auth := registerAndLogin(t, "Ana", "ana@example.com")

	// 10分の映画
	rr := serve(t, testRouter, httpRequestDetails{
		Method:  http.MethodPost,
		Path:    "/api/v1/movies",
		Headers: auth,
		Body:    map[string]interface{}{"title": "Curta", "duration": 10},
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var movie model.MovieResponse
	decodeBody(t, rr, &movie)
	require.NotNil(t, movie.DurationSeconds)
	assert.Equal(t, 600, *movie.DurationSeconds)

	save := func(body map[string]interface{}) *model.WatchProgress {
		rr := serve(t, testRouter, httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/progress/save", Headers: auth, Body: body})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		var p model.WatchProgress
		decodeBody(t, rr, &p)
		return &p
	}

	first := save(map[string]interface{}{"movie_id": movie.ID, "time_seconds": 100})
	second := save(map[string]interface{}{"movie_id": movie.ID, "time_seconds": 300})
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, float64(300), second.TimeSeconds)

	rr = serve(t, testRouter, httpRequestDetails{Method: http.MethodGet, Path: fmt.Sprintf("/api/v1/progress/get?movie_id=%d", movie.ID), Headers: auth})
	require.Equal(t, http.StatusOK, rr.Code)
	var got model.WatchProgress
	decodeBody(t, rr, &got)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, float64(300), got.TimeSeconds)

	// 両方指定は保存前に拒否
	rr = serve(t, testRouter, httpRequestDetails{
		Method:  http.MethodPost,
		Path:    "/api/v1/progress/save",
		Headers: auth,
		Body:    map[string]interface{}{"movie_id": movie.ID, "episode_id": 3, "time_seconds": 50},
	})
	assertErrorCode(t, rr, http.StatusBadRequest, "INVALID_CONTENT_REF")

	// 同じ数値IDのエピソードは存在しないので 400
	rr = serve(t, testRouter, httpRequestDetails{
		Method:  http.MethodPost,
		Path:    "/api/v1/progress/save",
		Headers: auth,
		Body:    map[string]interface{}{"episode_id": movie.ID, "time_seconds": 50},
	})
	assertErrorCode(t, rr, http.StatusBadRequest, "CONTENT_NOT_FOUND")

	rr = serve(t, testRouter, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/progress/continuar", Headers: auth})
	require.Equal(t, http.StatusOK, rr.Code)
	var items []map[string]interface{}
	decodeBody(t, rr, &items)
	require.Len(t, items, 1)
	assert.Equal(t, "movie", items[0]["type"])
	assert.Equal(t, float64(movie.ID), items[0]["movie_id"])
	assert.Equal(t, float64(300), items[0]["time_seconds"])
	assert.Equal(t, float64(600), items[0]["duration_seconds"])

	// 570秒以上で視聴済み扱い
	save(map[string]interface{}{"movie_id": movie.ID, "time_seconds": 570})
	rr = serve(t, testRouter, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/progress/continuar", Headers: auth})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestE2E_SeriesEpisodeProgress(t *testing.T) {
	clearTables(t)
	_, auth := registerAndLogin(t, "Caio", "caio@example.com")

	rr := serve(t, testRouter, httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/series", Headers: auth, Body: map[string]interface{}{"title": "Irmandade"}})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var series model.Series
	decodeBody(t, rr, &series)

	rr = serve(t, testRouter, httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/genres", Headers: auth, Body: map[string]interface{}{"name": "Crime"}})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var genre model.Genre
	decodeBody(t, rr, &genre)

	link := map[string]interface{}{"serie_id": series.ID, "genero_id": genre.ID}
	rr = serve(t, testRouter, httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/serie-genero", Headers: auth, Body: link})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.JSONEq(t, `{"detail":"Gênero vinculado à série com sucesso."}`, rr.Body.String())
	rr = serve(t, testRouter, httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/serie-genero", Headers: auth, Body: link})
	assertErrorCode(t, rr, http.StatusConflict, "LINK_ALREADY_EXISTS")

	rr = serve(t, testRouter, httpRequestDetails{
		Method:  http.MethodPost,
		Path:    "/api/v1/episodes",
		Headers: auth,
		Body:    map[string]interface{}{"series_id": series.ID, "title": "Piloto", "season_number": 1, "episode_number": 1, "duration": 50},
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var episode model.Episode
	decodeBody(t, rr, &episode)

	rr = serve(t, testRouter, httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/progress/save", Headers: auth, Body: map[string]interface{}{"episode_id": episode.ID, "time_seconds": 1200.5}})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = serve(t, testRouter, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/progress/continuar", Headers: auth})
	require.Equal(t, http.StatusOK, rr.Code)
	var items []map[string]interface{}
	decodeBody(t, rr, &items)
	require.Len(t, items, 1)
	assert.Equal(t, "series", items[0]["type"])
	assert.Equal(t, "Irmandade", items[0]["series_title"])
	assert.Equal(t, float64(1), items[0]["season_number"])
	assert.Equal(t, float64(3000), items[0]["duration_seconds"])

	// シリーズを削除すると一覧から消える
	rr = serve(t, testRouter, httpRequestDetails{Method: http.MethodDelete, Path: fmt.Sprintf("/api/v1/series/%d", series.ID), Headers: auth})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	rr = serve(t, testRouter, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/progress/continuar", Headers: auth})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestE2E_Auth(t *testing.T) {
	clearTables(t)

	t.Run("異常系: トークンなし", func(t *testing.T) {
		rr := serve(t, testRouter, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/progress/continuar"})
		assertErrorCode(t, rr, http.StatusUnauthorized, "UNAUTHORIZED")
	})

	t.Run("異常系: 不正なトークン", func(t *testing.T) {
		rr := serve(t, testRouter, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/progress/continuar", Headers: map[string]string{"Authorization": "Bearer nao.e.jwt"}})
		assertErrorCode(t, rr, http.StatusUnauthorized, "INVALID_TOKEN")
	})

	t.Run("異常系: パスワード違い", func(t *testing.T) {
		registerAndLogin(t, "Duda", "duda@example.com")
		rr := serve(t, testRouter, httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/auth/login", Body: model.LoginRequest{Email: "duda@example.com", Password: "errada"}})
		assertErrorCode(t, rr, http.StatusUnauthorized, "AUTHENTICATION_FAILED")
	})

	t.Run("正常系: 管理者メールで登録したユーザーは一覧を見られる", func(t *testing.T) {
		_, adminAuth := registerAndLogin(t, "Admin", strings.ToUpper(testAdminEmail))
		rr := serve(t, testRouter, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/users", Headers: adminAuth})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		var users []model.UserResponse
		decodeBody(t, rr, &users)
		assert.NotEmpty(t, users)
	})

	t.Run("異常系: 削除後のトークンは 404", func(t *testing.T) {
		userID, auth := registerAndLogin(t, "Eva", "eva@example.com")
		rr := serve(t, testRouter, httpRequestDetails{Method: http.MethodDelete, Path: fmt.Sprintf("/api/v1/users/%d", userID), Headers: auth})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		rr = serve(t, testRouter, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/users/me", Headers: auth})
		assertErrorCode(t, rr, http.StatusNotFound, "USER_NOT_FOUND")
	})
}

func TestE2E_SystemEndpoints(t *testing.T) {
	rr := serve(t, testRouter, httpRequestDetails{Method: http.MethodGet, Path: "/"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "message")

	rr = serve(t, testRouter, httpRequestDetails{Method: http.MethodGet, Path: "/health"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())

	rr = serve(t, testRouter, httpRequestDetails{Method: http.MethodGet, Path: "/metrics"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "cinepetro_http_requests_total")
}
