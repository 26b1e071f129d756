package model_test

import (
	"testing"

	"cinepetro_api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func TestNewContentRef(t *testing.T) {
	tests := []struct {
		name      string
		movieID   *uint
		episodeID *uint
		want      model.ContentRef
		wantErr   bool
	}{
		{name: "正常系: 映画", movieID: uintPtr(10), want: model.MovieRef(10)},
		{name: "正常系: エピソード", episodeID: uintPtr(3), want: model.EpisodeRef(3)},
		{name: "異常系: 両方", movieID: uintPtr(10), episodeID: uintPtr(3), wantErr: true},
		{name: "異常系: どちらも無い", wantErr: true},
		{name: "異常系: movie_id=0", movieID: uintPtr(0), wantErr: true},
		{name: "異常系: episode_id=0", episodeID: uintPtr(0), wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := model.NewContentRef(tc.movieID, tc.episodeID)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrInvalidInput)
				var appErr *model.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, "INVALID_CONTENT_REF", appErr.Detail.Code)
				assert.True(t, got.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestContentRef_Columns(t *testing.T) {
	movieID, episodeID := model.MovieRef(10).Columns()
	require.NotNil(t, movieID)
	assert.Equal(t, uint(10), *movieID)
	assert.Nil(t, episodeID)

	movieID, episodeID = model.EpisodeRef(10).Columns()
	assert.Nil(t, movieID)
	require.NotNil(t, episodeID)
	assert.Equal(t, uint(10), *episodeID)

	// 同じ数値でも種別が違えば別物
	assert.NotEqual(t, model.MovieRef(10), model.EpisodeRef(10))

	movieID, episodeID = model.ContentRef{}.Columns()
	assert.Nil(t, movieID)
	assert.Nil(t, episodeID)
}

func TestContentRef_String(t *testing.T) {
	assert.Equal(t, "movie:10", model.MovieRef(10).String())
	assert.Equal(t, "episode:3", model.EpisodeRef(3).String())
	assert.Equal(t, "content(invalid)", model.ContentRef{}.String())
}

func TestWatchProgress_Ref(t *testing.T) {
	assert.Equal(t, model.MovieRef(4), (&model.WatchProgress{MovieID: uintPtr(4)}).Ref())
	assert.Equal(t, model.EpisodeRef(5), (&model.WatchProgress{EpisodeID: uintPtr(5)}).Ref())
	assert.True(t, (&model.WatchProgress{MovieID: uintPtr(4), EpisodeID: uintPtr(5)}).Ref().IsZero())
}
