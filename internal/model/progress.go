// internal/model/progress.go
package model

import (
	"time"
)

// CompletionThreshold を超えて視聴したコンテンツは視聴済みとみなす (エンドロール分の許容)
const CompletionThreshold = 0.95

// WatchProgress はユーザーごとのコンテンツ再生位置
type WatchProgress struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index;uniqueIndex:idx_progress_user_movie,where:episode_id IS NULL;uniqueIndex:idx_progress_user_episode,where:movie_id IS NULL" json:"user_id"`
	// movie_id / episode_id はどちらか一方のみ
	MovieID     *uint     `gorm:"index;uniqueIndex:idx_progress_user_movie,where:episode_id IS NULL;check:chk_watch_progress_target,(movie_id IS NULL) <> (episode_id IS NULL)" json:"movie_id"`
	EpisodeID   *uint     `gorm:"index;uniqueIndex:idx_progress_user_episode,where:movie_id IS NULL" json:"episode_id"`
	TimeSeconds float64   `gorm:"not null;default:0" json:"time_seconds"`
	UpdatedAt   time.Time `json:"updated_at"`

	// FK 用 (JSONには含めない)
	Movie   *Movie   `gorm:"foreignKey:MovieID" json:"-"`
	Episode *Episode `gorm:"foreignKey:EpisodeID" json:"-"`
}

func (WatchProgress) TableName() string {
	return "watch_progress"
}

// Ref は行の識別子を ContentRef に戻す
func (p *WatchProgress) Ref() ContentRef {
	switch {
	case p.MovieID != nil && p.EpisodeID == nil:
		return MovieRef(*p.MovieID)
	case p.EpisodeID != nil && p.MovieID == nil:
		return EpisodeRef(*p.EpisodeID)
	}
	return ContentRef{}
}

// SaveProgressRequest は POST /progress/save のボディ
type SaveProgressRequest struct {
	TimeSeconds *float64 `json:"time_seconds" validate:"required,gte=0"`
	MovieID     *uint    `json:"movie_id,omitempty" validate:"omitempty,gt=0"`
	EpisodeID   *uint    `json:"episode_id,omitempty" validate:"omitempty,gt=0"`
}

// ContentProgressSummary は「続きから見る」の1件
type ContentProgressSummary interface {
	SummaryType() string
}

const (
	SummaryTypeMovie  = "movie"
	SummaryTypeSeries = "series"
)

type MovieProgressSummary struct {
	Type            string    `json:"type"`
	MovieID         uint      `json:"movie_id"`
	Title           string    `json:"title"`
	Poster          *string   `json:"poster"`
	TimeSeconds     float64   `json:"time_seconds"`
	DurationSeconds int       `json:"duration_seconds"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (MovieProgressSummary) SummaryType() string { return SummaryTypeMovie }

type EpisodeProgressSummary struct {
	Type            string    `json:"type"`
	EpisodeID       uint      `json:"episode_id"`
	SeriesID        uint      `json:"series_id"`
	SeriesTitle     string    `json:"series_title"`
	SeasonNumber    *int      `json:"season_number"`
	EpisodeNumber   *int      `json:"episode_number"`
	Title           string    `json:"title"`
	Poster          *string   `json:"poster"`
	TimeSeconds     float64   `json:"time_seconds"`
	DurationSeconds int       `json:"duration_seconds"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (EpisodeProgressSummary) SummaryType() string { return SummaryTypeSeries }

// MovieProgressRow / EpisodeProgressRow は集計クエリの生の行。
// 表示に必須の項目が欠けている行はサマリー化の段階で捨てる。
type MovieProgressRow struct {
	MovieID         *uint
	Title           *string
	Poster          *string
	TimeSeconds     float64
	DurationMinutes *int
	UpdatedAt       time.Time
}

type EpisodeProgressRow struct {
	EpisodeID       *uint
	SeriesID        *uint
	SeriesTitle     *string
	SeasonNumber    *int
	EpisodeNumber   *int
	Title           *string
	Poster          *string
	TimeSeconds     float64
	DurationMinutes *int
	UpdatedAt       time.Time
}
