// internal/model/movie.go
package model

import (
	"time"

	"gorm.io/gorm"
)

// Movie の duration は分単位
type Movie struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Description *string        `json:"description"`
	Year        *int           `json:"year"`
	Duration    *int           `json:"duration"`
	Poster      *string        `json:"poster"`
	CreatedBy   *uint          `gorm:"index" json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Creator *User   `gorm:"foreignKey:CreatedBy" json:"-"`
	Genres  []Genre `gorm:"many2many:movie_genre;constraint:OnDelete:CASCADE" json:"genres"`
}

func (Movie) TableName() string {
	return "movies"
}

// DurationSeconds は分→秒。duration 不明なら nil。
func (m *Movie) DurationSeconds() *int {
	if m.Duration == nil {
		return nil
	}
	s := *m.Duration * 60
	return &s
}

type CreateMovieRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	Year        *int    `json:"year,omitempty" validate:"omitempty,gte=1888,lte=2100"`
	Duration    *int    `json:"duration,omitempty" validate:"omitempty,gt=0"`
	Poster      *string `json:"poster,omitempty" validate:"omitempty,max=500"`
	GenreIDs    []uint  `json:"genre_ids,omitempty" validate:"omitempty,dive,gt=0"`
}

// UpdateMovieRequest: nil の項目は変更しない。genre_ids が指定されたら置き換え。
type UpdateMovieRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	Year        *int    `json:"year,omitempty" validate:"omitempty,gte=1888,lte=2100"`
	Duration    *int    `json:"duration,omitempty" validate:"omitempty,gt=0"`
	Poster      *string `json:"poster,omitempty" validate:"omitempty,max=500"`
	GenreIDs    *[]uint `json:"genre_ids,omitempty" validate:"omitempty,dive,gt=0"`
}

// MovieResponse は duration_seconds を付けたレスポンス
type MovieResponse struct {
	*Movie
	DurationSeconds *int `json:"duration_seconds"`
}

func NewMovieResponse(m *Movie) *MovieResponse {
	return &MovieResponse{Movie: m, DurationSeconds: m.DurationSeconds()}
}
