// internal/model/episode.go
package model

import (
	"time"

	"gorm.io/gorm"
)

// Episode の duration は分単位
type Episode struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	SeriesID      uint           `gorm:"not null;index;uniqueIndex:idx_episode_position,where:deleted_at IS NULL" json:"series_id"`
	Title         string         `gorm:"size:255;not null" json:"title"`
	Description   *string        `json:"description"`
	SeasonNumber  *int           `gorm:"uniqueIndex:idx_episode_position,where:deleted_at IS NULL" json:"season_number"`
	EpisodeNumber *int           `gorm:"uniqueIndex:idx_episode_position,where:deleted_at IS NULL" json:"episode_number"`
	Duration      *int           `json:"duration"`
	CreatedBy     *uint          `gorm:"index" json:"created_by"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Series  *Series `gorm:"foreignKey:SeriesID;constraint:OnDelete:CASCADE" json:"-"`
	Creator *User   `gorm:"foreignKey:CreatedBy" json:"-"`
}

func (Episode) TableName() string {
	return "episodes"
}

type CreateEpisodeRequest struct {
	SeriesID      uint    `json:"series_id" validate:"required,gt=0"`
	Title         string  `json:"title" validate:"required,min=1,max=255"`
	Description   *string `json:"description,omitempty"`
	SeasonNumber  *int    `json:"season_number,omitempty" validate:"omitempty,gt=0"`
	EpisodeNumber *int    `json:"episode_number,omitempty" validate:"omitempty,gt=0"`
	Duration      *int    `json:"duration,omitempty" validate:"omitempty,gt=0"`
}

type UpdateEpisodeRequest struct {
	Title         *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description   *string `json:"description,omitempty"`
	SeasonNumber  *int    `json:"season_number,omitempty" validate:"omitempty,gt=0"`
	EpisodeNumber *int    `json:"episode_number,omitempty" validate:"omitempty,gt=0"`
	Duration      *int    `json:"duration,omitempty" validate:"omitempty,gt=0"`
}
