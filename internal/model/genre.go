// internal/model/genre.go
package model

import (
	"time"

	"gorm.io/gorm"
)

type Genre struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null;uniqueIndex:idx_genres_name,where:deleted_at IS NULL" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Genre) TableName() string {
	return "genres"
}

type GenreRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type GenreBatchRequest struct {
	Genres []GenreRequest `json:"genres" validate:"required,min=1,dive"`
}
