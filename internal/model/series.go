// internal/model/series.go
package model

import (
	"time"

	"gorm.io/gorm"
)

type Series struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Description *string        `json:"description"`
	StartYear   *int           `json:"start_year"`
	EndYear     *int           `json:"end_year"`
	Poster      *string        `json:"poster"`
	CreatedBy   *uint          `gorm:"index" json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Creator  *User     `gorm:"foreignKey:CreatedBy" json:"-"`
	Genres   []Genre   `gorm:"many2many:serie_genre;joinForeignKey:SerieID;joinReferences:GenreID;constraint:OnDelete:CASCADE" json:"genres"`
	Episodes []Episode `gorm:"foreignKey:SeriesID" json:"-"`
}

func (Series) TableName() string {
	return "series"
}

// SerieGenre は series と genres の中間テーブル
type SerieGenre struct {
	SerieID uint `gorm:"primaryKey" json:"serie_id"`
	GenreID uint `gorm:"primaryKey" json:"genero_id"`
}

func (SerieGenre) TableName() string {
	return "serie_genre"
}

type CreateSeriesRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	StartYear   *int    `json:"start_year,omitempty" validate:"omitempty,gte=1900,lte=2100"`
	EndYear     *int    `json:"end_year,omitempty" validate:"omitempty,gte=1900,lte=2100"`
	Poster      *string `json:"poster,omitempty" validate:"omitempty,max=500"`
	GenreIDs    []uint  `json:"genre_ids,omitempty" validate:"omitempty,dive,gt=0"`
}

type UpdateSeriesRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	StartYear   *int    `json:"start_year,omitempty" validate:"omitempty,gte=1900,lte=2100"`
	EndYear     *int    `json:"end_year,omitempty" validate:"omitempty,gte=1900,lte=2100"`
	Poster      *string `json:"poster,omitempty" validate:"omitempty,max=500"`
	GenreIDs    *[]uint `json:"genre_ids,omitempty" validate:"omitempty,dive,gt=0"`
}

// SerieGeneroRequest は /serie-genero のボディ
type SerieGeneroRequest struct {
	SerieID  uint `json:"serie_id" validate:"required,gt=0"`
	GeneroID uint `json:"genero_id" validate:"required,gt=0"`
}
