package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PhotoModel is created before its bytes exist in object storage; a row may
// transiently reference content that never finished uploading.
type PhotoModel struct {
	ID        string `gorm:"type:uuid;primary_key"`
	PostID    string `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PhotoModel) TableName() string {
	return "photos"
}

func (p *PhotoModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
