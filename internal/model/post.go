package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostModel struct {
	ID          string         `gorm:"type:uuid;primary_key"`
	UserID      string         `gorm:"type:uuid;not null;index"`
	Title       string         `gorm:"not null"`
	Description string         `gorm:"not null"`
	Price       float64        `gorm:"not null;check:price >= 0"`
	Latitude    float64        `gorm:"not null"`
	Longitude   float64        `gorm:"not null"`
	CategoryID  string         `gorm:"type:uuid;not null;index"`
	User        *UserModel     `gorm:"foreignKey:UserID"`
	Category    *CategoryModel `gorm:"foreignKey:CategoryID"`
	Photos      []PhotoModel   `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (PostModel) TableName() string {
	return "posts"
}

func (p *PostModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
