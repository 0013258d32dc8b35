package models

import (
	"time"
)

type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     *string   `json:"title" gorm:"size:255"`
	Content   *string   `json:"content" gorm:"type:text"`
	UserID    uint      `json:"user_id" gorm:"index;not null"` // foreign key
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
