package models

import (
	"time"
)

// User is a person who owns posts and, optionally, an uploaded photo.
type User struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FirstName  string    `json:"first_name" gorm:"size:255;not null"`
	SecondName string    `json:"second_name" gorm:"size:255;not null"`
	Patronymic *string   `json:"patronymic" gorm:"size:255"`
	Email      string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Address    *string   `json:"address" gorm:"type:text"`
	PhotoURL   *string   `json:"photo_url" gorm:"type:text"`
	Posts      []Post    `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
