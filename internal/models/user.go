package models

import (
	"time"
)

// User is created on first successful Google login by email. No exposed
// operation updates or deletes a user.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:250;not null"`
	Email     string    `json:"email" gorm:"size:250;uniqueIndex;not null"`
	Picture   string    `json:"picture" gorm:"size:250"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
