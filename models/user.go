package models

import (
	"time"
)

type User struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:255" json:"name"`
	Email string `gorm:"uniqueIndex;size:150" json:"email"`

	// Password stores the bcrypt hash, never returned in JSON.
	Password string `gorm:"size:255" json:"-"`

	IsAdmin bool `gorm:"column:is_admin;default:false" json:"is_admin"`

	ResetToken        *string    `gorm:"size:128;index" json:"-"`
	ResetTokenExpires *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
