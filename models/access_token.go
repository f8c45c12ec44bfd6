package models

import "time"

// AccessToken is one issued bearer credential. Only the SHA-256 hash of the
// raw token is stored; logout deletes the row.
type AccessToken struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index"`
	TokenHash string    `gorm:"column:token_hash;uniqueIndex;size:64"`
	ExpiresAt time.Time `gorm:"column:expires_at"`
	CreatedAt time.Time

	User User `gorm:"foreignKey:UserID"`
}
