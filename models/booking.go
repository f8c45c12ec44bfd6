package models

import (
	"time"
)

// Booking statuses. The status column only ever holds one of these.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
)

// ValidStatus reports whether s is one of the three booking statuses.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusCancelled
}

type Booking struct {
	// Internal id. Never part of an addressable path; clients only ever see
	// the public_id.
	ID uint `gorm:"primaryKey" json:"id"`

	// PublicID has the form FOTO-XXXXXXXXX (9 uppercase alphanumerics),
	// assigned once at creation.
	PublicID string `gorm:"column:public_id;uniqueIndex;size:64" json:"public_id"`

	Nama    string `gorm:"size:255" json:"nama"`
	Telepon string `gorm:"size:20" json:"telepon"`
	Paket   string `gorm:"size:255" json:"paket"`

	// TanggalBooking is the reserved session slot.
	TanggalBooking time.Time `gorm:"column:tanggal_booking" json:"tanggal_booking"`

	Catatan *string `gorm:"type:text" json:"catatan"`

	Status string `gorm:"size:16;default:PENDING" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
