// services/booking_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"fotostudio-backend/models"
	"fotostudio-backend/utils"

	"gorm.io/gorm"
)

// TanggalLayout is the exact wire format of a session slot.
const TanggalLayout = "2006-01-02 15:04:05"

const publicIDSuffixLen = 9

// BookingService wraps *gorm.DB with the booking registry logic.
type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

type CreateBookingInput struct {
	Nama    string
	Telepon string
	Paket   string
	Tanggal time.Time
	Catatan *string
}

// List returns every booking, most recently created first.
func (s *BookingService) List() ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.DB.Order("created_at DESC, id DESC").Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// Create persists a new booking with a fresh public id. Status is always
// PENDING regardless of what the caller sent.
//
// The random suffix space makes collisions negligible, but a duplicate-key
// violation still regenerates and retries a few times before giving up.
func (s *BookingService) Create(input CreateBookingInput) (models.Booking, error) {
	var booking models.Booking
	maxRetries := 5
	var createErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		publicID, err := utils.GeneratePublicID(publicIDSuffixLen)
		if err != nil {
			return models.Booking{}, fmt.Errorf("failed to generate public id: %w", err)
		}

		booking = models.Booking{
			PublicID:       publicID,
			Nama:           input.Nama,
			Telepon:        input.Telepon,
			Paket:          input.Paket,
			TanggalBooking: input.Tanggal,
			Catatan:        input.Catatan,
			Status:         models.StatusPending,
		}

		createErr = s.DB.Create(&booking).Error
		if createErr == nil {
			break
		}

		if isDuplicateKey(createErr) {
			log.Printf("public_id collision (attempt %d) - retrying", attempt+1)
			continue
		}
		return models.Booking{}, fmt.Errorf("failed to create booking: %w", createErr)
	}
	if createErr != nil {
		return models.Booking{}, fmt.Errorf("failed to create booking after retries: %w", createErr)
	}
	return booking, nil
}

// GetByPublicID looks a booking up by its external identifier.
func (s *BookingService) GetByPublicID(publicID string) (models.Booking, error) {
	var booking models.Booking
	if err := s.DB.Where("public_id = ?", publicID).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Booking{}, ErrBookingNotFound
		}
		return models.Booking{}, fmt.Errorf("failed to find booking: %w", err)
	}
	return booking, nil
}

// PublicBookedDates returns the session slot of every non-cancelled booking
// as formatted strings. Advisory only: nothing stops two bookings from
// sharing a slot.
func (s *BookingService) PublicBookedDates() ([]string, error) {
	var bookings []models.Booking
	if err := s.DB.
		Select("tanggal_booking").
		Where("status <> ?", models.StatusCancelled).
		Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to list booked dates: %w", err)
	}

	dates := make([]string, 0, len(bookings))
	for _, b := range bookings {
		dates = append(dates, b.TanggalBooking.Format(TanggalLayout))
	}
	return dates, nil
}

// UpdateStatus sets the status of the booking addressed by publicID. Any of
// the three values may follow any other; there is no transition graph.
func (s *BookingService) UpdateStatus(publicID, status string) (models.Booking, error) {
	if !models.ValidStatus(status) {
		return models.Booking{}, ErrInvalidStatus
	}

	booking, err := s.GetByPublicID(publicID)
	if err != nil {
		return models.Booking{}, err
	}

	if err := s.DB.Model(&booking).Update("status", status).Error; err != nil {
		return models.Booking{}, fmt.Errorf("failed to update status: %w", err)
	}

	// reload so the caller sees refreshed timestamps
	return s.GetByPublicID(publicID)
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	lc := strings.ToLower(err.Error())
	return strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique") || strings.Contains(lc, "constraint")
}
