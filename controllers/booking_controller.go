// controllers/booking_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"fotostudio-backend/services"
	"fotostudio-backend/utils"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CreateBookingPayload struct {
	Nama    string  `json:"nama"`
	Telepon string  `json:"telepon"`
	Paket   string  `json:"paket"`
	Tanggal string  `json:"tanggal"`
	Catatan *string `json:"catatan"`
}

type UpdateStatusPayload struct {
	Status string `json:"status"`
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

// Index returns all bookings, most recent first. Admin only.
func (bc *BookingController) Index(c *gin.Context) {
	bookings, err := bc.BookingSvc.List()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list bookings")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// Store creates a booking from an anonymous submission. The status field is
// never read from the payload; new bookings are always PENDING.
func (bc *BookingController) Store(c *gin.Context) {
	var payload CreateBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	fieldErrors := map[string][]string{}
	if strings.TrimSpace(payload.Nama) == "" {
		fieldErrors["nama"] = append(fieldErrors["nama"], "The nama field is required.")
	}
	if strings.TrimSpace(payload.Telepon) == "" {
		fieldErrors["telepon"] = append(fieldErrors["telepon"], "The telepon field is required.")
	}
	if strings.TrimSpace(payload.Paket) == "" {
		fieldErrors["paket"] = append(fieldErrors["paket"], "The paket field is required.")
	}

	var tanggal time.Time
	if strings.TrimSpace(payload.Tanggal) == "" {
		fieldErrors["tanggal"] = append(fieldErrors["tanggal"], "The tanggal field is required.")
	} else {
		parsed, err := time.ParseInLocation(services.TanggalLayout, payload.Tanggal, time.Local)
		if err != nil {
			fieldErrors["tanggal"] = append(fieldErrors["tanggal"], "The tanggal does not match the format Y-m-d H:i:s.")
		} else {
			tanggal = parsed
		}
	}

	if len(fieldErrors) > 0 {
		utils.JSONValidationError(c, fieldErrors)
		return
	}

	booking, err := bc.BookingSvc.Create(services.CreateBookingInput{
		Nama:    payload.Nama,
		Telepon: payload.Telepon,
		Paket:   payload.Paket,
		Tanggal: tanggal,
		Catatan: payload.Catatan,
	})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create booking")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking berhasil dibuat!",
		"booking": booking,
	})
}

// Show looks a booking up by its public id.
func (bc *BookingController) Show(c *gin.Context) {
	booking, err := bc.BookingSvc.GetByPublicID(c.Param("public_id"))
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			utils.JSONError(c, http.StatusNotFound, "booking not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to find booking")
		return
	}
	c.JSON(http.StatusOK, booking)
}

// PublicDates returns the session slot of every non-cancelled booking so the
// booking form can warn visitors away from taken slots.
func (bc *BookingController) PublicDates(c *gin.Context) {
	dates, err := bc.BookingSvc.PublicBookedDates()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list booked dates")
		return
	}
	c.JSON(http.StatusOK, dates)
}

// UpdateStatus sets a booking's status. Admin only.
func (bc *BookingController) UpdateStatus(c *gin.Context) {
	var payload UpdateStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	booking, err := bc.BookingSvc.UpdateStatus(c.Param("public_id"), payload.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			utils.JSONValidationError(c, map[string][]string{
				"status": {"The selected status is invalid."},
			})
		case errors.Is(err, services.ErrBookingNotFound):
			utils.JSONError(c, http.StatusNotFound, "booking not found")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to update status")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Status booking berhasil diperbarui.",
		"booking": booking,
	})
}
