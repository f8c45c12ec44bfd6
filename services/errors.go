package services

import "errors"

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrImageNotFound   = errors.New("image not found")
	ErrInvalidStatus   = errors.New("invalid booking status")
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrRegistrationClosed = errors.New("registration is closed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)
