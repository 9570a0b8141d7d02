package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/storage"
)

// User is the profile view of a user; credentials never leave the
// service layer.
type User struct {
	ID        uuid.UUID
	Email     string
	FirstName string
	LastName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AuthenticatedUser pairs a user with the session token minted for it.
type AuthenticatedUser struct {
	User  User
	Token string
}

// UserUpdateInput carries the editable profile fields.
type UserUpdateInput struct {
	FirstName string
	LastName  string
	Email     string
}

func userFromStorage(row *storage.User) User {
	return User{
		ID:        row.ID,
		Email:     row.Email,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

// OTPSender delivers a one-time passcode to a user. Production wires a
// mail provider; the default just logs.
//
//go:generate mockery --name OTPSender
type OTPSender interface {
	SendOTP(email, otp string) error
}

// LogOTPSender writes the passcode to the log instead of sending mail.
type LogOTPSender struct{}

func (LogOTPSender) SendOTP(email, otp string) error {
	logrus.WithFields(logrus.Fields{
		"email": email,
		"otp":   otp,
	}).Info("password reset code issued")
	return nil
}
