package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/apperr"
	"github.com/carson-networks/ledger-server/internal/auth"
	"github.com/carson-networks/ledger-server/internal/config"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// UserService handles registration, login, sessions, the OTP password
// reset flow, and profile edits.
type UserService struct {
	storage    *storage.Storage
	otpSender  OTPSender
	bcryptCost int
	sessionTTL time.Duration
	otpTTL     time.Duration
}

// NewUserService creates a new UserService.
func NewUserService(store *storage.Storage, env *config.Config, sender OTPSender) *UserService {
	return &UserService{
		storage:    store,
		otpSender:  sender,
		bcryptCost: env.BcryptCost,
		sessionTTL: env.SessionTTL,
		otpTTL:     env.OTPTTL,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user and logs them in. A duplicate email fails
// with Conflict.
func (s *UserService) Register(ctx context.Context, email, password, firstName, lastName string) (*AuthenticatedUser, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, apperr.Validation("email", "must not be empty")
	}
	if len(password) < 8 {
		return nil, apperr.Validation("password", "must be at least 8 characters")
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	row, err := s.storage.Users.Insert(ctx, &storage.UserCreate{
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
	})
	if err != nil {
		if errors.Is(err, storage.ErrUniqueViolation) {
			return nil, apperr.Conflict("email already registered")
		}
		return nil, err
	}

	return s.startSession(ctx, row)
}

// Login verifies the credentials and mints a session. The failure
// message never distinguishes an unknown email from a wrong password.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthenticatedUser, error) {
	row, err := s.storage.Users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.Forbidden("invalid email or password")
		}
		return nil, err
	}
	if !auth.CheckPassword(password, row.PasswordHash) {
		return nil, apperr.Forbidden("invalid email or password")
	}

	return s.startSession(ctx, row)
}

func (s *UserService) startSession(ctx context.Context, row *storage.User) (*AuthenticatedUser, error) {
	token, err := auth.GenerateSessionToken()
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if err := s.storage.Sessions.Insert(ctx, token, row.ID, time.Now().Add(s.sessionTTL)); err != nil {
		return nil, err
	}
	return &AuthenticatedUser{User: userFromStorage(row), Token: token}, nil
}

// Logout invalidates a session token. Unknown tokens are a no-op.
func (s *UserService) Logout(ctx context.Context, token string) error {
	err := s.storage.Sessions.Delete(ctx, token)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	return err
}

// Authenticate resolves a bearer token to its owner. Expired and
// unknown tokens both fail with Forbidden.
func (s *UserService) Authenticate(ctx context.Context, token string) (uuid.UUID, error) {
	session, err := s.storage.Sessions.Find(ctx, token)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return uuid.Nil, apperr.Forbidden("invalid or expired session")
		}
		return uuid.Nil, err
	}
	return session.UserID, nil
}

// RequestPasswordReset issues an OTP for the account. An unknown email
// succeeds silently so the endpoint cannot be used to probe accounts.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	row, err := s.storage.Users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return err
	}

	otp, err := auth.GenerateOTP()
	if err != nil {
		return apperr.Internal(err)
	}
	if err := s.storage.Users.SetOTP(ctx, row.ID, otp, time.Now().Add(s.otpTTL)); err != nil {
		return err
	}
	return s.otpSender.SendOTP(row.Email, otp)
}

// ResetPassword sets a new password when the OTP matches and has not
// expired. A successful reset consumes the OTP.
func (s *UserService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	if len(newPassword) < 8 {
		return apperr.Validation("password", "must be at least 8 characters")
	}

	row, err := s.storage.Users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.Forbidden("invalid reset code")
		}
		return err
	}
	if row.OTP == nil || row.OTPExpiresAt == nil ||
		*row.OTP != otp || time.Now().After(*row.OTPExpiresAt) {
		return apperr.Forbidden("invalid reset code")
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperr.Internal(err)
	}
	// UpdatePassword clears the OTP columns in the same statement.
	return s.storage.Users.UpdatePassword(ctx, row.ID, hash)
}

// GetProfile returns the user's profile.
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*User, error) {
	row, err := s.storage.Users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	user := userFromStorage(row)
	return &user, nil
}

// UpdateProfile rewrites the user's name and email. Taking another
// account's email fails with Conflict.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, input UserUpdateInput) (*User, error) {
	email := normalizeEmail(input.Email)
	if email == "" {
		return nil, apperr.Validation("email", "must not be empty")
	}

	err := s.storage.Users.UpdateProfile(ctx, userID,
		strings.TrimSpace(input.FirstName),
		strings.TrimSpace(input.LastName),
		email,
	)
	if err != nil {
		if errors.Is(err, storage.ErrUniqueViolation) {
			return nil, apperr.Conflict("email already registered")
		}
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}

	return s.GetProfile(ctx, userID)
}
