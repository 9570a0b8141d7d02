package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/carson-networks/ledger-server/internal/apperr"
	"github.com/carson-networks/ledger-server/internal/auth"
	"github.com/carson-networks/ledger-server/internal/config"
	"github.com/carson-networks/ledger-server/internal/storage"
)

type mockOTPSender struct {
	mock.Mock
}

func (m *mockOTPSender) SendOTP(email, otp string) error {
	args := m.Called(email, otp)
	return args.Error(0)
}

func newUserTestService(t *testing.T) (*UserService, *mockUserTable, *mockSessionTable, *mockOTPSender) {
	t.Helper()
	users := new(mockUserTable)
	sessions := new(mockSessionTable)
	sender := new(mockOTPSender)
	store := &storage.Storage{Users: users, Sessions: sessions}
	env := &config.Config{
		BcryptCost: bcrypt.MinCost,
		SessionTTL: time.Hour,
		OTPTTL:     15 * time.Minute,
	}
	return NewUserService(store, env, sender), users, sessions, sender
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	assert.NoError(t, err)
	return hash
}

// -- Register tests --

func TestRegister_Success(t *testing.T) {
	svc, users, sessions, _ := newUserTestService(t)

	stored := &storage.User{
		ID:        uuid.Must(uuid.NewV4()),
		Email:     "ada@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}

	users.On("Insert", mock.Anything, mock.MatchedBy(func(c *storage.UserCreate) bool {
		return c.Email == "ada@example.com" && c.FirstName == "Ada" && c.PasswordHash != "hunter2secret"
	})).Return(stored, nil)
	sessions.On("Insert", mock.Anything, mock.AnythingOfType("string"), stored.ID, mock.AnythingOfType("time.Time")).
		Return(nil)

	authenticated, err := svc.Register(context.Background(), "  Ada@Example.COM ", "hunter2secret", "Ada", "Lovelace")
	assert.NoError(t, err)
	assert.Equal(t, stored.ID, authenticated.User.ID)
	assert.Len(t, authenticated.Token, 64)
}

func TestRegister_ShortPassword(t *testing.T) {
	svc, users, _, _ := newUserTestService(t)

	_, err := svc.Register(context.Background(), "ada@example.com", "short", "Ada", "Lovelace")
	assert.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	users.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, users, _, _ := newUserTestService(t)

	users.On("Insert", mock.Anything, mock.Anything).
		Return(nil, storage.ErrUniqueViolation)

	_, err := svc.Register(context.Background(), "ada@example.com", "hunter2secret", "Ada", "Lovelace")
	assert.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

// -- Login tests --

func TestLogin_Success(t *testing.T) {
	svc, users, sessions, _ := newUserTestService(t)

	stored := &storage.User{
		ID:           uuid.Must(uuid.NewV4()),
		Email:        "ada@example.com",
		PasswordHash: mustHash(t, "hunter2secret"),
	}

	users.On("FindByEmail", mock.Anything, "ada@example.com").Return(stored, nil)
	sessions.On("Insert", mock.Anything, mock.AnythingOfType("string"), stored.ID, mock.AnythingOfType("time.Time")).
		Return(nil)

	authenticated, err := svc.Login(context.Background(), "ada@example.com", "hunter2secret")
	assert.NoError(t, err)
	assert.NotEmpty(t, authenticated.Token)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, users, _, _ := newUserTestService(t)

	users.On("FindByEmail", mock.Anything, mock.Anything).
		Return(nil, storage.ErrNotFound)

	_, err := svc.Login(context.Background(), "nobody@example.com", "hunter2secret")
	assert.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, users, sessions, _ := newUserTestService(t)

	stored := &storage.User{
		ID:           uuid.Must(uuid.NewV4()),
		Email:        "ada@example.com",
		PasswordHash: mustHash(t, "hunter2secret"),
	}
	users.On("FindByEmail", mock.Anything, "ada@example.com").Return(stored, nil)

	_, err := svc.Login(context.Background(), "ada@example.com", "wrong-password")
	assert.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	sessions.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// -- Session tests --

func TestAuthenticate_Success(t *testing.T) {
	svc, _, sessions, _ := newUserTestService(t)

	userID := uuid.Must(uuid.NewV4())
	sessions.On("Find", mock.Anything, "token-value").
		Return(&storage.Session{Token: "token-value", UserID: userID}, nil)

	resolved, err := svc.Authenticate(context.Background(), "token-value")
	assert.NoError(t, err)
	assert.Equal(t, userID, resolved)
}

func TestAuthenticate_ExpiredOrUnknown(t *testing.T) {
	svc, _, sessions, _ := newUserTestService(t)

	sessions.On("Find", mock.Anything, mock.Anything).
		Return(nil, storage.ErrNotFound)

	_, err := svc.Authenticate(context.Background(), "stale-token")
	assert.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestLogout_UnknownTokenIsNoop(t *testing.T) {
	svc, _, sessions, _ := newUserTestService(t)

	sessions.On("Delete", mock.Anything, "gone").Return(storage.ErrNotFound)

	err := svc.Logout(context.Background(), "gone")
	assert.NoError(t, err)
}

// -- Password reset tests --

func TestRequestPasswordReset_IssuesOTP(t *testing.T) {
	svc, users, _, sender := newUserTestService(t)

	stored := &storage.User{ID: uuid.Must(uuid.NewV4()), Email: "ada@example.com"}
	users.On("FindByEmail", mock.Anything, "ada@example.com").Return(stored, nil)
	users.On("SetOTP", mock.Anything, stored.ID, mock.MatchedBy(func(otp string) bool {
		return len(otp) == 6
	}), mock.AnythingOfType("time.Time")).Return(nil)
	sender.On("SendOTP", "ada@example.com", mock.AnythingOfType("string")).Return(nil)

	err := svc.RequestPasswordReset(context.Background(), "ada@example.com")
	assert.NoError(t, err)
	users.AssertExpectations(t)
	sender.AssertExpectations(t)
}

func TestRequestPasswordReset_UnknownEmailSilent(t *testing.T) {
	svc, users, _, sender := newUserTestService(t)

	users.On("FindByEmail", mock.Anything, mock.Anything).
		Return(nil, storage.ErrNotFound)

	err := svc.RequestPasswordReset(context.Background(), "nobody@example.com")
	assert.NoError(t, err)
	sender.AssertNotCalled(t, "SendOTP", mock.Anything, mock.Anything)
}

func TestResetPassword_Success(t *testing.T) {
	svc, users, _, _ := newUserTestService(t)

	otp := "123456"
	expires := time.Now().Add(10 * time.Minute)
	stored := &storage.User{
		ID:           uuid.Must(uuid.NewV4()),
		Email:        "ada@example.com",
		OTP:          &otp,
		OTPExpiresAt: &expires,
	}

	users.On("FindByEmail", mock.Anything, "ada@example.com").Return(stored, nil)
	users.On("UpdatePassword", mock.Anything, stored.ID, mock.AnythingOfType("string")).Return(nil)

	err := svc.ResetPassword(context.Background(), "ada@example.com", "123456", "brand-new-password")
	assert.NoError(t, err)
	users.AssertExpectations(t)
}

func TestResetPassword_WrongOTP(t *testing.T) {
	svc, users, _, _ := newUserTestService(t)

	otp := "123456"
	expires := time.Now().Add(10 * time.Minute)
	stored := &storage.User{
		ID:           uuid.Must(uuid.NewV4()),
		Email:        "ada@example.com",
		OTP:          &otp,
		OTPExpiresAt: &expires,
	}
	users.On("FindByEmail", mock.Anything, "ada@example.com").Return(stored, nil)

	err := svc.ResetPassword(context.Background(), "ada@example.com", "654321", "brand-new-password")
	assert.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

func TestResetPassword_ExpiredOTP(t *testing.T) {
	svc, users, _, _ := newUserTestService(t)

	otp := "123456"
	expires := time.Now().Add(-time.Minute)
	stored := &storage.User{
		ID:           uuid.Must(uuid.NewV4()),
		Email:        "ada@example.com",
		OTP:          &otp,
		OTPExpiresAt: &expires,
	}
	users.On("FindByEmail", mock.Anything, "ada@example.com").Return(stored, nil)

	err := svc.ResetPassword(context.Background(), "ada@example.com", "123456", "brand-new-password")
	assert.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

// -- Profile tests --

func TestUpdateProfile_EmailTaken(t *testing.T) {
	svc, users, _, _ := newUserTestService(t)

	users.On("UpdateProfile", mock.Anything, mock.Anything, "Ada", "Lovelace", "taken@example.com").
		Return(storage.ErrUniqueViolation)

	_, err := svc.UpdateProfile(context.Background(), uuid.Must(uuid.NewV4()), UserUpdateInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "taken@example.com",
	})
	assert.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestGetProfile_NotFound(t *testing.T) {
	svc, users, _, _ := newUserTestService(t)

	users.On("FindByID", mock.Anything, mock.Anything).
		Return(nil, storage.ErrNotFound)

	_, err := svc.GetProfile(context.Background(), uuid.Must(uuid.NewV4()))
	assert.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
