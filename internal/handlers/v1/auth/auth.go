package auth

import (
	"time"

	"github.com/carson-networks/ledger-server/internal/service"
)

// User is the API response model for an account profile.
type User struct {
	ID        string `json:"id" doc:"User UUID"`
	Email     string `json:"email" doc:"Account email"`
	FirstName string `json:"firstName" doc:"First name"`
	LastName  string `json:"lastName" doc:"Last name"`
	CreatedAt string `json:"createdAt" doc:"RFC3339 creation time"`
}

// Session is the API response model for a login or registration.
type Session struct {
	Token string `json:"token" doc:"Opaque bearer token"`
	User  User   `json:"user" doc:"The authenticated account"`
}

func userFromService(u service.User) User {
	return User{
		ID:        u.ID.String(),
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

func sessionFromService(a service.AuthenticatedUser) Session {
	return Session{
		Token: a.Token,
		User:  userFromService(a.User),
	}
}
