package domain

import "time"

type User struct {
	ID               string
	Username         string
	Email            string
	PasswordHash     string
	Verified         bool
	VerificationCode string

	CreatedAt time.Time
}
