package domain

import "time"

type ID string

type User struct {
	ID           ID
	FullName     string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Profile is the outward projection of a User; it never carries the password hash.
type Profile struct {
	ID        ID        `json:"id"`
	FullName  string    `json:"fullName"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u User) Profile() Profile {
	return Profile{
		ID:        u.ID,
		FullName:  u.FullName,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
