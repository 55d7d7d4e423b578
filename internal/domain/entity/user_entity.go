package entity

import (
	"time"
)

// User is the aggregate root for the identity domain.
// Password holds a bcrypt hash; RefreshToken is the single active session secret.
type User struct {
	ID           string
	Username     string
	Email        string
	FullName     string
	Password     string
	Bio          string
	Avatar       string
	CoverImage   string
	RefreshToken string
	WatchHistory []string // video IDs, most recent last
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserProfile is the sanitized shape of a User safe to return to clients.
type UserProfile struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullName"`
	Bio          string    `json:"bio"`
	Avatar       string    `json:"avatar"`
	CoverImage   string    `json:"coverImage"`
	WatchHistory []string  `json:"watchHistory"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Profile strips credential and session fields.
func (u *User) Profile() UserProfile {
	history := u.WatchHistory
	if history == nil {
		history = []string{}
	}
	return UserProfile{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FullName:     u.FullName,
		Bio:          u.Bio,
		Avatar:       u.Avatar,
		CoverImage:   u.CoverImage,
		WatchHistory: history,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
