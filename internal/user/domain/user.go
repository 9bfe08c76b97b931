package domain

import "time"

type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"-"` // bcrypt hash, never serialized

	// Favorites holds listing ids in insertion order so reads are stable.
	Favorites []string `json:"favorites"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
