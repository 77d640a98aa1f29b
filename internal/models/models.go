package models

import "time"

// User is a registered account. Email is the login key and is unique.
type User struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // don’t expose hash
}

// Blog is a single post. UserID references the owning user's ID but is
// not enforced as a foreign key at the storage layer.
type Blog struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
