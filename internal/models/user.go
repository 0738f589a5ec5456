package models

import "time"

// User is a registered account. Usernames are unique across the store;
// users are created once and never mutated or deleted.
type User struct {
	ID        string    `json:"_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"-"`
}
