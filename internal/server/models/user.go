// Package models holds the persistent domain types of the auth service.
package models

import "time"

// User is a registered account. Email is the unique, case-sensitive lookup
// key; PasswordHash is an opaque digest produced by the hash package.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
