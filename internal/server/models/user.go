// Package models holds the persistence entities owned by this service.
package models

import "time"

// User is an identity record. Email is stored lowercase and unique.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	RegisteredAt time.Time
}
