package domain

import "time"

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // never serialized; response shapes live in the handler layer
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
