package domain

import "time"

// Account is the single admin identity allowed to manage portfolio content.
type Account struct {
	ID           int64
	Email        string
	FullName     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is the public part of an Account. It is what ends up in tokens and
// request contexts; the password hash never does.
type Identity struct {
	ID          int64
	Email       string
	DisplayName string
}

// Identity strips the secret fields from the account.
func (a Account) Identity() Identity {
	return Identity{
		ID:          a.ID,
		Email:       a.Email,
		DisplayName: a.FullName,
	}
}
