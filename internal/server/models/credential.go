package models

import "time"

// Credential is the stored login record of a user. It is created once at
// signup and read on every login.
type Credential struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	PasswordSalt string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Principal returns the identity asserted by this credential.
func (c *Credential) Principal() *Principal {
	return &Principal{UserID: c.ID, Username: c.Username}
}
