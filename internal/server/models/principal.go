package models

// Principal is the authenticated identity derived from a successful login or
// a valid bearer token. It is never persisted.
type Principal struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}
