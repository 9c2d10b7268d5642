package models

// User is an account holder. UserID is the public identifier exposed over
// the API; ID is the database surrogate key. EncryptedPassword holds the
// bcrypt hash, never the plaintext.
type User struct {
	ID                int64
	UserID            string
	Name              string
	Email             string
	EncryptedPassword string
	EmailConfirmed    bool
}
