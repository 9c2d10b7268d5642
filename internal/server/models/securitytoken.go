package models

import "time"

// SecurityTokenType distinguishes the single-use token kinds.
type SecurityTokenType string

const (
	TokenTypeEmailConfirm SecurityTokenType = "EMAIL_CONFIRM"
	TokenTypeReset        SecurityTokenType = "RESET"
)

// SecurityToken is a single-use credential for an out-of-band action
// (email confirmation or password reset). Token strings are random UUIDs,
// unique across all tokens. Used flips false -> true exactly once; the
// repository enforces that with a conditional update.
//
// CreationDate and ExpiryDate are calendar dates: a token is eligible only
// while ExpiryDate is strictly after today. Expired tokens are not purged;
// they just become permanently unusable.
type SecurityToken struct {
	ID           int64
	TokenType    SecurityTokenType
	Token        string
	CreationDate time.Time
	ExpiryDate   time.Time
	Used         bool
	OwnerUserID  string
}
