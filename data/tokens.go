package data

import (
	"time"

	"github.com/emzola/watchlist/internal/validator"
)

// ScopeAuthentication is the scope under which bearer tokens are issued.
const ScopeAuthentication = "authentication"

// Token defines an API token for a user. Only the SHA-256 hash is stored;
// the plaintext is returned to the client once at creation time.
type Token struct {
	Plaintext string    `json:"token"`
	Hash      []byte    `json:"-"`
	UserID    int64     `json:"-"`
	Expiry    time.Time `json:"expiry"`
	Scope     string    `json:"-"`
}

func ValidateTokenPlaintext(v *validator.Validator, tokenPlaintext string) {
	v.Check(tokenPlaintext != "", "token", "must be provided")
	v.Check(len(tokenPlaintext) == 26, "token", "must be 26 bytes long")
}
