package common

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// ShortIDLen is the length of public item, order and inquiry identifiers.
const ShortIDLen = 8

func NewULID() (string, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// NewShortID returns the first 8 characters of a random UUID. Collisions are
// not checked by callers.
func NewShortID() string {
	return uuid.NewString()[:ShortIDLen]
}

// NewPublicRef is NewShortID upper-cased, used for order and inquiry references.
func NewPublicRef() string {
	return strings.ToUpper(NewShortID())
}
