package models

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// NewID returns a random unique record identifier.
func NewID() string {
	return uuid.NewString()
}

// NextNumericID derives an identifier from the millisecond epoch of now,
// bumping by one millisecond for as long as the candidate collides with an
// identifier already present in existing. Identifiers are compared as
// strings, which is also how they are stored.
func NextNumericID(now time.Time, existing map[string]struct{}) string {
	ms := now.UnixMilli()
	for {
		id := strconv.FormatInt(ms, 10)
		if _, taken := existing[id]; !taken {
			return id
		}
		ms++
	}
}
