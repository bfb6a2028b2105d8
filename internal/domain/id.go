package domain

import "github.com/google/uuid"

// IDFunc produces fresh entity identifiers
type IDFunc func() string

// NewID returns a time-ordered identifier: a millisecond timestamp followed by
// random bits (UUIDv7). Collisions are not checked.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
