// Package id provides the UUID identifiers used for offers, variations,
// modifications and materials.
package id

import (
	"fmt"

	"github.com/google/uuid"
)

// ID is a type alias for UUID, used across all entities.
type ID = uuid.UUID

// New generates a new time-ordered UUIDv7.
func New() ID {
	v, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return v
}

// Parse converts string to ID. The nil UUID is rejected: every persisted
// offer, variation or modification carries a generated identifier.
func Parse(s string) (ID, error) {
	v, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, err
	}
	if v == uuid.Nil {
		return uuid.Nil, fmt.Errorf("nil uuid is not a valid identifier")
	}
	return v, nil
}

// IsNil checks if ID is zero-value.
func IsNil(v ID) bool {
	return v == uuid.Nil
}
