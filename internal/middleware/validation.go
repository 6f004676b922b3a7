package middleware

import (
	"errors"

	"github.com/google/uuid"
)

// ValidateTripID validates a trip ID.
func ValidateTripID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.New("invalid trip ID format")
	}
	return nil
}
