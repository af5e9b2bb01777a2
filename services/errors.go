package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound means the treatment/customer/therapist/entry id does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEntry means a natural-key collision, e.g. a second
	// bookkeeping entry for the same calendar day.
	ErrDuplicateEntry = errors.New("duplicate entry")
	// ErrDuplicateFeedback means a second feedback submission for the same treatment.
	ErrDuplicateFeedback = errors.New("feedback already submitted for this treatment")
)

// ValidationError reports the first invalid field found before any write.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func validationErr(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// translateDBError maps persistence-layer constraint violations onto the
// domain taxonomy so raw store errors never leak to callers.
func translateDBError(err error, onDuplicate error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return onDuplicate
	}
	return err
}
