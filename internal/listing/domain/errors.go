package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrListingNotFound      = errors.New("listing not found")
	ErrNotOwner             = errors.New("user is not the owner of this listing")
	ErrInvalidPromotionType = errors.New("invalid promotion type")
	ErrInvalidListingData   = errors.New("invalid listing data")
)

// MissingFieldsError enumerates which required listing fields were absent
// from a create request.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}
