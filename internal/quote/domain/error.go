package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("quote_not_found")
	ErrAlreadyConfirmed = errors.New("quote_already_confirmed")
	ErrEmptyQuote       = errors.New("empty_quote")
	ErrForbidden        = errors.New("quote_forbidden")
	ErrNotConfirmed     = errors.New("quote_not_confirmed")
	ErrMalformedPayload = errors.New("malformed_payload")
)

// InsufficientStockError aborts a confirmation when any line item exceeds the
// available stock. Quantities are aggregated per model before the check.
type InsufficientStockError struct {
	Model     string `json:"model"`
	Required  int    `json:"required"`
	Available int    `json:"available"`
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: required %d, available %d",
		e.Model, e.Required, e.Available)
}
