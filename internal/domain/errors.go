package domain

import "errors"

// Domain errors
var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInternalError       = errors.New("internal error")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidDirection    = errors.New("invalid direction")
	ErrInvalidDate         = errors.New("invalid date")
	ErrNoteTooLong         = errors.New("note exceeds maximum length")
	ErrLabelRequired       = errors.New("label is required")
	ErrLabelTooLong        = errors.New("label exceeds maximum length")
	ErrUnknownIcon         = errors.New("unknown icon")
	ErrInvalidRange        = errors.New("range start must not be after range end")
	ErrInvalidViewMode     = errors.New("invalid view mode")
	ErrInvalidRangeFilter  = errors.New("invalid range filter")
	ErrCustomRangeRequired = errors.New("custom view mode requires start and end")
)
