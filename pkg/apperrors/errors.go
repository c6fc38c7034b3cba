package apperrors

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrInvalidBarcode = errors.New("invalid barcode")
	ErrNoAnchorPart   = errors.New("no anchor part configured for catalog files")
)
