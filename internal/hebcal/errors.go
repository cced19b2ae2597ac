package hebcal

import "errors"

// Input validation errors. They are returned wrapped with the offending value,
// so callers should match them with errors.Is.
var (
	ErrInvalidDay   = errors.New("invalid day of month")
	ErrInvalidMonth = errors.New("invalid month")
	ErrInvalidYear  = errors.New("invalid Hebrew year")
)
