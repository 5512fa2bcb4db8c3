package types

import "errors"

var (
	ErrInvalidMonth = errors.New("could not parse the month, use the YYYY-MM format")
	ErrInvalidDate  = errors.New("could not parse the date, use the YYYY-MM-DD format")
)
