package domain

import "errors"

var (
	// ErrDataUnavailable is returned when neither the PO nor the PAR source
	// produced any monthly aggregate rows.
	ErrDataUnavailable = errors.New("no historical data available")

	// ErrInvalidAmount is returned for negative, non-numeric or out of range
	// amounts handed to the words converter.
	ErrInvalidAmount = errors.New("invalid amount")

	ErrNotFound = errors.New("not found")
)
