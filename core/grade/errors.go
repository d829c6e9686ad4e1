package grade

import "errors"

var (
	ErrInvalidGrade       = errors.New("grade is not on the grade scale")
	ErrUnknownSemester    = errors.New("unknown semester")
	ErrNotInitialized     = errors.New("semester is not initialized")
	ErrAlreadyInitialized = errors.New("semester is already initialized")
	// ErrTargetReached: the semester already holds as many records as its target.
	ErrTargetReached = errors.New("semester target already reached")
	ErrNotComplete   = errors.New("semester is not complete")
)
