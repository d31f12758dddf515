package lesson

import "errors"

var (
	ErrLessonNotFound   = errors.New("lesson not found")
	ErrTitleRequired    = errors.New("lesson title is required")
	ErrTitleLength      = errors.New("lesson title must be between 3 and 120 characters")
	ErrContentTooLong   = errors.New("lesson content exceeds maximum length")
	ErrOrderInvalid     = errors.New("lesson order must be non-negative")
	ErrInvalidDirection = errors.New("reorder direction must be up or down")
	ErrSwapIncomplete   = errors.New("lesson order swap did not apply")
)
