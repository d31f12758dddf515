package course

import "errors"

var (
	ErrCourseNotFound = errors.New("course not found")
	ErrTitleRequired  = errors.New("course title is required")
)
