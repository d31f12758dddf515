package resource

import "errors"

var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrTitleRequired    = errors.New("resource title is required")
	ErrInvalidKind      = errors.New("resource kind must be file or url")
	ErrURLRequired      = errors.New("external url is required for url resources")
	ErrFileRequired     = errors.New("file is required for file resources")
)
