package progress

import "errors"

var ErrLessonNotInCourse = errors.New("lesson does not belong to course")
