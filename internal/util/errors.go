package util

import "errors"

var (
	ErrCourseNotFound     = errors.New("course not found")
	ErrModuleNotFound     = errors.New("module not found")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrCourseNotPublished = errors.New("course not published")
	ErrEmailRequired      = errors.New("email is required")
	ErrGenerationInFlight = errors.New("a generation for this lesson is already in progress")
	ErrInvalidBlockType   = errors.New("invalid content block type")
)
