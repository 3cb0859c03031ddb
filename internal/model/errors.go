package model

import (
	"errors"
	"fmt"
)

// Error kinds returned by the enrollment core. Operations wrap these with
// context, so callers should match them with errors.Is.
var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrDuplicateKey     = errors.New("duplicate key")
	ErrNotFound         = errors.New("not found")
	ErrCapacityExceeded = errors.New("capacity exceeded")
	ErrEmptyCollection  = errors.New("empty collection")
)

// CapacityReason tells apart the two ways an enrollment can be rejected for capacity.
type CapacityReason string

const (
	ReasonCourseFullNoWaitlist CapacityReason = "course_full_no_waitlist"
	ReasonWaitlistFull         CapacityReason = "waitlist_full"
)

// CapacityError is returned when a course and, if it has one, its waitlist are full.
type CapacityError struct {
	CourseCode string
	Reason     CapacityReason
}

func (e *CapacityError) Error() string {
	switch e.Reason {
	case ReasonCourseFullNoWaitlist:
		return fmt.Sprintf("course %s is full and no waitlist is available", e.CourseCode)
	default:
		return fmt.Sprintf("course %s is full and its waitlist is full", e.CourseCode)
	}
}

// Is makes CapacityError match ErrCapacityExceeded.
func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacityExceeded
}

// KindOf returns a short name for the error kind of err, or "internal" when
// err is not one of the core kinds.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, ErrDuplicateKey):
		return "duplicate_key"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, ErrEmptyCollection):
		return "empty_collection"
	default:
		return "internal"
	}
}
