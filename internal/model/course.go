package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Course describes a course offering and its capacity rules.
// It is immutable once built by NewCourse.
type Course struct {
	code             string
	title            string
	maxCapacity      int
	hasWaitlist      bool
	waitlistCapacity int
}

// NewCourse validates the capacity rules and builds a Course.
// waitlistCapacity is ignored and stored as 0 when hasWaitlist is false.
func NewCourse(code, title string, maxCapacity int, hasWaitlist bool, waitlistCapacity int) (Course, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Course{}, fmt.Errorf("%w: course code is required", ErrInvalidArgument)
	}
	if maxCapacity <= 0 {
		return Course{}, fmt.Errorf("%w: max capacity must be a positive integer", ErrInvalidArgument)
	}
	if hasWaitlist && waitlistCapacity <= 0 {
		return Course{}, fmt.Errorf("%w: waitlist capacity must be positive", ErrInvalidArgument)
	}
	if !hasWaitlist {
		waitlistCapacity = 0
	}

	return Course{
		code:             code,
		title:            title,
		maxCapacity:      maxCapacity,
		hasWaitlist:      hasWaitlist,
		waitlistCapacity: waitlistCapacity,
	}, nil
}

func (c Course) Code() string          { return c.code }
func (c Course) Title() string         { return c.title }
func (c Course) MaxCapacity() int      { return c.maxCapacity }
func (c Course) HasWaitlist() bool     { return c.hasWaitlist }
func (c Course) WaitlistCapacity() int { return c.waitlistCapacity }

type courseJSON struct {
	Code             string `json:"code"`
	Title            string `json:"title"`
	MaxCapacity      int    `json:"max_capacity"`
	HasWaitlist      bool   `json:"has_waitlist"`
	WaitlistCapacity int    `json:"waitlist_capacity"`
}

// MarshalJSON exposes the read-only fields of the course.
func (c Course) MarshalJSON() ([]byte, error) {
	return json.Marshal(courseJSON{
		Code:             c.code,
		Title:            c.title,
		MaxCapacity:      c.maxCapacity,
		HasWaitlist:      c.hasWaitlist,
		WaitlistCapacity: c.waitlistCapacity,
	})
}

// CreateCourseRequest is the payload for registering a new course.
type CreateCourseRequest struct {
	Code             string `json:"code" binding:"required,min=1,max=32,course_code"`
	Title            string `json:"title" binding:"required,min=1,max=200"`
	MaxCapacity      int    `json:"max_capacity" binding:"required,min=1"`
	HasWaitlist      bool   `json:"has_waitlist"`
	WaitlistCapacity int    `json:"waitlist_capacity" binding:"required_if=HasWaitlist true,min=0"`
}

// ToCourse runs the domain validation on the request.
func (r CreateCourseRequest) ToCourse() (Course, error) {
	return NewCourse(r.Code, r.Title, r.MaxCapacity, r.HasWaitlist, r.WaitlistCapacity)
}
