// Package events carries enrollment state changes out of the service layer:
// to in-process subscribers (the WebSocket stream) and to Redis pub/sub.
package events

import (
	"context"
	"errors"
	"time"

	"github.com/stemsi/enrollment-backend/internal/model"
)

// Type names a kind of enrollment state change.
type Type string

const (
	TypeCourseRegistered  Type = "course.registered"
	TypeCourseRemoved     Type = "course.removed"
	TypeStudentEnrolled   Type = "student.enrolled"
	TypeStudentWaitlisted Type = "student.waitlisted"
	TypeStudentUnenrolled Type = "student.unenrolled"
	TypeStudentPromoted   Type = "student.promoted"
)

// Event is one committed change to the registry.
type Event struct {
	Type       Type               `json:"type"`
	CourseCode string             `json:"course_code"`
	Student    *model.StudentInfo `json:"student,omitempty"`
	OccurredAt time.Time          `json:"occurred_at"`
}

// New builds an event stamped with the current UTC time.
func New(t Type, courseCode string, student *model.StudentInfo) Event {
	return Event{
		Type:       t,
		CourseCode: courseCode,
		Student:    student,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher delivers events somewhere.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// Multi publishes to each publisher in order and joins their errors.
// A failing publisher does not stop delivery to the rest.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
