package service

import (
	"context"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stemsi/enrollment-backend/internal/events"
	"github.com/stemsi/enrollment-backend/internal/model"
	"github.com/stemsi/enrollment-backend/internal/registry"
)

// EnrollmentService handles course enrollment for the menu and the HTTP API.
// The registry owns the state and rules; the service logs outcomes and
// publishes an event for every committed change.
type EnrollmentService struct {
	registry  *registry.Registry
	publisher events.Publisher
	log       zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService. A nil publisher discards events.
func NewEnrollmentService(reg *registry.Registry, publisher events.Publisher, log zerolog.Logger) *EnrollmentService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &EnrollmentService{
		registry:  reg,
		publisher: publisher,
		log:       log.With().Str("component", "enrollment_service").Logger(),
	}
}

// RegisterCourse adds a new course.
func (s *EnrollmentService) RegisterCourse(ctx context.Context, course model.Course) error {
	if err := s.registry.RegisterCourse(course); err != nil {
		s.logFailure(err, "register_course", course.Code())
		return err
	}

	s.log.Info().
		Str("course_code", course.Code()).
		Int("max_capacity", course.MaxCapacity()).
		Int("waitlist_capacity", course.WaitlistCapacity()).
		Msg("Course registered")
	s.publish(ctx, events.New(events.TypeCourseRegistered, course.Code(), nil))
	return nil
}

// RemoveCourse deletes a course together with its enrollments.
func (s *EnrollmentService) RemoveCourse(ctx context.Context, code string) error {
	if err := s.registry.RemoveCourse(code); err != nil {
		s.logFailure(err, "remove_course", code)
		return err
	}

	s.log.Info().Str("course_code", code).Msg("Course removed")
	s.publish(ctx, events.New(events.TypeCourseRemoved, code, nil))
	return nil
}

// Enroll places a student into a course or its waitlist.
func (s *EnrollmentService) Enroll(ctx context.Context, student model.StudentInfo, code string) (model.Admission, error) {
	adm, err := s.registry.Enroll(student, code)
	if err != nil {
		s.logFailure(err, "enroll", code)
		return adm, err
	}

	s.log.Info().
		Str("course_code", code).
		Str("student_id", student.StudentID()).
		Str("status", string(adm.Status)).
		Int("position", adm.Position).
		Msg("Student admitted")

	t := events.TypeStudentEnrolled
	if adm.Status == model.StatusWaitlisted {
		t = events.TypeStudentWaitlisted
	}
	s.publish(ctx, events.New(t, code, &student))
	return adm, nil
}

// Unenroll removes the front enrolled student and promotes from the waitlist.
func (s *EnrollmentService) Unenroll(ctx context.Context, code string) (model.Removal, error) {
	rm, err := s.registry.Unenroll(code)
	if err != nil {
		s.logFailure(err, "unenroll", code)
		return rm, err
	}

	ev := s.log.Info().
		Str("course_code", code).
		Str("removed_id", rm.Removed.StudentID())
	if rm.Promoted != nil {
		ev = ev.Str("promoted_id", rm.Promoted.StudentID())
	}
	ev.Msg("Student unenrolled")

	removed := rm.Removed
	s.publish(ctx, events.New(events.TypeStudentUnenrolled, code, &removed))
	if rm.Promoted != nil {
		s.publish(ctx, events.New(events.TypeStudentPromoted, code, rm.Promoted))
	}
	return rm, nil
}

// PeekFront returns the highest-priority enrolled student, if any.
func (s *EnrollmentService) PeekFront(code string) (model.StudentInfo, bool, error) {
	return s.registry.PeekFront(code)
}

// ListEnrollments returns one course's enrolled students and waitlist.
func (s *EnrollmentService) ListEnrollments(code string) (model.CourseRoster, error) {
	return s.registry.ListEnrollments(code)
}

// ListAll returns every course roster sorted by course code.
func (s *EnrollmentService) ListAll() []model.CourseRoster {
	all := s.registry.ListAll()
	slices.SortFunc(all, func(a, b model.CourseRoster) int {
		return strings.Compare(a.Course.Code(), b.Course.Code())
	})
	return all
}

// CourseCount returns the number of registered courses.
func (s *EnrollmentService) CourseCount() int {
	return s.registry.CourseCount()
}

func (s *EnrollmentService) publish(ctx context.Context, e events.Event) {
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.log.Warn().Err(err).
			Str("type", string(e.Type)).
			Str("course_code", e.CourseCode).
			Msg("Failed to publish enrollment event")
	}
}

func (s *EnrollmentService) logFailure(err error, op, code string) {
	s.log.Debug().Err(err).
		Str("op", op).
		Str("kind", model.KindOf(err)).
		Str("course_code", code).
		Msg("Enrollment operation rejected")
}
