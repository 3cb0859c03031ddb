// Package registry holds the in-memory enrollment state for every course and
// enforces the capacity, uniqueness and ordering rules on it.
//
// All operations are synchronous and do no I/O. A single mutex guards the
// whole registry so that capacity checks and inserts happen atomically.
package registry

import (
	"fmt"
	"sync"

	"github.com/stemsi/enrollment-backend/internal/model"
)

// DefaultInitialCapacity is the course-count hint used when none is given.
const DefaultInitialCapacity = 10

// entry is the per-course bundle of descriptor and rosters.
type entry struct {
	course   model.Course
	enrolled roster
	waitlist roster
}

func (e *entry) snapshot() model.CourseRoster {
	return model.CourseRoster{
		Course:   e.course,
		Enrolled: e.enrolled.students(),
		Waitlist: e.waitlist.students(),
	}
}

// Registry tracks courses and their enrolled and waitlisted students.
type Registry struct {
	mu      sync.Mutex
	courses map[string]*entry
	seq     uint64
}

// New creates an empty Registry. initialCapacity is only a sizing hint;
// the registry grows without bound. Values <= 0 fall back to DefaultInitialCapacity.
func New(initialCapacity int) *Registry {
	if initialCapacity <= 0 {
		initialCapacity = DefaultInitialCapacity
	}
	return &Registry{courses: make(map[string]*entry, initialCapacity)}
}

// RegisterCourse adds a course with empty rosters.
func (r *Registry) RegisterCourse(course model.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.courses[course.Code()]; ok {
		return fmt.Errorf("%w: course with code %s already exists", model.ErrDuplicateKey, course.Code())
	}
	r.courses[course.Code()] = &entry{course: course}
	return nil
}

// RemoveCourse deletes a course and all of its membership state.
func (r *Registry) RemoveCourse(code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.courses[code]; !ok {
		return notFound(code)
	}
	delete(r.courses, code)
	return nil
}

// Enroll admits a student into the first available slot of a course: the
// enrolled roster if it has room, otherwise the waitlist if it has room.
// Priority decides the position inside a roster, never eligibility, so an
// admitted student is never displaced by a later higher-priority request.
func (r *Registry) Enroll(student model.StudentInfo, code string) (model.Admission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.courses[code]
	if !ok {
		return model.Admission{}, notFound(code)
	}
	id := student.StudentID()
	if e.enrolled.contains(id) || e.waitlist.contains(id) {
		return model.Admission{}, fmt.Errorf("%w: student %s is already enrolled or waitlisted in %s", model.ErrDuplicateKey, id, code)
	}

	adm := model.Admission{CourseCode: code, Student: student}
	switch {
	case e.enrolled.len() < e.course.MaxCapacity():
		r.seq++
		adm.Status = model.StatusEnrolled
		adm.Position = e.enrolled.insert(student, r.seq)
	case !e.course.HasWaitlist():
		return model.Admission{}, &model.CapacityError{CourseCode: code, Reason: model.ReasonCourseFullNoWaitlist}
	case e.waitlist.len() < e.course.WaitlistCapacity():
		r.seq++
		adm.Status = model.StatusWaitlisted
		adm.Position = e.waitlist.insert(student, r.seq)
	default:
		return model.Admission{}, &model.CapacityError{CourseCode: code, Reason: model.ReasonWaitlistFull}
	}
	return adm, nil
}

// Unenroll removes the highest-priority enrolled student and, when the
// waitlist is not empty, promotes its highest-priority student into the
// enrolled roster.
func (r *Registry) Unenroll(code string) (model.Removal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.courses[code]
	if !ok {
		return model.Removal{}, notFound(code)
	}
	removed, ok := e.enrolled.popFront()
	if !ok {
		return model.Removal{}, fmt.Errorf("%w: no students to remove from %s", model.ErrEmptyCollection, code)
	}

	out := model.Removal{CourseCode: code, Removed: removed.student}
	// The freed slot always has room: enrolled was at most full before the pop.
	if next, ok := e.waitlist.popFront(); ok {
		e.enrolled.insert(next.student, next.seq)
		promoted := next.student
		out.Promoted = &promoted
	}
	return out, nil
}

// PeekFront returns the highest-priority enrolled student without removing it.
// The boolean is false when nobody is enrolled.
func (r *Registry) PeekFront(code string) (model.StudentInfo, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.courses[code]
	if !ok {
		return model.StudentInfo{}, false, notFound(code)
	}
	s, ok := e.enrolled.front()
	return s, ok, nil
}

// ListEnrollments returns a snapshot of one course's rosters.
func (r *Registry) ListEnrollments(code string) (model.CourseRoster, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.courses[code]
	if !ok {
		return model.CourseRoster{}, notFound(code)
	}
	return e.snapshot(), nil
}

// ListAll returns a snapshot of every course. The order of courses is unspecified.
func (r *Registry) ListAll() []model.CourseRoster {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.CourseRoster, 0, len(r.courses))
	for _, e := range r.courses {
		out = append(out, e.snapshot())
	}
	return out
}

// CourseCount returns the number of registered courses.
func (r *Registry) CourseCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.courses)
}

func notFound(code string) error {
	return fmt.Errorf("%w: course %s", model.ErrNotFound, code)
}
