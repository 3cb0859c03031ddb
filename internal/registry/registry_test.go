package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/stemsi/enrollment-backend/internal/model"
)

// The helpers take require.TestingT so they also work inside rapid.Check.
func course(t require.TestingT, code string, maxCap int, waitlist bool, wlCap int) model.Course {
	c, err := model.NewCourse(code, code+" title", maxCap, waitlist, wlCap)
	require.NoError(t, err)
	return c
}

func student(t require.TestingT, name string, year int, honors bool, id string) model.StudentInfo {
	s, err := model.NewStudentInfo(name, year, honors, id)
	require.NoError(t, err)
	return s
}

func ids(students []model.StudentInfo) []string {
	out := make([]string, len(students))
	for i, s := range students {
		out[i] = s.StudentID()
	}
	return out
}

func TestRegistry_RegisterCourse_Duplicate(t *testing.T) {
	r := New(0)
	require.NoError(t, r.RegisterCourse(course(t, "CS101", 1, false, 0)))

	err := r.RegisterCourse(course(t, "CS101", 5, true, 2))
	require.ErrorIs(t, err, model.ErrDuplicateKey)
	assert.Equal(t, 1, r.CourseCount())

	roster, err := r.ListEnrollments("CS101")
	require.NoError(t, err)
	assert.Equal(t, 1, roster.Course.MaxCapacity(), "original course must be kept")
}

func TestRegistry_GrowsPastInitialCapacity(t *testing.T) {
	r := New(2)
	for i := range 25 {
		require.NoError(t, r.RegisterCourse(course(t, fmt.Sprintf("C%02d", i), 1, false, 0)))
	}
	assert.Equal(t, 25, r.CourseCount())
	assert.Len(t, r.ListAll(), 25)
}

func TestRegistry_RegisterRemoveRoundTrip(t *testing.T) {
	r := New(0)
	require.NoError(t, r.RegisterCourse(course(t, "KEEP", 1, false, 0)))
	before := r.CourseCount()

	require.NoError(t, r.RegisterCourse(course(t, "TMP", 1, false, 0)))
	require.NoError(t, r.RemoveCourse("TMP"))
	assert.Equal(t, before, r.CourseCount())

	_, err := r.Enroll(student(t, "A", 1, false, "S1"), "TMP")
	require.ErrorIs(t, err, model.ErrNotFound)
	require.ErrorIs(t, r.RemoveCourse("TMP"), model.ErrNotFound)
}

func TestRegistry_CapacitySequence(t *testing.T) {
	r := New(0)
	require.NoError(t, r.RegisterCourse(course(t, "CS", 2, true, 1)))

	adm, err := r.Enroll(student(t, "A", 1, false, "S1"), "CS")
	require.NoError(t, err)
	assert.Equal(t, model.StatusEnrolled, adm.Status)

	adm, err = r.Enroll(student(t, "B", 2, false, "S2"), "CS")
	require.NoError(t, err)
	assert.Equal(t, model.StatusEnrolled, adm.Status)

	adm, err = r.Enroll(student(t, "C", 3, false, "S3"), "CS")
	require.NoError(t, err)
	assert.Equal(t, model.StatusWaitlisted, adm.Status)

	_, err = r.Enroll(student(t, "D", 4, true, "S4"), "CS")
	require.ErrorIs(t, err, model.ErrCapacityExceeded)
	var capErr *model.CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, model.ReasonWaitlistFull, capErr.Reason)

	roster, err := r.ListEnrollments("CS")
	require.NoError(t, err)
	assert.Len(t, roster.Enrolled, 2)
	assert.Len(t, roster.Waitlist, 1)
}

func TestRegistry_FullWithoutWaitlist(t *testing.T) {
	r := New(0)
	require.NoError(t, r.RegisterCourse(course(t, "CS", 1, false, 0)))
	_, err := r.Enroll(student(t, "A", 1, false, "S1"), "CS")
	require.NoError(t, err)

	_, err = r.Enroll(student(t, "B", 1, false, "S2"), "CS")
	var capErr *model.CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, model.ReasonCourseFullNoWaitlist, capErr.Reason)
}

func TestRegistry_DuplicateStudent(t *testing.T) {
	r := New(0)
	require.NoError(t, r.RegisterCourse(course(t, "CS", 1, true, 2)))
	_, err := r.Enroll(student(t, "A", 1, false, "S1"), "CS")
	require.NoError(t, err)
	_, err = r.Enroll(student(t, "B", 1, false, "S2"), "CS")
	require.NoError(t, err)

	// Same IDs with different other fields are still the same students.
	_, err = r.Enroll(student(t, "A again", 4, true, "S1"), "CS")
	require.ErrorIs(t, err, model.ErrDuplicateKey)
	_, err = r.Enroll(student(t, "B again", 2, false, "S2"), "CS")
	require.ErrorIs(t, err, model.ErrDuplicateKey)

	roster, err := r.ListEnrollments("CS")
	require.NoError(t, err)
	assert.Equal(t, []string{"S1"}, ids(roster.Enrolled))
	assert.Equal(t, []string{"S2"}, ids(roster.Waitlist))
}

func TestRegistry_SameStudentDifferentCourses(t *testing.T) {
	r := New(0)
	require.NoError(t, r.RegisterCourse(course(t, "A", 1, false, 0)))
	require.NoError(t, r.RegisterCourse(course(t, "B", 1, false, 0)))
	s := student(t, "A", 1, false, "S1")

	_, err := r.Enroll(s, "A")
	require.NoError(t, err)
	_, err = r.Enroll(s, "B")
	require.NoError(t, err)
}

func TestRegistry_UnenrollPromotes(t *testing.T) {
	r := New(0)
	require.NoError(t, r.RegisterCourse(course(t, "CS", 1, true, 1)))
	a := student(t, "A", 2, false, "SA")
	b := student(t, "B", 1, false, "SB")
	_, err := r.Enroll(a, "CS")
	require.NoError(t, err)
	_, err = r.Enroll(b, "CS")
	require.NoError(t, err)

	rm, err := r.Unenroll("CS")
	require.NoError(t, err)
	assert.True(t, rm.Removed.Equal(a))
	require.NotNil(t, rm.Promoted)
	assert.True(t, rm.Promoted.Equal(b))

	roster, err := r.ListEnrollments("CS")
	require.NoError(t, err)
	assert.Equal(t, []string{"SB"}, ids(roster.Enrolled))
	assert.Empty(t, roster.Waitlist)
}

func TestRegistry_UnenrollErrors(t *testing.T) {
	r := New(0)
	_, err := r.Unenroll("NOPE")
	require.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, r.RegisterCourse(course(t, "CS", 1, false, 0)))
	_, err = r.Unenroll("CS")
	require.ErrorIs(t, err, model.ErrEmptyCollection)
}

func TestRegistry_UnenrollServesHighestPriority(t *testing.T) {
	r := New(0)
	require.NoError(t, r.RegisterCourse(course(t, "CS", 4, false, 0)))
	for _, s := range []model.StudentInfo{
		student(t, "fresh", 1, false, "F"),
		student(t, "junior", 3, false, "J"),
		student(t, "senior", 4, false, "S"),
		student(t, "junior honors", 3, true, "JH"),
	} {
		_, err := r.Enroll(s, "CS")
		require.NoError(t, err)
	}

	var got []string
	for range 4 {
		rm, err := r.Unenroll("CS")
		require.NoError(t, err)
		got = append(got, rm.Removed.StudentID())
	}
	assert.Equal(t, []string{"S", "JH", "J", "F"}, got)
}

func TestRegistry_EqualPriorityIsFIFO(t *testing.T) {
	r := New(0)
	require.NoError(t, r.RegisterCourse(course(t, "CS", 3, false, 0)))
	for _, id := range []string{"1", "2", "3"} {
		_, err := r.Enroll(student(t, id, 2, false, id), "CS")
		require.NoError(t, err)
	}
	roster, err := r.ListEnrollments("CS")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, ids(roster.Enrolled))
}

func TestRegistry_PeekFront(t *testing.T) {
	r := New(0)
	_, _, err := r.PeekFront("CS")
	require.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, r.RegisterCourse(course(t, "CS", 2, false, 0)))
	_, ok, err := r.PeekFront("CS")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = r.Enroll(student(t, "low", 1, false, "L"), "CS")
	require.NoError(t, err)
	_, err = r.Enroll(student(t, "high", 4, true, "H"), "CS")
	require.NoError(t, err)

	front, ok, err := r.PeekFront("CS")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "H", front.StudentID())
	roster, err := r.ListEnrollments("CS")
	require.NoError(t, err)
	assert.Len(t, roster.Enrolled, 2, "peek must not remove")
}

func TestRegistry_SnapshotsAreCopies(t *testing.T) {
	r := New(0)
	require.NoError(t, r.RegisterCourse(course(t, "CS", 2, false, 0)))
	_, err := r.Enroll(student(t, "A", 1, false, "S1"), "CS")
	require.NoError(t, err)

	roster, err := r.ListEnrollments("CS")
	require.NoError(t, err)
	roster.Enrolled[0] = student(t, "X", 4, true, "X")

	again, err := r.ListEnrollments("CS")
	require.NoError(t, err)
	assert.Equal(t, []string{"S1"}, ids(again.Enrolled))
}

// TestRegistry_Scenario walks through the CS101 flow: first slot wins even
// against a higher-priority student, and removal promotes the waitlist.
func TestRegistry_Scenario(t *testing.T) {
	r := New(0)
	require.NoError(t, r.RegisterCourse(course(t, "CS101", 1, true, 1)))

	adm, err := r.Enroll(student(t, "A", 1, false, "S1"), "CS101")
	require.NoError(t, err)
	assert.Equal(t, model.StatusEnrolled, adm.Status)

	adm, err = r.Enroll(student(t, "B", 4, true, "S2"), "CS101")
	require.NoError(t, err)
	assert.Equal(t, model.StatusWaitlisted, adm.Status)

	_, err = r.Enroll(student(t, "C", 2, false, "S3"), "CS101")
	require.ErrorIs(t, err, model.ErrCapacityExceeded)

	rm, err := r.Unenroll("CS101")
	require.NoError(t, err)
	assert.Equal(t, "S1", rm.Removed.StudentID())
	require.NotNil(t, rm.Promoted)
	assert.Equal(t, "S2", rm.Promoted.StudentID())

	roster, err := r.ListEnrollments("CS101")
	require.NoError(t, err)
	assert.Equal(t, []string{"S2"}, ids(roster.Enrolled))
	assert.Empty(t, roster.Waitlist)
}

func TestRegistry_ConcurrentEnrollRespectsCapacity(t *testing.T) {
	r := New(0)
	require.NoError(t, r.RegisterCourse(course(t, "CS", 5, true, 3)))

	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, _ := model.NewStudentInfo("s", 1+i%4, i%2 == 0, fmt.Sprintf("S%d", i))
			if _, err := r.Enroll(s, "CS"); err == nil {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	roster, err := r.ListEnrollments("CS")
	require.NoError(t, err)
	assert.Equal(t, 8, admitted)
	assert.Len(t, roster.Enrolled, 5)
	assert.Len(t, roster.Waitlist, 3)
}

// TestRegistry_Invariants drives random operation sequences and checks the
// capacity, uniqueness and ordering invariants after every step.
func TestRegistry_Invariants(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		maxCap := rapid.IntRange(1, 4).Draw(rt, "maxCapacity")
		hasWaitlist := rapid.Bool().Draw(rt, "hasWaitlist")
		wlCap := rapid.IntRange(1, 3).Draw(rt, "waitlistCapacity")
		c := course(rt, "CS", maxCap, hasWaitlist, wlCap)

		r := New(0)
		require.NoError(rt, r.RegisterCourse(c))

		steps := rapid.IntRange(1, 40).Draw(rt, "steps")
		for range steps {
			before, err := r.ListEnrollments("CS")
			require.NoError(rt, err)

			if rapid.IntRange(0, 2).Draw(rt, "op") > 0 {
				id := rapid.StringMatching(`S[0-9]`).Draw(rt, "id")
				s := student(rt, "n", rapid.IntRange(1, 4).Draw(rt, "year"), rapid.Bool().Draw(rt, "honors"), id)
				_, err = r.Enroll(s, "CS")
			} else {
				_, err = r.Unenroll("CS")
			}

			after, lerr := r.ListEnrollments("CS")
			require.NoError(rt, lerr)
			if err != nil {
				require.Equal(rt, ids(before.Enrolled), ids(after.Enrolled), "failed op must not mutate")
				require.Equal(rt, ids(before.Waitlist), ids(after.Waitlist), "failed op must not mutate")
			}
			checkInvariants(rt, c, after)
		}
	})
}

func checkInvariants(t require.TestingT, c model.Course, roster model.CourseRoster) {
	require.LessOrEqual(t, len(roster.Enrolled), c.MaxCapacity())
	require.LessOrEqual(t, len(roster.Waitlist), c.WaitlistCapacity())
	if len(roster.Waitlist) > 0 {
		require.Equal(t, c.MaxCapacity(), len(roster.Enrolled), "waitlist is only used when the course is full")
	}

	seen := map[string]bool{}
	for _, list := range [][]model.StudentInfo{roster.Enrolled, roster.Waitlist} {
		for i, s := range list {
			require.False(t, seen[s.StudentID()], "duplicate membership for %s", s.StudentID())
			seen[s.StudentID()] = true
			if i > 0 {
				require.LessOrEqual(t, list[i-1].Priority(), s.Priority())
			}
		}
	}
}
