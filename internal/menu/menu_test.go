package menu

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/enrollment-backend/internal/events"
	"github.com/stemsi/enrollment-backend/internal/registry"
	"github.com/stemsi/enrollment-backend/internal/service"
)

func runScript(t *testing.T, lines ...string) (string, *service.EnrollmentService) {
	t.Helper()
	svc := service.NewEnrollmentService(registry.New(0), events.Nop{}, zerolog.Nop())
	var out bytes.Buffer
	m := New(strings.NewReader(strings.Join(lines, "\n")+"\n"), &out, svc, false)
	require.NoError(t, m.Run(context.Background()))
	return out.String(), svc
}

func TestMenu_CS101Scenario(t *testing.T) {
	out, svc := runScript(t,
		"1", "CS101", "Intro to CS", "1", "t", "1",
		"2", "Alice", "4", "f", "A1", "CS101",
		"2", "Bob", "1", "f", "B1", "CS101",
		"2", "Carl", "2", "false", "C1", "CS101",
		"3", "CS101",
		"7", "CS101",
		"8",
	)

	assert.Contains(t, out, "Course added successfully.")
	assert.Contains(t, out, "Student successfully enrolled.")
	assert.Contains(t, out, "Course is full. Student has been waitlisted.")
	assert.Contains(t, out, "Waitlist is full. Enrollment is not available.")
	assert.Contains(t, out, "Removed student: Alice")
	assert.Contains(t, out, "Enrolled from waitlist: Bob")
	assert.Contains(t, out, "Enrollments for Course: Intro to CS (CS101)")
	assert.Contains(t, out, "Bob (Year: 1, ID: B1)")
	assert.True(t, strings.HasSuffix(out, "Exiting the system.\n"))

	r, err := svc.ListEnrollments("CS101")
	require.NoError(t, err)
	require.Len(t, r.Enrolled, 1)
	assert.Equal(t, "B1", r.Enrolled[0].StudentID())
	assert.Empty(t, r.Waitlist)
}

func TestMenu_DisplayAll(t *testing.T) {
	t.Run("no courses", func(t *testing.T) {
		out, _ := runScript(t, "4")
		assert.Equal(t, "There are no courses to display.\n", out)
	})

	t.Run("enrolled and empty courses", func(t *testing.T) {
		out, _ := runScript(t,
			"1", "MATH1", "Calculus", "2", "f",
			"1", "ART1", "Drawing", "1", "f",
			"2", "Dana", "3", "t", "D1", "MATH1",
			"4",
		)
		assert.Contains(t, out, "Enrollments for Course Code: ART1\nNo enrollments for this course.\n")
		assert.Contains(t, out, "Enrollments for Course Code: MATH1\nEnrolled Students:\nDana (Year: 3, Honors, ID: D1)\n")
		assert.Less(t, strings.Index(out, "ART1\n"), strings.Index(out, "MATH1\n"))
	})
}

func TestMenu_PeekFront(t *testing.T) {
	out, _ := runScript(t,
		"1", "CS1", "Intro", "2", "f",
		"5", "CS1",
		"2", "Eve", "2", "f", "E1", "CS1",
		"2", "Finn", "4", "t", "F1", "CS1",
		"5", "CS1",
		"5", "NOPE",
	)
	assert.Contains(t, out, "No students enrolled in this course.")
	assert.Contains(t, out, "Front student: Finn (Year: 4, Honors, ID: F1)")
	assert.True(t, strings.HasSuffix(out, "Course not found.\n"))
}

func TestMenu_Errors(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{"non numeric choice", []string{"abc"}, "Invalid input type. Please enter a number."},
		{"non numeric capacity", []string{"1", "CS1", "Intro", "many"}, "Invalid input type. Please enter a number."},
		{"unknown choice", []string{"9"}, "Invalid choice. Please try again."},
		{"duplicate course", []string{"1", "CS1", "A", "1", "f", "1", "CS1", "B", "1", "f"}, "Course with this code already exists."},
		{"no waitlist", []string{
			"1", "CS1", "A", "1", "f",
			"2", "Ann", "1", "f", "A1", "CS1",
			"2", "Ben", "1", "f", "B1", "CS1",
		}, "Course is full and no waitlist is available."},
		{"duplicate student", []string{
			"1", "CS1", "A", "2", "f",
			"2", "Ann", "1", "f", "A1", "CS1",
			"2", "Ann", "1", "f", "A1", "CS1",
		}, "Student already enrolled or waitlisted."},
		{"remove from empty course", []string{"1", "CS1", "A", "1", "f", "3", "CS1"}, "No students to remove."},
		{"remove unknown course", []string{"6", "CS9"}, "Course not found."},
		{"invalid year", []string{"1", "CS1", "A", "1", "f", "2", "Ann", "7", "f", "A1", "CS1"}, "An error occurred: invalid argument"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _ := runScript(t, tt.lines...)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestMenu_BoolReprompts(t *testing.T) {
	out, svc := runScript(t, "1", "CS1", "Intro", "1", "", "maybe", "TRUE", "2")
	assert.Equal(t, 2, strings.Count(out, "Invalid input. Please enter T/F or True/False."))
	assert.Contains(t, out, "Course added successfully.")

	r, err := svc.ListEnrollments("CS1")
	require.NoError(t, err)
	assert.True(t, r.Course.HasWaitlist())
	assert.Equal(t, 2, r.Course.WaitlistCapacity())
}

func TestMenu_RemoveCourse(t *testing.T) {
	out, svc := runScript(t, "1", "CS1", "Intro", "1", "f", "6", "CS1")
	assert.Contains(t, out, "Course CS1 removed successfully.")
	assert.Zero(t, svc.CourseCount())
}

func TestMenu_EndOfInputMidPrompt(t *testing.T) {
	svc := service.NewEnrollmentService(registry.New(0), events.Nop{}, zerolog.Nop())
	var out bytes.Buffer
	m := New(strings.NewReader("1\nCS1\n"), &out, svc, true)

	require.NoError(t, m.Run(context.Background()))
	assert.Contains(t, out.String(), "Welcome to the Course Selection System")
	assert.Contains(t, out.String(), "Enter course title: ")
	assert.Zero(t, svc.CourseCount())
}

func TestMenu_CancelledContext(t *testing.T) {
	svc := service.NewEnrollmentService(registry.New(0), events.Nop{}, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := New(strings.NewReader("4\n"), &bytes.Buffer{}, svc, false)
	assert.ErrorIs(t, m.Run(ctx), context.Canceled)
}

func TestParseBoolFlag(t *testing.T) {
	tests := []struct {
		in     string
		want   bool
		wantOK bool
	}{
		{"t", true, true},
		{"True", true, true},
		{"  TRUTHY ", true, true},
		{"F", false, true},
		{"false", false, true},
		{"", false, false},
		{"yes", false, false},
		{"1", false, false},
	}
	for _, tt := range tests {
		got, ok := ParseBoolFlag(tt.in)
		assert.Equal(t, tt.wantOK, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}
