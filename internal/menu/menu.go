// Package menu is the line-oriented console front end for the enrollment
// service. It reads answers from any io.Reader, so it runs the same against
// a terminal, a pipe or a test script.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/stemsi/enrollment-backend/internal/model"
	"github.com/stemsi/enrollment-backend/internal/service"
)

// Menu choices.
const (
	choiceAddCourse = iota + 1
	choiceAddStudent
	choiceRemoveStudent
	choiceDisplayAll
	choicePeekFront
	choiceRemoveCourse
	choiceViewCourse
	choiceExit
)

var (
	errExit      = errors.New("exit")
	errNotNumber = errors.New("not a number")
)

// Menu drives an EnrollmentService from text input.
type Menu struct {
	in          *bufio.Reader
	out         io.Writer
	svc         *service.EnrollmentService
	showPrompts bool
}

// New creates a Menu. When showPrompts is false the banner and the
// "Enter ..." prompts are suppressed and only results are written.
func New(in io.Reader, out io.Writer, svc *service.EnrollmentService, showPrompts bool) *Menu {
	return &Menu{
		in:          bufio.NewReader(in),
		out:         out,
		svc:         svc,
		showPrompts: showPrompts,
	}
}

// Run processes menu choices until the exit choice, end of input, or ctx is done.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.banner()
		line, err := m.ask("Enter your choice: ")
		if err != nil {
			return nil
		}
		choice, err := strconv.Atoi(line)
		if err != nil {
			m.println("Invalid input type. Please enter a number.")
			continue
		}

		err = m.dispatch(ctx, choice)
		switch {
		case err == nil:
		case errors.Is(err, errExit), errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, errNotNumber):
			m.println("Invalid input type. Please enter a number.")
		default:
			m.println(describe(err))
		}
	}
}

func (m *Menu) dispatch(ctx context.Context, choice int) error {
	switch choice {
	case choiceAddCourse:
		return m.addCourse(ctx)
	case choiceAddStudent:
		return m.addStudent(ctx)
	case choiceRemoveStudent:
		return m.removeStudent(ctx)
	case choiceDisplayAll:
		m.displayAll()
		return nil
	case choicePeekFront:
		return m.peekFront()
	case choiceRemoveCourse:
		return m.removeCourse(ctx)
	case choiceViewCourse:
		return m.viewCourse()
	case choiceExit:
		m.println("Exiting the system.")
		return errExit
	default:
		m.println("Invalid choice. Please try again.")
		return nil
	}
}

func (m *Menu) addCourse(ctx context.Context) error {
	code, err := m.ask("Enter course code: ")
	if err != nil {
		return err
	}
	title, err := m.ask("Enter course title: ")
	if err != nil {
		return err
	}
	maxCapacity, err := m.askInt("Enter maximum capacity: ")
	if err != nil {
		return err
	}
	hasWaitlist, err := m.askBool("Should the course have a waitlist? (T/F/True/False): ")
	if err != nil {
		return err
	}
	waitlistCapacity := 0
	if hasWaitlist {
		if waitlistCapacity, err = m.askInt("Enter waitlist capacity: "); err != nil {
			return err
		}
	}

	course, err := model.NewCourse(code, title, maxCapacity, hasWaitlist, waitlistCapacity)
	if err != nil {
		return err
	}
	if err := m.svc.RegisterCourse(ctx, course); err != nil {
		if errors.Is(err, model.ErrDuplicateKey) {
			m.println("Course with this code already exists.")
			return nil
		}
		return err
	}
	m.println("Course added successfully.")
	return nil
}

func (m *Menu) addStudent(ctx context.Context) error {
	name, err := m.ask("Enter student name: ")
	if err != nil {
		return err
	}
	year, err := m.askInt("Enter student year (1 = Freshman, 2 = Sophomore, 3 = Junior, 4 = Senior): ")
	if err != nil {
		return err
	}
	isHonors, err := m.askBool("Is the student honors? (true/false/T/F): ")
	if err != nil {
		return err
	}
	studentID, err := m.ask("Enter student ID: ")
	if err != nil {
		return err
	}
	code, err := m.ask("Enter course code: ")
	if err != nil {
		return err
	}

	student, err := model.NewStudentInfo(name, year, isHonors, studentID)
	if err != nil {
		return err
	}
	adm, err := m.svc.Enroll(ctx, student, code)
	if err != nil {
		if errors.Is(err, model.ErrDuplicateKey) {
			m.println("Student already enrolled or waitlisted.")
			return nil
		}
		return err
	}
	if adm.Status == model.StatusWaitlisted {
		m.println("Course is full. Student has been waitlisted.")
	} else {
		m.println("Student successfully enrolled.")
	}
	return nil
}

func (m *Menu) removeStudent(ctx context.Context) error {
	code, err := m.ask("Enter course code: ")
	if err != nil {
		return err
	}
	rm, err := m.svc.Unenroll(ctx, code)
	if err != nil {
		return err
	}
	m.println("Removed student: " + rm.Removed.Name())
	if rm.Promoted != nil {
		m.println("Enrolled from waitlist: " + rm.Promoted.Name())
	}
	return nil
}

func (m *Menu) displayAll() {
	if m.svc.CourseCount() == 0 {
		m.println("There are no courses to display.")
		return
	}
	for _, r := range m.svc.ListAll() {
		m.println("Enrollments for Course Code: " + r.Course.Code())
		if r.IsEmpty() {
			m.println("No enrollments for this course.")
		} else {
			m.printStudents("Enrolled Students:", r.Enrolled)
			m.printStudents("Waitlist:", r.Waitlist)
		}
		m.println("")
	}
}

func (m *Menu) peekFront() error {
	code, err := m.ask("Enter course code to peek at front student: ")
	if err != nil {
		return err
	}
	front, ok, err := m.svc.PeekFront(code)
	if err != nil {
		return err
	}
	if !ok {
		m.println("No students enrolled in this course.")
		return nil
	}
	m.println("Front student: " + front.String())
	return nil
}

func (m *Menu) removeCourse(ctx context.Context) error {
	code, err := m.ask("Enter course code to remove: ")
	if err != nil {
		return err
	}
	if err := m.svc.RemoveCourse(ctx, code); err != nil {
		return err
	}
	m.println("Course " + code + " removed successfully.")
	return nil
}

func (m *Menu) viewCourse() error {
	code, err := m.ask("Enter course code to view enrollment: ")
	if err != nil {
		return err
	}
	r, err := m.svc.ListEnrollments(code)
	if err != nil {
		return err
	}
	m.println(fmt.Sprintf("Enrollments for Course: %s (%s)", r.Course.Title(), r.Course.Code()))
	if len(r.Enrolled) == 0 {
		m.println("No students enrolled.")
	} else {
		m.printStudents("Enrolled Students:", r.Enrolled)
	}
	if len(r.Waitlist) > 0 {
		m.println("")
		m.printStudents("Waitlist:", r.Waitlist)
	}
	return nil
}

// ─── Input helpers ─────────────────────────────────────────────────────

// ask prints prompt and returns the next trimmed line. It returns io.EOF
// once the input is exhausted.
func (m *Menu) ask(prompt string) (string, error) {
	if m.showPrompts {
		fmt.Fprint(m.out, prompt)
	}
	line, err := m.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", io.EOF
	}
	return strings.TrimSpace(line), nil
}

func (m *Menu) askInt(prompt string) (int, error) {
	line, err := m.ask(prompt)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, errNotNumber
	}
	return n, nil
}

// askBool re-prompts until the answer starts with t or f.
func (m *Menu) askBool(prompt string) (bool, error) {
	for {
		line, err := m.ask(prompt)
		if err != nil {
			return false, err
		}
		if v, ok := ParseBoolFlag(line); ok {
			return v, nil
		}
		m.println("Invalid input. Please enter T/F or True/False.")
	}
}

// ParseBoolFlag reads a yes/no answer: anything starting with "t" is true,
// anything starting with "f" is false, case-insensitively. ok is false for
// every other input, including the empty string.
func ParseBoolFlag(s string) (v bool, ok bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(s, "t"):
		return true, true
	case strings.HasPrefix(s, "f"):
		return false, true
	default:
		return false, false
	}
}

// ─── Output helpers ────────────────────────────────────────────────────

func (m *Menu) banner() {
	if !m.showPrompts {
		return
	}
	m.println("")
	m.println("Welcome to the Course Selection System")
	m.println("1. Add Course")
	m.println("2. Add Student to Course")
	m.println("3. Remove Student from Course")
	m.println("4. Display All Enrollments")
	m.println("5. Peek at Front Student in a Course")
	m.println("6. Remove a Course")
	m.println("7. View Enrollment for a Specific Course")
	m.println("8. Exit")
}

func (m *Menu) printStudents(header string, students []model.StudentInfo) {
	if len(students) == 0 {
		return
	}
	m.println(header)
	for _, s := range students {
		m.println(s.String())
	}
}

func (m *Menu) println(s string) {
	fmt.Fprintln(m.out, s)
}

// describe turns a service error into the message shown to the user.
func describe(err error) string {
	var ce *model.CapacityError
	switch {
	case errors.As(err, &ce):
		if ce.Reason == model.ReasonWaitlistFull {
			return "Waitlist is full. Enrollment is not available."
		}
		return "Course is full and no waitlist is available."
	case errors.Is(err, model.ErrNotFound):
		return "Course not found."
	case errors.Is(err, model.ErrEmptyCollection):
		return "No students to remove."
	default:
		return "An error occurred: " + err.Error()
	}
}
