package model

import (
	"cmp"
	"encoding/json"
	"fmt"
	"strings"
)

// Year is the student's year of study.
type Year int

const (
	YearFreshman  Year = 1
	YearSophomore Year = 2
	YearJunior    Year = 3
	YearSenior    Year = 4
)

// Label returns the English name of the year, or "" when out of range.
func (y Year) Label() string {
	switch y {
	case YearFreshman:
		return "Freshman"
	case YearSophomore:
		return "Sophomore"
	case YearJunior:
		return "Junior"
	case YearSenior:
		return "Senior"
	default:
		return ""
	}
}

// honorsBoost is subtracted from the priority of honors students so they rank
// ahead of non-honors students of the same year.
const honorsBoost = 0.5

// StudentInfo describes a student applying to a course.
// Identity is the student ID alone; the other fields only affect ordering and display.
type StudentInfo struct {
	name      string
	year      Year
	isHonors  bool
	studentID string
}

// NewStudentInfo validates the year and builds a StudentInfo.
func NewStudentInfo(name string, year int, isHonors bool, studentID string) (StudentInfo, error) {
	if year < int(YearFreshman) || year > int(YearSenior) {
		return StudentInfo{}, fmt.Errorf("%w: year must be between 1 (Freshman) and 4 (Senior), got %d", ErrInvalidArgument, year)
	}
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return StudentInfo{}, fmt.Errorf("%w: student ID is required", ErrInvalidArgument)
	}

	return StudentInfo{
		name:      name,
		year:      Year(year),
		isHonors:  isHonors,
		studentID: studentID,
	}, nil
}

func (s StudentInfo) Name() string      { return s.name }
func (s StudentInfo) Year() Year        { return s.year }
func (s StudentInfo) IsHonors() bool    { return s.isHonors }
func (s StudentInfo) StudentID() string { return s.studentID }

// Priority is the ordering key for enrollment rosters. Lower values are served first:
// seniors before juniors before sophomores before freshmen, honors first within a year.
func (s StudentInfo) Priority() float64 {
	p := float64(int(YearSenior) - int(s.year))
	if s.isHonors {
		p -= honorsBoost
	}
	return p
}

// Equal reports whether both values name the same student.
func (s StudentInfo) Equal(other StudentInfo) bool {
	return s.studentID == other.studentID
}

// CompareStudents orders students by ascending priority value.
func CompareStudents(a, b StudentInfo) int {
	return cmp.Compare(a.Priority(), b.Priority())
}

// String renders the student as "Name (Year: 3, Honors, ID: S1)".
func (s StudentInfo) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (Year: %d", s.name, s.year)
	if s.isHonors {
		b.WriteString(", Honors")
	}
	fmt.Fprintf(&b, ", ID: %s)", s.studentID)
	return b.String()
}

type studentJSON struct {
	Name      string  `json:"name"`
	Year      int     `json:"year"`
	YearLabel string  `json:"year_label"`
	IsHonors  bool    `json:"is_honors"`
	StudentID string  `json:"student_id"`
	Priority  float64 `json:"priority"`
}

// MarshalJSON exposes the student fields and the derived priority.
func (s StudentInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(studentJSON{
		Name:      s.name,
		Year:      int(s.year),
		YearLabel: s.year.Label(),
		IsHonors:  s.isHonors,
		StudentID: s.studentID,
		Priority:  s.Priority(),
	})
}

// EnrollStudentRequest is the payload for enrolling a student into a course.
type EnrollStudentRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	Year      int    `json:"year" binding:"required,min=1,max=4"`
	IsHonors  bool   `json:"is_honors"`
	StudentID string `json:"student_id" binding:"required,min=1,max=32"`
}

// ToStudent runs the domain validation on the request.
func (r EnrollStudentRequest) ToStudent() (StudentInfo, error) {
	return NewStudentInfo(r.Name, r.Year, r.IsHonors, r.StudentID)
}
