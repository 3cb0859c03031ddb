package model

// AdmissionStatus is where an admitted student was placed.
type AdmissionStatus string

const (
	StatusEnrolled   AdmissionStatus = "enrolled"
	StatusWaitlisted AdmissionStatus = "waitlisted"
)

// Admission is the outcome of a successful enrollment request.
type Admission struct {
	CourseCode string          `json:"course_code"`
	Student    StudentInfo     `json:"student"`
	Status     AdmissionStatus `json:"status"`
	// Position is the zero-based place of the student in the roster it joined.
	Position int `json:"position"`
}

// Removal is the outcome of removing the front enrolled student from a course.
type Removal struct {
	CourseCode string       `json:"course_code"`
	Removed    StudentInfo  `json:"removed"`
	Promoted   *StudentInfo `json:"promoted"`
}

// CourseRoster is a snapshot of one course and both of its rosters,
// each ordered from highest to lowest priority.
type CourseRoster struct {
	Course   Course        `json:"course"`
	Enrolled []StudentInfo `json:"enrolled"`
	Waitlist []StudentInfo `json:"waitlist"`
}

// IsEmpty reports whether nobody is enrolled or waitlisted.
func (r CourseRoster) IsEmpty() bool {
	return len(r.Enrolled) == 0 && len(r.Waitlist) == 0
}
