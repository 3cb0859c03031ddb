package service

// CourseLoad summarizes how full one course is.
type CourseLoad struct {
	CourseCode    string `json:"course_code"`
	Enrolled      int    `json:"enrolled"`
	MaxCapacity   int    `json:"max_capacity"`
	Waitlisted    int    `json:"waitlisted"`
	WaitlistLimit int    `json:"waitlist_capacity"`
	Full          bool   `json:"full"`
}

// DashboardData consolidates registry-wide counts for the dashboard.
type DashboardData struct {
	TotalCourses    int          `json:"total_courses"`
	TotalEnrolled   int          `json:"total_enrolled"`
	TotalWaitlisted int          `json:"total_waitlisted"`
	OpenSeats       int          `json:"open_seats"`
	FullCourses     int          `json:"full_courses"`
	Courses         []CourseLoad `json:"courses"`
}

// DashboardService derives summary metrics from the enrollment registry.
type DashboardService struct {
	enrollments *EnrollmentService
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(enrollments *EnrollmentService) *DashboardService {
	return &DashboardService{enrollments: enrollments}
}

// GetDashboardData builds the summary from one snapshot of every course.
// Courses are ordered by code.
func (s *DashboardService) GetDashboardData() *DashboardData {
	all := s.enrollments.ListAll()
	data := &DashboardData{
		TotalCourses: len(all),
		Courses:      make([]CourseLoad, 0, len(all)),
	}

	for _, r := range all {
		load := CourseLoad{
			CourseCode:    r.Course.Code(),
			Enrolled:      len(r.Enrolled),
			MaxCapacity:   r.Course.MaxCapacity(),
			Waitlisted:    len(r.Waitlist),
			WaitlistLimit: r.Course.WaitlistCapacity(),
		}
		load.Full = load.Enrolled >= load.MaxCapacity

		data.TotalEnrolled += load.Enrolled
		data.TotalWaitlisted += load.Waitlisted
		data.OpenSeats += load.MaxCapacity - load.Enrolled
		if load.Full {
			data.FullCourses++
		}
		data.Courses = append(data.Courses, load)
	}

	return data
}
