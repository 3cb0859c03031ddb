package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/enrollment-backend/internal/model"
	"github.com/stemsi/enrollment-backend/internal/response"
	"github.com/stemsi/enrollment-backend/internal/service"
	"github.com/stemsi/enrollment-backend/internal/validator"
)

// CourseHandler exposes course registration and enrollment over HTTP.
type CourseHandler struct {
	enrollmentService *service.EnrollmentService
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(enrollmentService *service.EnrollmentService) *CourseHandler {
	return &CourseHandler{enrollmentService: enrollmentService}
}

// ListCourses godoc
// GET /api/v1/courses
// Lists every course with its enrolled students and waitlist.
func (h *CourseHandler) ListCourses(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"course_count": h.enrollmentService.CourseCount(),
		"courses":      h.enrollmentService.ListAll(),
	})
}

// CreateCourse godoc
// POST /api/v1/courses
// Registers a new course.
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req model.CreateCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course, err := req.ToCourse()
	if err != nil {
		response.FailWithError(c, err)
		return
	}

	if err := h.enrollmentService.RegisterCourse(c.Request.Context(), course); err != nil {
		response.FailWithError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"course": course})
}

// GetCourse godoc
// GET /api/v1/courses/:code
// Returns one course with its enrolled students and waitlist.
func (h *CourseHandler) GetCourse(c *gin.Context) {
	roster, err := h.enrollmentService.ListEnrollments(c.Param("code"))
	if err != nil {
		response.FailWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, roster)
}

// DeleteCourse godoc
// DELETE /api/v1/courses/:code
// Removes a course and all of its enrollments.
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	if err := h.enrollmentService.RemoveCourse(c.Request.Context(), c.Param("code")); err != nil {
		response.FailWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "course removed successfully"})
}

// Enroll godoc
// POST /api/v1/courses/:code/enrollments
// Enrolls a student, or waitlists them when the course is full.
func (h *CourseHandler) Enroll(c *gin.Context) {
	var req model.EnrollStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student, err := req.ToStudent()
	if err != nil {
		response.FailWithError(c, err)
		return
	}

	adm, err := h.enrollmentService.Enroll(c.Request.Context(), student, c.Param("code"))
	if err != nil {
		response.FailWithError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, adm)
}

// PeekFront godoc
// GET /api/v1/courses/:code/enrollments/front
// Returns the highest-priority enrolled student, or null when nobody is enrolled.
func (h *CourseHandler) PeekFront(c *gin.Context) {
	front, ok, err := h.enrollmentService.PeekFront(c.Param("code"))
	if err != nil {
		response.FailWithError(c, err)
		return
	}

	var student *model.StudentInfo
	if ok {
		student = &front
	}
	response.Success(c, http.StatusOK, gin.H{"student": student})
}

// Unenroll godoc
// DELETE /api/v1/courses/:code/enrollments/front
// Removes the highest-priority enrolled student and promotes from the waitlist.
func (h *CourseHandler) Unenroll(c *gin.Context) {
	rm, err := h.enrollmentService.Unenroll(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.FailWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, rm)
}
