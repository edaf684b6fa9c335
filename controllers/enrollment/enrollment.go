package enrollmentController

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"registra/database"
	"registra/middleware"
	"registra/models"
	"registra/registry"
	"registra/utils"
)

// EnrollInCourse reserves a seat for the caller through the coordinator
func EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	enrollment, err := registry.Default.Coordinator.Enroll(c.Context(), userID, uint(courseID))
	if err != nil {
		return coordinatorErrorResponse(c, err)
	}

	// Confirmation mail and webhook are best-effort, off the request path
	var student models.User
	var course models.Course
	database.Database.Db.Select("name, email").Where("id = ?", userID).First(&student)
	database.Database.Db.Select("code, name").Where("id = ?", courseID).First(&course)

	go utils.SendEnrollmentEmail(student.Email, student.Name, course.Code, course.Name)
	go utils.NotifyEnrollmentEvent(models.EventActionEnrolled, userID, uint(courseID), enrollment.Reference)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", enrollment)
}

// DropCourse releases the caller's seat. Safe to retry: a repeated drop
// of the same enrollment succeeds without touching the counter again.
func DropCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	if err := registry.Default.Coordinator.Drop(c.Context(), userID, uint(courseID)); err != nil {
		return coordinatorErrorResponse(c, err)
	}

	var student models.User
	var course models.Course
	database.Database.Db.Select("name, email").Where("id = ?", userID).First(&student)
	database.Database.Db.Select("code, name").Where("id = ?", courseID).First(&course)

	go utils.SendDropEmail(student.Email, student.Name, course.Code, course.Name)
	go utils.NotifyEnrollmentEvent(models.EventActionDropped, userID, uint(courseID), "")

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course dropped successfully!", nil)
}

// IsEnrolled reports whether the caller holds an active enrollment
func IsEnrolled(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	enrolled, err := registry.Default.Coordinator.IsEnrolled(c.Context(), userID, uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check enrollment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment status fetched successfully!", fiber.Map{
		"course_id": courseID,
		"enrolled":  enrolled,
	})
}

// GetEnrollments lists the caller's enrollment history with course data
func GetEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, _ := c.Locals("validatedEnrollmentList").(*struct {
		Page   *int   `json:"page"`
		Limit  *int   `json:"limit"`
		Status string `json:"status"`
	})

	page := 1
	limit := 20
	status := models.EnrollmentStatusEnrolled
	if reqData != nil && reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil {
		limit = *reqData.Limit
	}
	if reqData != nil && reqData.Status != "" {
		status = reqData.Status
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.Enrollment{}).
		Where("student_id = ? AND status = ?", userID, status).
		Preload("Course")

	var total int64
	db.Count(&total)

	var enrollments []models.Enrollment
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": enrollments,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// coordinatorErrorResponse maps the registry error taxonomy onto HTTP
func coordinatorErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, registry.ErrAlreadyEnrolled):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course!", nil)
	case errors.Is(err, registry.ErrCourseFull):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course is full!", nil)
	case errors.Is(err, registry.ErrNotEnrolled):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Not enrolled in this course!", nil)
	case errors.Is(err, registry.ErrCourseNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	case errors.Is(err, registry.ErrStudentNotFound):
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	case errors.Is(err, registry.ErrUnavailable):
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Registration is busy, please try again!", nil)
	default:
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process enrollment!", nil)
	}
}
