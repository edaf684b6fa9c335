package courseController

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"registra/database"
	"registra/middleware"
	"registra/models"
	"registra/registry"
)

// AdminCreateCourse creates a new catalog course
func AdminCreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*struct {
		Code        string `json:"code"`
		Name        string `json:"name"`
		Instructor  string `json:"instructor"`
		Credits     int    `json:"credits"`
		TotalSeats  int    `json:"total_seats"`
		Schedule    string `json:"schedule"`
		Department  string `json:"department"`
		Description string `json:"description"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	if err := db.Where("code = ? AND is_deleted = ?", reqData.Code, false).First(&models.Course{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course code already exists!", nil)
	}

	course := models.Course{
		Code:        reqData.Code,
		Name:        reqData.Name,
		Instructor:  reqData.Instructor,
		Credits:     reqData.Credits,
		TotalSeats:  reqData.TotalSeats,
		Schedule:    reqData.Schedule,
		Department:  reqData.Department,
		Description: reqData.Description,
	}

	if err := db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// AdminUpdateCourse updates catalog fields. Seat capacity has its own
// endpoint so it goes through the registry.
func AdminUpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
		Name        string `json:"name"`
		Instructor  string `json:"instructor"`
		Credits     *int   `json:"credits"`
		Schedule    string `json:"schedule"`
		Department  string `json:"department"`
		Description string `json:"description"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	updates := map[string]interface{}{}
	if reqData.Name != "" {
		updates["name"] = reqData.Name
	}
	if reqData.Instructor != "" {
		updates["instructor"] = reqData.Instructor
	}
	if reqData.Credits != nil {
		updates["credits"] = *reqData.Credits
	}
	if reqData.Schedule != "" {
		updates["schedule"] = reqData.Schedule
	}
	if reqData.Department != "" {
		updates["department"] = reqData.Department
	}
	if reqData.Description != "" {
		updates["description"] = reqData.Description
	}

	if len(updates) > 0 {
		if err := db.Model(&course).Updates(updates).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// AdminSetCapacity changes the seat ceiling through the registry
func AdminSetCapacity(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	seats := c.Locals("validatedCapacity").(int)

	err := registry.Default.Courses.SetCapacity(c.Context(), uint(courseID), seats)
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrCourseNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		case errors.Is(err, registry.ErrCapacityTooLow):
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Capacity cannot be lower than current enrollment!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update capacity!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Capacity updated successfully!", fiber.Map{
		"course_id":   courseID,
		"total_seats": seats,
	})
}

// AdminDeleteCourse retires a course. Courses with active enrollments
// are refused.
func AdminDeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	err := registry.Default.Courses.Retire(c.Context(), uint(courseID))
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrCourseNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		case errors.Is(err, registry.ErrCourseNotEmpty):
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course still has active enrollments!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// AdminGetAllCourses lists all live courses for the admin panel
func AdminGetAllCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := database.Database.Db.Where("is_deleted = ?", false).Order("code").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"total":   len(courses),
	})
}

// AdminGetCourseEnrollments lists the enrollment ledger for a course
// with student details
func AdminGetCourseEnrollments(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	records, err := registry.Default.Ledger.RecordsForCourse(c.Context(), uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	type EnrollmentWithStudent struct {
		models.Enrollment
		StudentName  string `json:"student_name"`
		StudentEmail string `json:"student_email"`
	}

	result := make([]EnrollmentWithStudent, len(records))
	for i, r := range records {
		var student models.User
		database.Database.Db.Select("name, email").Where("id = ?", r.StudentID).First(&student)
		result[i] = EnrollmentWithStudent{
			Enrollment:   r,
			StudentName:  student.Name,
			StudentEmail: student.Email,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": result,
		"total":       len(result),
	})
}
