package studentController

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"registra/database"
	"registra/middleware"
	"registra/models"
)

// GetStudentProfile returns the caller's account and academic profile
func GetStudentProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}
	user.Password = ""

	var profile models.StudentProfile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch profile!", nil)
		}
		// Non-student accounts have no academic profile
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", fiber.Map{
		"user":          user,
		"gpa":           profile.GPA,
		"total_credits": profile.TotalCredits,
	})
}

// GetStudentDashboard returns the stat-card numbers for the student
// dashboard: active enrollment count, credit load and GPA
func GetStudentDashboard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var enrollments []models.Enrollment
	if err := db.Where("student_id = ? AND status = ?", userID, models.EnrollmentStatusEnrolled).
		Preload("Course").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch dashboard!", nil)
	}

	totalCredits := 0
	for _, e := range enrollments {
		totalCredits += e.Course.Credits
	}

	var profile models.StudentProfile
	db.Where("user_id = ?", userID).First(&profile)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"enrolled_courses": len(enrollments),
		"total_credits":    totalCredits,
		"gpa":              profile.GPA,
	})
}
