package adminController

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"registra/database"
	"registra/middleware"
	"registra/models"
	"registra/registry"
)

// AdminDashboardStats returns the admin dashboard summary: utilization
// rate, totals and recent registrations
func AdminDashboardStats(c *fiber.Ctx) error {
	overview, err := registry.Default.Stats.Overview(c.Context())
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch dashboard stats!", nil)
	}

	// Recent registrations for the activity feed
	type RecentEnrollment struct {
		StudentName string    `json:"student_name"`
		CourseCode  string    `json:"course_code"`
		CourseName  string    `json:"course_name"`
		EnrolledAt  time.Time `json:"enrolled_at"`
	}

	var recentEnrollments []models.Enrollment
	database.Database.Db.Where("status = ?", models.EnrollmentStatusEnrolled).
		Order("created_at desc").Limit(5).Find(&recentEnrollments)

	recent := make([]RecentEnrollment, len(recentEnrollments))
	for i, e := range recentEnrollments {
		var student models.User
		var course models.Course
		database.Database.Db.Select("name").Where("id = ?", e.StudentID).First(&student)
		database.Database.Db.Select("code, name").Where("id = ?", e.CourseID).First(&course)
		recent[i] = RecentEnrollment{
			StudentName: student.Name,
			CourseCode:  course.Code,
			CourseName:  course.Name,
			EnrolledAt:  e.EnrolledAt,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"stats":              overview,
		"recent_enrollments": recent,
	})
}

// AdminGetStudents lists all student accounts with their academic
// profiles
func AdminGetStudents(c *fiber.Ctx) error {
	db := database.Database.Db

	var students []models.User
	if err := db.Where("role = ? AND is_deleted = ?", models.RoleStudent, false).
		Order("email").Find(&students).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch students!", nil)
	}

	type StudentWithProfile struct {
		models.User
		GPA          float64 `json:"gpa"`
		TotalCredits int     `json:"total_credits"`
	}

	result := make([]StudentWithProfile, len(students))
	for i, s := range students {
		s.Password = ""
		var profile models.StudentProfile
		db.Where("user_id = ?", s.ID).First(&profile)
		result[i] = StudentWithProfile{
			User:         s,
			GPA:          profile.GPA,
			TotalCredits: profile.TotalCredits,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Students fetched successfully!", fiber.Map{
		"students": result,
		"total":    len(result),
	})
}
