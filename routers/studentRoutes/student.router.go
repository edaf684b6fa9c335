package studentRoutes

import (
	"github.com/gofiber/fiber/v2"

	enrollmentControllers "registra/controllers/enrollment"
	studentControllers "registra/controllers/student"
	"registra/middleware"
	enrollmentValidators "registra/validators/enrollment"
)

// SetupStudentRoutes sets up the student profile and enrollment-list routes
func SetupStudentRoutes(app *fiber.App) {
	studentGroup := app.Group("/student")

	studentGroup.Get("/profile", middleware.JWTMiddleware, studentControllers.GetStudentProfile)
	studentGroup.Get("/dashboard", middleware.JWTMiddleware, studentControllers.GetStudentDashboard)
	studentGroup.Get("/enrollments", middleware.JWTMiddleware, enrollmentValidators.EnrollmentList(), enrollmentControllers.GetEnrollments)
}
