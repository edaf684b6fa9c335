package courseRoutes

import (
	"github.com/gofiber/fiber/v2"

	courseControllers "registra/controllers/course"
	enrollmentControllers "registra/controllers/enrollment"
	"registra/middleware"
	courseValidators "registra/validators/course"
)

// SetupCourseRoutes sets up the student-facing catalog and enrollment routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Catalog browsing
	courseGroup.Get("/list", middleware.JWTMiddleware, courseValidators.CourseList(), courseControllers.GetAllCourses)
	courseGroup.Get("/:id", middleware.JWTMiddleware, courseValidators.CourseID(), courseControllers.GetCourseDetails)

	// Registration
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, courseValidators.CourseID(), enrollmentControllers.EnrollInCourse)
	courseGroup.Post("/:id/drop", middleware.JWTMiddleware, courseValidators.CourseID(), enrollmentControllers.DropCourse)
	courseGroup.Get("/:id/enrolled", middleware.JWTMiddleware, courseValidators.CourseID(), enrollmentControllers.IsEnrolled)
}
