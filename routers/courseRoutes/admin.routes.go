package courseRoutes

import (
	"github.com/gofiber/fiber/v2"

	adminControllers "registra/controllers/admin"
	courseControllers "registra/controllers/course"
	"registra/middleware"
	"registra/models"
	courseValidators "registra/validators/course"
)

// SetupAdminCourseRoutes sets up all admin course management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/course", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin))

	// Course CRUD
	adminGroup.Post("/create", courseValidators.CreateCourseAdmin(), courseControllers.AdminCreateCourse)
	adminGroup.Put("/:id", courseValidators.UpdateCourseAdmin(), courseControllers.AdminUpdateCourse)
	adminGroup.Put("/:id/capacity", courseValidators.SetCapacity(), courseControllers.AdminSetCapacity)
	adminGroup.Delete("/:id", courseValidators.CourseID(), courseControllers.AdminDeleteCourse)
	adminGroup.Get("/list", courseControllers.AdminGetAllCourses)

	// Enrollment ledger per course
	adminGroup.Get("/:id/enrollments", courseValidators.CourseID(), courseControllers.AdminGetCourseEnrollments)

	// Students
	studentGroup := app.Group("/admin/students", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin))
	studentGroup.Get("/", adminControllers.AdminGetStudents)

	// Dashboard
	dashGroup := app.Group("/admin/dashboard", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin))
	dashGroup.Get("/stats", adminControllers.AdminDashboardStats)
}
