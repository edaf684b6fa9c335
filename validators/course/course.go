package courseValidator

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"registra/middleware"
)

// CourseID validates the :id path parameter and stores it in Locals
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// CourseList validates catalog listing query parameters
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page       *int   `json:"page"`
			Limit      *int   `json:"limit"`
			Department string `json:"department"`
			Search     string `json:"search"`
		})

		if pageStr := c.Query("page"); pageStr != "" {
			page, err := strconv.Atoi(pageStr)
			if err != nil || page <= 0 {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid page number!", nil)
			}
			reqData.Page = &page
		}

		if limitStr := c.Query("limit"); limitStr != "" {
			limit, err := strconv.Atoi(limitStr)
			if err != nil || limit <= 0 || limit > 100 {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid limit!", nil)
			}
			reqData.Limit = &limit
		}

		reqData.Department = strings.TrimSpace(c.Query("department"))
		reqData.Search = strings.TrimSpace(c.Query("search"))

		c.Locals("validatedCourseList", reqData)
		return c.Next()
	}
}

// CreateCourseAdmin validates admin course creation request
func CreateCourseAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Code        string `json:"code"`
			Name        string `json:"name"`
			Instructor  string `json:"instructor"`
			Credits     int    `json:"credits"`
			TotalSeats  int    `json:"total_seats"`
			Schedule    string `json:"schedule"`
			Department  string `json:"department"`
			Description string `json:"description"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Code = strings.ToUpper(strings.TrimSpace(reqData.Code))
		reqData.Name = strings.TrimSpace(reqData.Name)
		reqData.Instructor = strings.TrimSpace(reqData.Instructor)
		reqData.Schedule = strings.TrimSpace(reqData.Schedule)
		reqData.Department = strings.TrimSpace(reqData.Department)

		if reqData.Code == "" {
			errors["code"] = "Course code is required!"
		} else if len(reqData.Code) < 3 {
			errors["code"] = "Course code must be at least 3 characters long!"
		}

		if reqData.Name == "" {
			errors["name"] = "Course name is required!"
		} else if len(reqData.Name) < 3 {
			errors["name"] = "Course name must be at least 3 characters long!"
		}

		if reqData.Credits <= 0 {
			errors["credits"] = "Credits must be a positive number!"
		}

		if reqData.TotalSeats < 0 {
			errors["total_seats"] = "Total seats cannot be negative!"
		}

		if reqData.Department == "" {
			errors["department"] = "Department is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourseAdmin validates admin course update request
func UpdateCourseAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(struct {
			Name        string `json:"name"`
			Instructor  string `json:"instructor"`
			Credits     *int   `json:"credits"`
			Schedule    string `json:"schedule"`
			Department  string `json:"department"`
			Description string `json:"description"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Name = strings.TrimSpace(reqData.Name)
		reqData.Instructor = strings.TrimSpace(reqData.Instructor)
		reqData.Schedule = strings.TrimSpace(reqData.Schedule)
		reqData.Department = strings.TrimSpace(reqData.Department)

		if reqData.Name != "" && len(reqData.Name) < 3 {
			errors["name"] = "Course name must be at least 3 characters long!"
		}

		if reqData.Credits != nil && *reqData.Credits <= 0 {
			errors["credits"] = "Credits must be a positive number!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// SetCapacity validates the capacity change request
func SetCapacity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(struct {
			TotalSeats *int `json:"total_seats"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.TotalSeats == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"total_seats": "Total seats is required!"})
		}
		if *reqData.TotalSeats < 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"total_seats": "Total seats cannot be negative!"})
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedCapacity", *reqData.TotalSeats)
		return c.Next()
	}
}
