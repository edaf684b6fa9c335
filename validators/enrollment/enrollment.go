package enrollmentValidator

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"registra/middleware"
)

// EnrollmentList validates pagination and status filter query parameters
func EnrollmentList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page   *int   `json:"page"`
			Limit  *int   `json:"limit"`
			Status string `json:"status"`
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

		status := strings.ToUpper(strings.TrimSpace(c.Query("status")))
		if status != "" {
			validStatuses := map[string]bool{"ENROLLED": true, "DROPPED": true, "COMPLETED": true}
			if !validStatuses[status] {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Status must be ENROLLED, DROPPED, or COMPLETED!", nil)
			}
		}
		reqData.Status = status

		c.Locals("validatedEnrollmentList", reqData)
		return c.Next()
	}
}
