package userValidator

import (
	"strconv"
	"strings"

	"github.com/akshayrachakonda/course-enrollment/middleware"

	"github.com/gofiber/fiber/v2"
)

type UpdateProfileRequest struct {
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Experience     *int   `json:"experience"`
	Bio            string `json:"bio"`
}

// UpdateProfile validates a profile update. Role and email are
// immutable and not accepted here.
func UpdateProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateProfileRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}

		errors := make(map[string]string)

		reqData.Name = strings.TrimSpace(reqData.Name)
		reqData.Specialization = strings.TrimSpace(reqData.Specialization)
		reqData.Bio = strings.TrimSpace(reqData.Bio)

		if reqData.Name != "" {
			if len(reqData.Name) < 2 {
				errors["name"] = "Name must be at least 2 characters long!"
			} else if len(reqData.Name) > 50 {
				errors["name"] = "Name cannot exceed 50 characters!"
			}
		}
		if len(reqData.Specialization) > 100 {
			errors["specialization"] = "Specialization cannot exceed 100 characters!"
		}
		if reqData.Experience != nil && *reqData.Experience < 0 {
			errors["experience"] = "Experience cannot be negative!"
		}
		if len(reqData.Bio) > 500 {
			errors["bio"] = "Bio cannot exceed 500 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProfile", reqData)
		return c.Next()
	}
}

// UserID validates the :id route parameter.
func UserID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid user ID")
		}

		c.Locals("targetUserID", uint(id))
		return c.Next()
	}
}
