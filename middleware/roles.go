package middleware

import (
	"github.com/akshayrachakonda/course-enrollment/models"

	"github.com/gofiber/fiber/v2"
)

// Role gates. These run after JWTMiddleware and trust the role claim of
// the verified token; ownership checks against store state happen in
// the handlers through the authz gate.

func RequireInstructor(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	if c.Locals("role") != models.RoleInstructor {
		return ErrorResponse(c, fiber.StatusForbidden, "Access denied. Instructor role required.")
	}
	return c.Next()
}

func RequireStudent(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	if c.Locals("role") != models.RoleStudent {
		return ErrorResponse(c, fiber.StatusForbidden, "Access denied. Student role required.")
	}
	return c.Next()
}
