package authValidator

import (
	"regexp"
	"strings"

	"github.com/akshayrachakonda/course-enrollment/middleware"
	"github.com/akshayrachakonda/course-enrollment/models"

	"github.com/gofiber/fiber/v2"
)

// Helper to validate email format
func isValidEmail(email string) bool {
	re := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return re.MatchString(email)
}

type RegisterRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Role           string `json:"role"`
	Specialization string `json:"specialization"`
	Experience     *int   `json:"experience"`
	Bio            string `json:"bio"`
}

// Register validator middleware
func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RegisterRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}

		errors := make(map[string]string)

		// Validate Name
		name := strings.TrimSpace(reqData.Name)
		if len(name) < 2 {
			errors["name"] = "Name must be at least 2 characters long!"
		} else if len(name) > 50 {
			errors["name"] = "Name cannot exceed 50 characters!"
		}

		// Validate Email
		if reqData.Email == "" || !isValidEmail(strings.TrimSpace(reqData.Email)) {
			errors["email"] = "Invalid email!"
		}

		// Validate Password
		if len(reqData.Password) < 6 {
			errors["password"] = "Password must be at least 6 characters long!"
		}

		// Validate Role
		if reqData.Role != models.RoleStudent && reqData.Role != models.RoleInstructor {
			errors["role"] = "Role must be either \"student\" or \"instructor\"!"
		}

		// Instructor-only fields
		if len(strings.TrimSpace(reqData.Specialization)) > 100 {
			errors["specialization"] = "Specialization cannot exceed 100 characters!"
		}
		if reqData.Experience != nil && *reqData.Experience < 0 {
			errors["experience"] = "Experience cannot be negative!"
		}
		if len(strings.TrimSpace(reqData.Bio)) > 500 {
			errors["bio"] = "Bio cannot exceed 500 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData.Name = name
		reqData.Email = strings.ToLower(strings.TrimSpace(reqData.Email))
		reqData.Specialization = strings.TrimSpace(reqData.Specialization)
		reqData.Bio = strings.TrimSpace(reqData.Bio)

		c.Locals("validatedUser", reqData)
		return c.Next()
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login validator middleware
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LoginRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}

		errors := make(map[string]string)

		if reqData.Email == "" || !isValidEmail(strings.TrimSpace(reqData.Email)) {
			errors["email"] = "Invalid email!"
		}
		if reqData.Password == "" {
			errors["password"] = "Password is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData.Email = strings.ToLower(strings.TrimSpace(reqData.Email))

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}
