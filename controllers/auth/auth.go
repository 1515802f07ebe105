package authController

import (
	"errors"
	"log"

	"github.com/akshayrachakonda/course-enrollment/config"
	"github.com/akshayrachakonda/course-enrollment/database"
	"github.com/akshayrachakonda/course-enrollment/middleware"
	"github.com/akshayrachakonda/course-enrollment/models"
	authValidator "github.com/akshayrachakonda/course-enrollment/validators/auth"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Register creates a user account. Role is fixed here and never changes
// afterwards; emails are stored lowercased so uniqueness is
// case-insensitive.
func Register(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUser").(*authValidator.RegisterRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data")
	}

	db := database.Database.Db

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Server error")
	}

	newUser := models.User{
		Name:           reqData.Name,
		Email:          reqData.Email,
		Password:       string(hashedPassword),
		Role:           reqData.Role,
		Specialization: reqData.Specialization,
		Bio:            reqData.Bio,
	}
	if reqData.Experience != nil {
		newUser.Experience = *reqData.Experience
	}

	// The unique index decides duplicates, not a prior read.
	if err := db.Create(&newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Email is already registered")
		}
		log.Printf("Error saving user to database: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Server error")
	}

	token, err := middleware.GenerateJWT(newUser.ID, newUser.Name, newUser.Role, newUser.Email)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Server error")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  newUser,
	})
}

// Login verifies credentials and issues a bearer token.
func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*authValidator.LoginRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data")
	}

	var user models.User
	if err := database.Database.Db.Where("email = ?", reqData.Email).First(&user).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Server error")
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}
