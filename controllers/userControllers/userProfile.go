package userProfileController

import (
	"errors"
	"log"

	"github.com/akshayrachakonda/course-enrollment/database"
	"github.com/akshayrachakonda/course-enrollment/middleware"
	"github.com/akshayrachakonda/course-enrollment/models"
	"github.com/akshayrachakonda/course-enrollment/services/authz"
	userValidator "github.com/akshayrachakonda/course-enrollment/validators/userValidator"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func currentPrincipal(c *fiber.Ctx) authz.Principal {
	p := authz.Principal{}
	if id, ok := c.Locals("userId").(uint); ok {
		p.UserID = id
	}
	if role, ok := c.Locals("role").(string); ok {
		p.Role = role
	}
	return p
}

// GetUserProfile returns a user record without the credential. Any
// authenticated user may read a profile.
func GetUserProfile(c *fiber.Ctx) error {
	p := currentPrincipal(c)
	targetID := c.Locals("targetUserID").(uint)

	if decision := authz.Authorize(p, authz.ActionViewProfile, targetID); !decision.Allowed {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, decision.Reason)
	}

	var user models.User
	if err := database.Database.Db.First(&user, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "User not found")
		}
		log.Printf("Error fetching user: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Server error")
	}

	return c.JSON(user)
}

// UpdateUserProfile mutates the caller's own record. Name, bio,
// specialization and experience only; role and email never change.
func UpdateUserProfile(c *fiber.Ctx) error {
	p := currentPrincipal(c)
	targetID := c.Locals("targetUserID").(uint)

	if decision := authz.Authorize(p, authz.ActionUpdateProfile, targetID); !decision.Allowed {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "Not authorized to update this profile")
	}

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "User not found")
		}
		log.Printf("Error fetching user: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Server error")
	}

	reqData, ok := c.Locals("validatedProfile").(*userValidator.UpdateProfileRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data")
	}

	if reqData.Name != "" {
		user.Name = reqData.Name
	}
	if reqData.Specialization != "" {
		user.Specialization = reqData.Specialization
	}
	if reqData.Experience != nil {
		user.Experience = *reqData.Experience
	}
	if reqData.Bio != "" {
		user.Bio = reqData.Bio
	}

	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error updating user: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Server error")
	}

	return c.JSON(user)
}
