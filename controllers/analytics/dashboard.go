package analyticsController

import (
	"log"

	"github.com/akshayrachakonda/course-enrollment/database"
	"github.com/akshayrachakonda/course-enrollment/middleware"
	"github.com/akshayrachakonda/course-enrollment/services/analytics"
	"github.com/akshayrachakonda/course-enrollment/services/authz"

	"github.com/gofiber/fiber/v2"
)

// GetDashboard returns the requesting instructor's dashboard metrics.
func GetDashboard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	role, _ := c.Locals("role").(string)

	p := authz.Principal{UserID: userID, Role: role}
	if decision := authz.Authorize(p, authz.ActionViewAnalytics, userID); !decision.Allowed {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, decision.Reason)
	}

	stats, err := analytics.Dashboard(c.UserContext(), database.Database.Db, userID)
	if err != nil {
		log.Printf("Error fetching analytics: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Server error")
	}

	return c.JSON(stats)
}
