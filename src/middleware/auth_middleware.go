package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/williamgparker144-crypto/DispatchLink-sub000/src/lib"
	"github.com/williamgparker144-crypto/DispatchLink-sub000/src/models"
	"gorm.io/gorm"
)

// ProtectRoute is a middleware that checks for a valid JWT token, authenticates the user, and attaches user data to the request context
func ProtectRoute(c *fiber.Ctx) error {

	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized - no token provided",
		})
	}

	// Expected format: "Bearer <token>"
	var token string
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		token = authHeader[7:]
	} else {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized - invalid token format",
		})
	}

	decoded, err := lib.VerifyJWT(token)
	if err != nil || decoded == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized - invalid token",
		})
	}

	userID, ok := decoded["userId"].(float64)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized - invalid token",
		})
	}

	var user models.User
	err = lib.DB.Preload("CarriersWorkedWith").First(&user, uint(userID)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "User not found",
			})
		}
		lib.Log.Errorw("error loading authenticated user", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	user.Password = ""

	c.Locals("user", user)

	return c.Next()
}
