package lib

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/williamgparker144-crypto/DispatchLink-sub000/src/models"
)

// Returns a map with a message key for API responses
func MessageResponse(message string) fiber.Map {
	return fiber.Map{
		"message": message,
	}
}

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "fallback-secret-key"
	}
	return []byte(secret)
}

// Generates a JWT token for the given user ID
func GenerateJWT(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"userId": float64(userID),
		"exp":    time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(jwtSecret())
}

// Verifies and decodes a JWT token, returning its claims
func VerifyJWT(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return jwtSecret(), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
}

// Searches for a user by ID and excludes the password from the result
func FindUserByID(userID uint) (*models.User, error) {
	var user models.User
	err := DB.Preload("CarriersWorkedWith").First(&user, userID).Error
	if err != nil {
		return nil, err
	}

	user.Password = ""
	return &user, nil
}
