package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/williamgparker144-crypto/DispatchLink-sub000/src/lib"
	"github.com/williamgparker144-crypto/DispatchLink-sub000/src/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Signup handles user registration, validates input, checks for duplicates, hashes password, creates user, and returns a JWT
func Signup(c *fiber.Ctx) error {

	var userData struct {
		Name        string          `json:"name"`
		Username    string          `json:"username"`
		Email       string          `json:"email"`
		Password    string          `json:"password"`
		CompanyName string          `json:"companyName"`
		Role        models.UserRole `json:"role"`
		MCNumber    string          `json:"mcNumber"`
	}

	if err := c.BodyParser(&userData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if userData.Name == "" || userData.Username == "" || userData.Email == "" || userData.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "All fields are required",
		})
	}

	if len(userData.Password) < 6 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Password must be at least 6 characters",
		})
	}

	switch userData.Role {
	case "":
		userData.Role = models.RoleDispatcher
	case models.RoleDispatcher, models.RoleCarrier, models.RoleBroker, models.RoleAdvertiser:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid role",
		})
	}

	var existingUser models.User
	if err := lib.DB.Where("email = ?", userData.Email).First(&existingUser).Error; err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Email already exists",
		})
	}

	if err := lib.DB.Where("username = ?", userData.Username).First(&existingUser).Error; err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Username already exists",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(userData.Password), 11)
	if err != nil {
		lib.Log.Errorw("error hashing password", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}

	// Create user
	newUser := models.User{
		Name:        userData.Name,
		Username:    userData.Username,
		Email:       userData.Email,
		Password:    string(hashedPassword),
		CompanyName: userData.CompanyName,
		Role:        userData.Role,
		MCNumber:    userData.MCNumber,
	}

	if err := lib.DB.Create(&newUser).Error; err != nil {
		lib.Log.Errorw("error creating user", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create user",
		})
	}

	token, err := lib.GenerateJWT(newUser.ID)
	if err != nil {
		lib.Log.Errorw("error generating token", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to generate token",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"token":   token,
	})
}

// Login authenticates a user by username and password and returns a JWT
func Login(c *fiber.Ctx) error {

	var loginData struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.BodyParser(&loginData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if loginData.Username == "" || loginData.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Username and password are required",
		})
	}

	var user models.User
	err := lib.DB.Where("username = ?", loginData.Username).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid credentials",
			})
		}

		lib.Log.Errorw("error finding user", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(loginData.Password))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid credentials",
		})
	}

	token, err := lib.GenerateJWT(user.ID)
	if err != nil {
		lib.Log.Errorw("error generating token", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Logged in successfully",
		"token":   token,
	})
}

// GetCurrentUser returns the currently authenticated user's data
func GetCurrentUser(c *fiber.Ctx) error {

	user := c.Locals("user")
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Not authenticated",
		})
	}
	return c.JSON(user)
}

// Logout clears the authentication cookie to log out the user
func Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "jwt-dispatchlink",
		Value:    "",
		Expires:  time.Now().Add(-1 * time.Hour),
		HTTPOnly: true,
		SameSite: "Strict",
		Secure:   false, // true in production behind HTTPS
		Path:     "/",
	})
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Logged out successfully",
	})
}
