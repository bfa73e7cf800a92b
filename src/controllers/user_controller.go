package controllers

import (
	"errors"
	"regexp"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/williamgparker144-crypto/DispatchLink-sub000/src/lib"
	"github.com/williamgparker144-crypto/DispatchLink-sub000/src/models"
	"github.com/williamgparker144-crypto/DispatchLink-sub000/src/services"
	"gorm.io/gorm"
)

// GetSuggestedConnections returns a list of suggested users for the current user to connect with
func GetSuggestedConnections(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	// IDs already linked to the user (accepted or pending, either direction)
	var connections []models.Connection
	err := lib.DB.
		Where("(sender_id = ? OR recipient_id = ?) AND status <> ?",
			user.ID, user.ID, models.ConnectionStatusRejected).
		Find(&connections).Error
	if err != nil {
		lib.Log.Errorw("error finding connections", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}

	excludedIDs := []uint{user.ID}
	for _, conn := range connections {
		excludedIDs = append(excludedIDs, conn.PeerID(user.ID))
	}

	var suggested []models.User
	err = lib.DB.
		Where("id NOT IN ?", excludedIDs).
		Where("role <> ?", models.RoleAdvertiser).
		Limit(3).
		Find(&suggested).Error
	if err != nil {
		lib.Log.Errorw("error finding suggested users", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error finding suggested users",
		})
	}

	suggestions := make([]models.UserDto, 0, len(suggested))
	for _, s := range suggested {
		suggestions = append(suggestions, s.ToDto())
	}

	return c.JSON(suggestions)
}

// GetPublicProfile returns the public profile of a user by username, including the computed verification tier
func GetPublicProfile(c *fiber.Ctx) error {

	username := c.Params("username")

	if username == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Username is required",
		})
	}

	var user models.User
	err := lib.DB.Preload("CarriersWorkedWith").
		Where("username = ?", username).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		}

		lib.Log.Errorw("error in GetPublicProfile", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	user.Password = ""

	tier := services.ClassifyDispatcher(user)

	return c.JSON(fiber.Map{
		"user":  user,
		"tier":  tier,
		"badge": tier.Badge(),
	})
}

// GetVerificationStatus returns a dispatcher's verification tier and badge by username
func GetVerificationStatus(c *fiber.Ctx) error {
	username := c.Params("username")

	var user models.User
	err := lib.DB.Preload("CarriersWorkedWith").
		Where("username = ?", username).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		}
		lib.Log.Errorw("error loading user for verification status", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	tier := services.ClassifyDispatcher(user)

	return c.JSON(fiber.Map{
		"tier":  tier,
		"badge": tier.Badge(),
	})
}

// UpdateProfile updates the authenticated user's profile with allowed fields
func UpdateProfile(c *fiber.Ctx) error {

	user := c.Locals("user").(models.User)

	var body struct {
		Name                   *string   `json:"name"`
		CompanyName            *string   `json:"companyName"`
		HeadLine               *string   `json:"headline"`
		About                  *string   `json:"about"`
		Location               *string   `json:"location"`
		ProfilePicture         *string   `json:"profilePicture"`
		CoverPicture           *string   `json:"coverPicture"`
		YearsExperience        *int      `json:"yearsExperience"`
		Specialties            *[]string `json:"specialties"`
		CarrierScoutSubscribed *bool     `json:"carrierScoutSubscribed"`
		MCNumber               *string   `json:"mcNumber"`
	}

	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	updates := map[string]interface{}{}
	if body.Name != nil {
		updates["name"] = *body.Name
	}
	if body.CompanyName != nil {
		updates["company_name"] = *body.CompanyName
	}
	if body.HeadLine != nil {
		updates["head_line"] = *body.HeadLine
	}
	if body.About != nil {
		updates["about"] = *body.About
	}
	if body.Location != nil {
		updates["location"] = *body.Location
	}
	if body.ProfilePicture != nil {
		updates["profile_picture"] = *body.ProfilePicture
	}
	if body.CoverPicture != nil {
		updates["cover_picture"] = *body.CoverPicture
	}
	if body.YearsExperience != nil {
		if *body.YearsExperience < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Years of experience cannot be negative",
			})
		}
		updates["years_experience"] = *body.YearsExperience
	}
	if body.Specialties != nil {
		updates["specialties"] = *body.Specialties
	}
	if body.CarrierScoutSubscribed != nil {
		updates["carrier_scout_subscribed"] = *body.CarrierScoutSubscribed
	}
	if body.MCNumber != nil {
		updates["mc_number"] = *body.MCNumber
	}

	if len(updates) > 0 {
		if err := lib.DB.Model(&user).Updates(updates).Error; err != nil {
			lib.Log.Errorw("error updating profile", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to update profile",
			})
		}
	}

	updated, err := lib.FindUserByID(user.ID)
	if err != nil {
		lib.Log.Errorw("error reloading updated user", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	return c.JSON(updated)
}

var carrierIDPattern = regexp.MustCompile(`^(?i)(MC|DOT)[0-9]+$`)

// AddCarrierReference adds a claimed carrier to the authenticated dispatcher's profile
func AddCarrierReference(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	var body struct {
		CarrierName  string `json:"carrierName"`
		MCNumber     string `json:"mcNumber"`
		DocumentFile string `json:"documentFile"`
	}

	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if body.CarrierName == "" || body.MCNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Carrier name and MC/DOT number are required",
		})
	}

	if !carrierIDPattern.MatchString(body.MCNumber) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Carrier identifier must look like MC123456 or DOT123456",
		})
	}

	// Duplicates are keyed by the normalized digits, so MC-123 and MC123
	// count as the same carrier
	normalized := models.NormalizeCarrierID(body.MCNumber)
	for _, existing := range user.CarriersWorkedWith {
		if models.NormalizeCarrierID(existing.CarrierID) == normalized {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "This carrier is already on your profile",
			})
		}
	}

	ref := models.CarrierReference{
		UserID:      user.ID,
		CarrierName: body.CarrierName,
		CarrierID:   body.MCNumber,
	}

	if body.DocumentFile != "" {
		now := time.Now()
		ref.DocumentFile = body.DocumentFile
		ref.UploadedAt = &now
	}

	if err := lib.DB.Create(&ref).Error; err != nil {
		lib.Log.Errorw("error creating carrier reference", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to add carrier",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(ref)
}

// RemoveCarrierReference deletes a carrier claim from the authenticated user's profile
func RemoveCarrierReference(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	refIDStr := c.Params("id")
	refID, err := strconv.ParseUint(refIDStr, 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid reference ID format",
		})
	}

	var ref models.CarrierReference
	err = lib.DB.First(&ref, uint(refID)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Carrier reference not found",
			})
		}
		lib.Log.Errorw("error finding carrier reference", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	if ref.UserID != user.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Not authorized to remove this carrier",
		})
	}

	if err := lib.DB.Delete(&ref).Error; err != nil {
		lib.Log.Errorw("error deleting carrier reference", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to remove carrier",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Carrier removed successfully",
	})
}

// ReverifyCarrierReferences recomputes the verified flag of the user's
// claimed carriers against the MC numbers of registered carrier accounts
func ReverifyCarrierReferences(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	var knownIDs []string
	err := lib.DB.Model(&models.User{}).
		Where("role = ?", models.RoleCarrier).
		Pluck("mc_number", &knownIDs).Error
	if err != nil {
		lib.Log.Errorw("error loading registered carriers", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	checked := services.CrossReferenceCarriers(user.CarriersWorkedWith, services.NewCarrierIDSet(knownIDs))

	for _, ref := range checked {
		err := lib.DB.Model(&models.CarrierReference{}).
			Where("id = ?", ref.ID).
			Update("verified", ref.Verified).Error
		if err != nil {
			lib.Log.Errorw("error updating carrier reference", "error", err, "reference", ref.ID)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to update carrier references",
			})
		}
	}

	return c.JSON(checked)
}
