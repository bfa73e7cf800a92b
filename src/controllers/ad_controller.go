package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/williamgparker144-crypto/DispatchLink-sub000/src/lib"
	"github.com/williamgparker144-crypto/DispatchLink-sub000/src/models"
	"gorm.io/gorm"
)

// GetAdPlacements returns active sponsored placements for the feed
func GetAdPlacements(c *fiber.Ctx) error {
	var ads []models.SponsoredAd
	err := lib.DB.Preload("Advertiser").
		Where("active = ?", true).
		Order("created_at DESC").
		Find(&ads).Error

	if err != nil {
		lib.Log.Errorw("error finding ad placements", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	response := make([]models.SponsoredAdDto, 0, len(ads))
	for _, ad := range ads {
		response = append(response, models.SponsoredAdDto{
			ID:         ad.ID,
			Advertiser: ad.Advertiser.ToDto(),
			Title:      ad.Title,
			Body:       ad.Body,
			Image:      ad.Image,
			LinkURL:    ad.LinkURL,
			CreatedAt:  ad.CreatedAt,
		})
	}

	return c.JSON(response)
}

// CreateAd creates a sponsored placement; advertiser accounts only
func CreateAd(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	if user.Role != models.RoleAdvertiser {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Only advertiser accounts can create ads",
		})
	}

	var body struct {
		Title   string `json:"title"`
		Body    string `json:"body"`
		Image   string `json:"image"`
		LinkURL string `json:"linkUrl"`
	}

	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if body.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Ad title is required",
		})
	}

	ad := models.SponsoredAd{
		AdvertiserID: user.ID,
		Title:        body.Title,
		Body:         body.Body,
		Image:        body.Image,
		LinkURL:      body.LinkURL,
		Active:       true,
	}

	if err := lib.DB.Create(&ad).Error; err != nil {
		lib.Log.Errorw("error creating ad", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create ad",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(ad)
}

// loadOwnAd fetches an ad and checks the authenticated user owns it
func loadOwnAd(c *fiber.Ctx, user models.User) (*models.SponsoredAd, error) {
	adIDStr := c.Params("id")
	adID, err := strconv.ParseUint(adIDStr, 10, 32)
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid ad ID format",
		})
	}

	var ad models.SponsoredAd
	err = lib.DB.First(&ad, uint(adID)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Ad not found",
			})
		}
		lib.Log.Errorw("error finding ad", "error", err)
		return nil, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	if ad.AdvertiserID != user.ID {
		return nil, c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Not authorized to modify this ad",
		})
	}

	return &ad, nil
}

// UpdateAd updates a sponsored placement owned by the authenticated advertiser
func UpdateAd(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	ad, err := loadOwnAd(c, user)
	if ad == nil {
		return err
	}

	var body struct {
		Title   *string `json:"title"`
		Body    *string `json:"body"`
		Image   *string `json:"image"`
		LinkURL *string `json:"linkUrl"`
		Active  *bool   `json:"active"`
	}

	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	updates := map[string]interface{}{}
	if body.Title != nil {
		updates["title"] = *body.Title
	}
	if body.Body != nil {
		updates["body"] = *body.Body
	}
	if body.Image != nil {
		updates["image"] = *body.Image
	}
	if body.LinkURL != nil {
		updates["link_url"] = *body.LinkURL
	}
	if body.Active != nil {
		updates["active"] = *body.Active
	}

	if len(updates) > 0 {
		if err := lib.DB.Model(ad).Updates(updates).Error; err != nil {
			lib.Log.Errorw("error updating ad", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to update ad",
			})
		}
	}

	return c.JSON(ad)
}

// RecordAdImpression increments the impression counter of a placement
func RecordAdImpression(c *fiber.Ctx) error {
	return bumpAdCounter(c, "impressions")
}

// RecordAdClick increments the click counter of a placement
func RecordAdClick(c *fiber.Ctx) error {
	return bumpAdCounter(c, "clicks")
}

func bumpAdCounter(c *fiber.Ctx, column string) error {
	adIDStr := c.Params("id")
	adID, err := strconv.ParseUint(adIDStr, 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid ad ID format",
		})
	}

	res := lib.DB.Model(&models.SponsoredAd{}).
		Where("id = ? AND active = ?", uint(adID), true).
		Update(column, gorm.Expr(column+" + 1"))

	if res.Error != nil {
		lib.Log.Errorw("error updating ad counter", "error", res.Error, "column", column)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Ad not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Recorded",
	})
}
