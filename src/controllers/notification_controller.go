package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/williamgparker144-crypto/DispatchLink-sub000/src/lib"
	"github.com/williamgparker144-crypto/DispatchLink-sub000/src/models"
	"gorm.io/gorm"
)

// GetUserNotifications returns all notifications for the authenticated user, populating related user and post data
func GetUserNotifications(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	var notifications []models.Notification
	err := lib.DB.Preload("RelatedUser").Preload("RelatedPost").
		Where("recipient_id = ?", user.ID).
		Order("created_at DESC").
		Find(&notifications).Error

	if err != nil {
		lib.Log.Errorw("error finding notifications", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}

	type NotificationResponse struct {
		ID          uint                    `json:"_id"`
		Type        models.NotificationType `json:"type"`
		Read        bool                    `json:"read"`
		CreatedAt   time.Time               `json:"createdAt"`
		UpdatedAt   time.Time               `json:"updatedAt"`
		RelatedUser *models.UserDto         `json:"relatedUser,omitempty"`
		RelatedPost *uint                   `json:"relatedPost,omitempty"`
	}

	response := make([]NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		respItem := NotificationResponse{
			ID:          notification.ID,
			Type:        notification.Type,
			Read:        notification.Read,
			CreatedAt:   notification.CreatedAt,
			UpdatedAt:   notification.UpdatedAt,
			RelatedPost: notification.RelatedPostID,
		}

		if notification.RelatedUser != nil {
			dto := notification.RelatedUser.ToDto()
			respItem.RelatedUser = &dto
		}

		response = append(response, respItem)
	}

	return c.JSON(response)
}

// MarkNotificationAsRead marks one of the authenticated user's notifications as read
func MarkNotificationAsRead(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	notificationIDStr := c.Params("id")
	notificationID, err := strconv.ParseUint(notificationIDStr, 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid notification ID format",
		})
	}

	var notification models.Notification
	err = lib.DB.First(&notification, uint(notificationID)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Notification not found",
			})
		}
		lib.Log.Errorw("error finding notification", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	if notification.RecipientID != user.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Not authorized to update this notification",
		})
	}

	if err := lib.DB.Model(&notification).Update("read", true).Error; err != nil {
		lib.Log.Errorw("error updating notification", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to update notification",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Notification marked as read",
	})
}

// DeleteNotification deletes one of the authenticated user's notifications
func DeleteNotification(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	notificationIDStr := c.Params("id")
	notificationID, err := strconv.ParseUint(notificationIDStr, 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid notification ID format",
		})
	}

	var notification models.Notification
	err = lib.DB.First(&notification, uint(notificationID)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Notification not found",
			})
		}
		lib.Log.Errorw("error finding notification", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	if notification.RecipientID != user.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Not authorized to delete this notification",
		})
	}

	if err := lib.DB.Delete(&notification).Error; err != nil {
		lib.Log.Errorw("error deleting notification", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to delete notification",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Notification deleted",
	})
}
