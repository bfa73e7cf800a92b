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

// GetConversations returns the authenticated user's conversations, newest activity first
func GetConversations(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	var conversations []models.Conversation
	err := lib.DB.Preload("ParticipantA").Preload("ParticipantB").
		Where("participant_a_id = ? OR participant_b_id = ?", user.ID, user.ID).
		Order("last_message_at DESC").
		Find(&conversations).Error

	if err != nil {
		lib.Log.Errorw("error finding conversations", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	response := make([]models.ConversationDto, 0, len(conversations))
	for _, conv := range conversations {
		var peer models.User
		if conv.ParticipantAID == user.ID {
			peer = conv.ParticipantB
		} else {
			peer = conv.ParticipantA
		}

		var unread int64
		lib.DB.Model(&models.Message{}).
			Where("conversation_id = ? AND sender_id <> ? AND read = ?", conv.ID, user.ID, false).
			Count(&unread)

		response = append(response, models.ConversationDto{
			ID:            conv.ID,
			Peer:          peer.ToDto(),
			LastMessageAt: conv.LastMessageAt,
			UnreadCount:   unread,
		})
	}

	return c.JSON(response)
}

// StartConversation finds or creates the conversation between the authenticated user and another user
func StartConversation(c *fiber.Ctx) error {
	targetUserIDStr := c.Params("userId")
	targetUserID, err := strconv.ParseUint(targetUserIDStr, 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user ID format",
		})
	}

	user := c.Locals("user").(models.User)

	if user.ID == uint(targetUserID) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "You cannot message yourself",
		})
	}

	var target models.User
	if err := lib.DB.First(&target, uint(targetUserID)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
	}

	pairKey := models.PairKey(user.ID, uint(targetUserID))

	var conversation models.Conversation
	err = lib.DB.Where("pair_key = ?", pairKey).First(&conversation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		conversation = models.Conversation{
			ParticipantAID: user.ID,
			ParticipantBID: uint(targetUserID),
			PairKey:        pairKey,
			LastMessageAt:  time.Now(),
		}
		if err := lib.DB.Create(&conversation).Error; err != nil {
			// A concurrent StartConversation may have created it first
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				if err := lib.DB.Where("pair_key = ?", pairKey).First(&conversation).Error; err != nil {
					return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
						"message": "Server error",
					})
				}
			} else {
				lib.Log.Errorw("error creating conversation", "error", err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"message": "Failed to start conversation",
				})
			}
		}
	} else if err != nil {
		lib.Log.Errorw("error finding conversation", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.ConversationDto{
		ID:            conversation.ID,
		Peer:          target.ToDto(),
		LastMessageAt: conversation.LastMessageAt,
	})
}

// loadOwnConversation fetches a conversation and checks the user participates in it
func loadOwnConversation(c *fiber.Ctx, user models.User) (*models.Conversation, error) {
	convIDStr := c.Params("id")
	convID, err := strconv.ParseUint(convIDStr, 10, 32)
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid conversation ID format",
		})
	}

	var conversation models.Conversation
	err = lib.DB.First(&conversation, uint(convID)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Conversation not found",
			})
		}
		lib.Log.Errorw("error finding conversation", "error", err)
		return nil, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	if !conversation.Involves(user.ID) {
		return nil, c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Not authorized to access this conversation",
		})
	}

	return &conversation, nil
}

// GetMessages returns the messages of a conversation the user participates in
func GetMessages(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	conversation, err := loadOwnConversation(c, user)
	if conversation == nil {
		return err
	}

	var messages []models.Message
	dbErr := lib.DB.Preload("Sender").
		Where("conversation_id = ?", conversation.ID).
		Order("created_at ASC").
		Find(&messages).Error

	if dbErr != nil {
		lib.Log.Errorw("error finding messages", "error", dbErr)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	response := make([]models.MessageDto, 0, len(messages))
	for _, msg := range messages {
		response = append(response, models.MessageDto{
			ID:        msg.ID,
			Sender:    msg.Sender.ToDto(),
			Content:   msg.Content,
			Read:      msg.Read,
			CreatedAt: msg.CreatedAt,
		})
	}

	return c.JSON(response)
}

// SendMessage adds a message to a conversation the user participates in and notifies the peer
func SendMessage(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	conversation, err := loadOwnConversation(c, user)
	if conversation == nil {
		return err
	}

	var body struct {
		Content string `json:"content"`
	}

	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if body.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Message content cannot be empty",
		})
	}

	message := models.Message{
		ConversationID: conversation.ID,
		SenderID:       user.ID,
		Content:        body.Content,
	}

	if err := lib.DB.Create(&message).Error; err != nil {
		lib.Log.Errorw("error creating message", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to send message",
		})
	}

	if err := lib.DB.Model(conversation).Update("last_message_at", time.Now()).Error; err != nil {
		lib.Log.Errorw("error updating conversation", "error", err)
	}

	peerID := conversation.PeerID(user.ID)
	notification := models.Notification{
		RecipientID:   peerID,
		Type:          models.NotificationTypeMessage,
		RelatedUserID: &user.ID,
		Read:          false,
	}
	if err := lib.DB.Create(&notification).Error; err != nil {
		lib.Log.Errorw("error creating notification", "error", err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.MessageDto{
		ID:        message.ID,
		Sender:    user.ToDto(),
		Content:   message.Content,
		Read:      message.Read,
		CreatedAt: message.CreatedAt,
	})
}

// MarkConversationRead marks every message the peer sent in a conversation as read
func MarkConversationRead(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	conversation, err := loadOwnConversation(c, user)
	if conversation == nil {
		return err
	}

	dbErr := lib.DB.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND read = ?", conversation.ID, user.ID, false).
		Update("read", true).Error

	if dbErr != nil {
		lib.Log.Errorw("error marking conversation read", "error", dbErr)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to mark conversation as read",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Conversation marked as read",
	})
}
