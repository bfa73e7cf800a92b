package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/williamgparker144-crypto/DispatchLink-sub000/src/lib"
	"github.com/williamgparker144-crypto/DispatchLink-sub000/src/models"
	"github.com/williamgparker144-crypto/DispatchLink-sub000/src/services"
)

func connectionService() *services.ConnectionService {
	return services.NewConnectionService(services.NewGormConnectionRepository(lib.DB))
}

// connectionErrorResponse maps lifecycle failures onto HTTP statuses.
// "Already pending" and "already connected" are expected steady states for
// the UI, not server faults.
func connectionErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrSelfConnection),
		errors.Is(err, services.ErrAlreadyConnected),
		errors.Is(err, services.ErrAlreadyPending),
		errors.Is(err, services.ErrInvalidState):
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse(err.Error()))
	case errors.Is(err, services.ErrNotAuthorized):
		return c.Status(fiber.StatusForbidden).JSON(lib.MessageResponse(err.Error()))
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Connection request not found"))
	default:
		lib.Log.Errorw("connection operation failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
}

// SendConnectionRequest sends a connection request from the authenticated user to another user
func SendConnectionRequest(c *fiber.Ctx) error {
	targetUserIDStr := c.Params("userId")
	targetUserID, err := strconv.ParseUint(targetUserIDStr, 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user ID format",
		})
	}

	user := c.Locals("user").(models.User)

	// Target must exist before a request can be created
	var target models.User
	if err := lib.DB.First(&target, uint(targetUserID)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
	}

	conn, err := connectionService().Request(c.Context(), user.ID, uint(targetUserID))
	if err != nil {
		return connectionErrorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Connection request sent successfully",
		"requestId": conn.ID,
	})
}

// AcceptConnectionRequest accepts a pending connection request and notifies the sender
func AcceptConnectionRequest(c *fiber.Ctx) error {
	requestIDStr := c.Params("requestId")
	requestID, err := strconv.ParseUint(requestIDStr, 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request ID format",
		})
	}

	user := c.Locals("user").(models.User)

	conn, err := connectionService().Accept(c.Context(), uint(requestID), user.ID)
	if err != nil {
		return connectionErrorResponse(c, err)
	}

	// Notify the sender; a failed notification is logged, not fatal
	notification := models.Notification{
		RecipientID:   conn.SenderID,
		Type:          models.NotificationTypeConnectionAccepted,
		RelatedUserID: &user.ID,
		Read:          false,
	}

	if err := lib.DB.Create(&notification).Error; err != nil {
		lib.Log.Errorw("error creating notification", "error", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Connection accepted successfully",
	})
}

// RejectConnectionRequest rejects a pending connection request; the sender may use it to cancel their own request
func RejectConnectionRequest(c *fiber.Ctx) error {
	requestIDStr := c.Params("requestId")
	requestID, err := strconv.ParseUint(requestIDStr, 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request ID format",
		})
	}

	user := c.Locals("user").(models.User)

	if _, err := connectionService().Reject(c.Context(), uint(requestID), user.ID); err != nil {
		return connectionErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Connection request rejected",
	})
}

// GetConnectionRequests returns all pending connection requests for the authenticated user
func GetConnectionRequests(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	var connections []models.Connection
	err := lib.DB.Preload("Sender").
		Where("recipient_id = ? AND status = ?", user.ID, models.ConnectionStatusPending).
		Order("created_at DESC").
		Find(&connections).Error

	if err != nil {
		lib.Log.Errorw("error finding connection requests", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	type ConnectionRequestResponse struct {
		ID        uint           `json:"_id"`
		Sender    models.UserDto `json:"sender"`
		Recipient uint           `json:"recipient"`
		Status    string         `json:"status"`
		CreatedAt string         `json:"createdAt"`
		UpdatedAt string         `json:"updatedAt"`
	}

	response := make([]ConnectionRequestResponse, 0, len(connections))
	for _, conn := range connections {
		response = append(response, ConnectionRequestResponse{
			ID:        conn.ID,
			Sender:    conn.Sender.ToDto(),
			Recipient: conn.RecipientID,
			Status:    string(conn.Status),
			CreatedAt: conn.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			UpdatedAt: conn.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// GetUserConnections returns all users connected to the authenticated user
func GetUserConnections(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	var connections []models.Connection
	err := lib.DB.Preload("Sender").Preload("Recipient").
		Where("(sender_id = ? OR recipient_id = ?) AND status = ?",
			user.ID, user.ID, models.ConnectionStatusAccepted).
		Find(&connections).Error

	if err != nil {
		lib.Log.Errorw("error finding connections", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	connectedUsers := make([]models.UserDto, 0, len(connections))
	for _, conn := range connections {
		var connectedUser models.User
		if conn.SenderID == user.ID {
			connectedUser = conn.Recipient
		} else {
			connectedUser = conn.Sender
		}

		connectedUsers = append(connectedUsers, connectedUser.ToDto())
	}

	return c.Status(fiber.StatusOK).JSON(connectedUsers)
}

// RemoveConnection removes an accepted connection between the authenticated user and another user
func RemoveConnection(c *fiber.Ctx) error {
	targetUserIDStr := c.Params("userId")
	targetUserID, err := strconv.ParseUint(targetUserIDStr, 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user ID format",
		})
	}

	user := c.Locals("user").(models.User)

	// Idempotent: removing an already-absent connection still succeeds
	if err := connectionService().Revoke(c.Context(), user.ID, uint(targetUserID)); err != nil {
		return connectionErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Connection removed successfully",
	})
}

// GetConnectionStatus returns the connection status between the authenticated user and another user
func GetConnectionStatus(c *fiber.Ctx) error {
	targetUserIDStr := c.Params("userId")
	targetUserID, err := strconv.ParseUint(targetUserIDStr, 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user ID format",
		})
	}

	user := c.Locals("user").(models.User)

	view, err := connectionService().Status(c.Context(), user.ID, uint(targetUserID))
	if err != nil {
		return connectionErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(view)
}
