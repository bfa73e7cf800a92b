package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/williamgparker144-crypto/DispatchLink-sub000/src/controllers"
	"github.com/williamgparker144-crypto/DispatchLink-sub000/src/middleware"
)

// MessageRoutes sets up direct-messaging routes for conversations and messages
func MessageRoutes(app *fiber.App) {
	message := app.Group("/api/v1/messages", middleware.ProtectRoute)

	message.Get("/conversations", controllers.GetConversations)
	message.Post("/conversations/:userId", controllers.StartConversation)
	message.Get("/conversations/:id/messages", controllers.GetMessages)
	message.Post("/conversations/:id/messages", controllers.SendMessage)
	message.Put("/conversations/:id/read", controllers.MarkConversationRead)
}
